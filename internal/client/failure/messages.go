package failure

import (
	"net/http"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
)

const (
	MsgInvalidCredentials = "Invalid email/phone or password. Please try again."
	MsgAlreadyRegistered  = "Email or phone number is already registered. Please try another one."
	MsgSignUpFailed       = "Error signing up. Please try again."
	MsgGrievanceFailed    = "Failed to submit grievance. Please try again."

	// ServerDuplicateIdentity is the backend message for a taken email or phone.
	ServerDuplicateIdentity = "Email or phone number already registered"
)

// SignIn is used by the login screen.
var SignIn = Messages{
	Reject: func(se *client.StatusError) (string, string) {
		if se.Status == http.StatusBadRequest {
			return validators.FieldPassword, MsgInvalidCredentials
		}
		if se.Message == "" {
			return "", DefaultUnexpectedMessage
		}
		return "", "Error: " + se.Message
	},
	Network:    "No response from server. Please check your network or server.",
	Unexpected: "An unexpected error occurred: ",
	WithCause:  true,
}

// SignUp is used by registration.
var SignUp = Messages{
	Reject: func(se *client.StatusError) (string, string) {
		if se.Message == ServerDuplicateIdentity {
			return validators.FieldEmail, MsgAlreadyRegistered
		}
		return "", MsgSignUpFailed
	},
	Network:    "No response from the server. Please check your connection.",
	Unexpected: DefaultUnexpectedMessage,
}

// Grievance is used by grievance submission.
var Grievance = Messages{
	Reject: func(*client.StatusError) (string, string) {
		return "", MsgGrievanceFailed
	},
	Network:    MsgGrievanceFailed,
	Unexpected: MsgGrievanceFailed,
}

// Content is used by read-only screens.
var Content = Messages{}
