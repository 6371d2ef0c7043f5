package validators

import (
	"strings"
	"time"
)

// Errors maps a field name to a user-facing message. A missing entry means
// the field is valid.
type Errors map[string]string

func (e Errors) Empty() bool { return len(e) == 0 }

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Field names shared by forms and error maps.
const (
	FieldIdentifier  = "identifier"
	FieldPassword    = "password"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldDescription = "description"
	FieldDateOfBirth = "dob"
)

const (
	MsgIdentifier     = "Please enter a valid email address or phone number."
	MsgLoginPassword  = "Password must be at least 8 characters long."
	MsgFullName       = "Full name must start with a capital letter and contain only letters."
	MsgEmail          = "Please enter a valid email address."
	MsgPhone          = "Phone number must be exactly 10 digits."
	MsgStrongPassword = "Password must be at least 8 characters, include a capital letter, and a symbol."
	MsgNameRequired   = "Name is required"
	MsgPhoneRequired  = "Phone number is required"
	MsgPhoneDigits    = "Phone must be 10 digits"
	MsgAddressReq     = "Address is required"
	MsgDescriptionReq = "Description is required"
	MsgDateOfBirth    = "Date of birth cannot be in the future."
	MsgDateInvalid    = "Please enter a valid date of birth."
)

// ValidateLogin checks the sign-in form. The identifier is checked first and
// the password error is reported only when the identifier is valid.
func ValidateLogin(identifier, password string) Errors {
	errs := Errors{}
	if !IsIdentifier(identifier) {
		errs[FieldIdentifier] = MsgIdentifier
		return errs
	}
	if !IsLoginPassword(password) {
		errs[FieldPassword] = MsgLoginPassword
	}
	return errs
}

func ValidateRegistration(name, email, phone, password string) Errors {
	errs := Errors{}
	if !IsFullName(name) {
		errs[FieldName] = MsgFullName
	}
	if !IsEmail(email) {
		errs[FieldEmail] = MsgEmail
	}
	if !IsPhone(phone) {
		errs[FieldPhone] = MsgPhone
	}
	if !IsStrongPassword(password) {
		errs[FieldPassword] = MsgStrongPassword
	}
	return errs
}

func ValidateGrievance(name, phone, address, description string) Errors {
	errs := Errors{}
	if strings.TrimSpace(name) == "" {
		errs[FieldName] = MsgNameRequired
	}
	switch {
	case phone == "":
		errs[FieldPhone] = MsgPhoneRequired
	case !IsPhone(phone):
		errs[FieldPhone] = MsgPhoneDigits
	}
	if strings.TrimSpace(address) == "" {
		errs[FieldAddress] = MsgAddressReq
	}
	if strings.TrimSpace(description) == "" {
		errs[FieldDescription] = MsgDescriptionReq
	}
	return errs
}

// ValidateDateOfBirth returns "" for an empty or acceptable date.
func ValidateDateOfBirth(dob string, now time.Time) string {
	if strings.TrimSpace(dob) == "" {
		return ""
	}
	d, ok := ParseDateOfBirth(dob, now)
	if ok {
		return ""
	}
	if d.IsZero() {
		return MsgDateInvalid
	}
	return MsgDateOfBirth
}

// ValidateProfile checks the editable profile fields. Empty values are left
// to the caller, only supplied ones are checked.
func ValidateProfile(name, dob string, now time.Time) Errors {
	errs := Errors{}
	if name != "" && !IsFullName(name) {
		errs[FieldName] = MsgFullName
	}
	if msg := ValidateDateOfBirth(dob, now); msg != "" {
		errs[FieldDateOfBirth] = msg
	}
	return errs
}
