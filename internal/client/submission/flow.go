package submission

import (
	"context"
	"time"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
)

// Values are the current field values of a form, keyed by field name.
type Values map[string]string

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

type Flow interface {
	Name() string

	// Fields lists the form fields in display order.
	Fields() []string

	// Normalize rewrites a value as the user types it.
	Normalize(field, value string) string

	Validate(v Values, now time.Time) validators.Errors

	// RequiresSession reports whether Encode needs a signed-in session.
	RequiresSession() bool

	// Encode builds the request. sess is nil when RequiresSession is false.
	// A nil request with a nil error skips the send and Complete gets a nil
	// response.
	Encode(ctx context.Context, v Values, attachments []models.MediaRef, sess *models.Session) (*client.Request, error)

	// Complete handles a 2xx response, or nil when Encode sent nothing.
	Complete(ctx context.Context, v Values, resp *client.Response) error

	Messages() failure.Messages
}
