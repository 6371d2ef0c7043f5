package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
)

// Establisher turns a freshly registered account into a persisted session.
type Establisher interface {
	CompleteSignUp(ctx context.Context, reg models.Registration, user *models.User) (*models.Session, error)
}

// Registration is the sign-up form.
type Registration struct {
	sessions Establisher

	mu      sync.Mutex
	session *models.Session

	// created is the account the backend accepted for createdFor. It is
	// kept until a session is established so a retry after a failed sign
	// in does not register the same account twice.
	created    *models.User
	createdFor models.Registration
}

func NewRegistration(sessions Establisher) *Registration {
	return &Registration{sessions: sessions}
}

func (*Registration) Name() string { return "registration" }

func (*Registration) Fields() []string {
	return []string{
		validators.FieldName,
		validators.FieldEmail,
		validators.FieldPhone,
		validators.FieldPassword,
		validators.FieldAddress,
	}
}

func (*Registration) Normalize(field, value string) string {
	switch field {
	case validators.FieldName:
		return validators.NormalizeFullName(value)
	case validators.FieldPhone:
		return validators.ClampPhone(value)
	}
	return value
}

func (*Registration) Validate(v Values, _ time.Time) validators.Errors {
	return validators.ValidateRegistration(
		v[validators.FieldName],
		v[validators.FieldEmail],
		v[validators.FieldPhone],
		v[validators.FieldPassword],
	)
}

func (*Registration) RequiresSession() bool { return false }

func registrationOf(v Values) models.Registration {
	return models.Registration{
		Name:     v[validators.FieldName],
		Email:    v[validators.FieldEmail],
		Phone:    v[validators.FieldPhone],
		Password: v[validators.FieldPassword],
		Address:  v[validators.FieldAddress],
	}
}

func (r *Registration) Encode(_ context.Context, v Values, _ []models.MediaRef, _ *models.Session) (*client.Request, error) {
	reg := registrationOf(v)
	if r.pending(reg) != nil {
		return nil, nil
	}

	body, err := json.Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("marshal registration: %w", err)
	}
	return &client.Request{
		Method:      http.MethodPost,
		Path:        client.PathRegister,
		ContentType: client.ContentTypeJSON,
		Body:        body,
	}, nil
}

// pending returns the already created account when reg has the same
// credentials.
func (r *Registration) pending(reg models.Registration) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.created == nil || r.createdFor.Email != reg.Email || r.createdFor.Password != reg.Password {
		return nil
	}
	return r.created
}

func (r *Registration) Complete(ctx context.Context, v Values, resp *client.Response) error {
	reg := registrationOf(v)

	var user *models.User
	if resp == nil {
		user = r.pending(reg)
		if user == nil {
			return fmt.Errorf("complete registration: %w", client.ErrMalformedResponse)
		}
	} else {
		u, err := client.DecodeRegistered(resp.Body)
		if err != nil {
			return err
		}
		user = u
		r.mu.Lock()
		r.created, r.createdFor = user, reg
		r.mu.Unlock()
	}

	sess, err := r.sessions.CompleteSignUp(ctx, reg, user)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.session = sess
	r.created, r.createdFor = nil, models.Registration{}
	r.mu.Unlock()
	return nil
}

// Session is the session established by the last successful submit.
func (r *Registration) Session() *models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

func (*Registration) Messages() failure.Messages { return failure.SignUp }
