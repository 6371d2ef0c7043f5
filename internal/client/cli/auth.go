package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/grievdesk/internal/client/submission"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
	"github.com/dmitrijs2005/grievdesk/internal/common"
)

// getSimpleText, getPassword, getMultiline and getYesNo are indirections used
// to facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline
var getYesNo = GetYesNo

// Register runs the sign up form. The address is prefilled from the current
// location when the user leaves it empty. On success the new session is
// persisted and the user is signed in.
func (a *App) Register(ctx context.Context) error {
	flow := submission.NewRegistration(a.sessions)
	p := submission.New(flow, a.api, nil, nil, a.log)
	defer p.Close()

	var prefill <-chan struct{}
	if a.locator != nil {
		prefill = p.Prefill(ctx, validators.FieldAddress, a.locator.CurrentAddress)
	}

	f := form{app: a, p: p, waitFor: map[string]<-chan struct{}{validators.FieldAddress: prefill}}
	if err := f.run(ctx, flow.Fields(), nil); err != nil {
		return err
	}

	name := p.Value(validators.FieldName)
	if sess := flow.Session(); sess != nil && sess.Profile.Name != "" {
		name = sess.Profile.Name
	}
	a.println(fmt.Sprintf("Welcome, %s!", name))
	return nil
}

// Login prompts for an email or phone number and a password and signs in.
// The password is wiped before returning. A failed attempt leaves any
// existing session untouched.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or phone", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.sessions.SignIn(ctx, identifier, string(password))
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.println(fmt.Sprintf("Signed in as %s", displayName(sess.Profile.Name, sess.UserID)))
	return nil
}

// Logout removes the persisted session. Liked blogs are kept.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.SignOut(ctx); err != nil {
		return err
	}
	a.println("Signed out.")
	return nil
}

func displayName(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
