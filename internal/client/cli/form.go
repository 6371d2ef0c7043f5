package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/session"
	"github.com/dmitrijs2005/grievdesk/internal/client/submission"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
	"github.com/dmitrijs2005/grievdesk/internal/common"
)

const maxAttempts = 3

var errGaveUp = fmt.Errorf("giving up after %d attempts", maxAttempts)

var fieldLabels = map[string]string{
	validators.FieldName:        "Enter full name",
	validators.FieldEmail:       "Enter email",
	validators.FieldPhone:       "Enter phone number (10 digits)",
	validators.FieldAddress:     "Enter address",
	validators.FieldDescription: "Describe your grievance",
}

// form drives a submission pipeline from the terminal: it prompts for every
// field, submits, and re-prompts only the fields that came back with errors.
type form struct {
	app *App
	p   *submission.Pipeline

	// waitFor holds pending prefills, awaited before the field is prompted.
	waitFor map[string]<-chan struct{}
}

// run prompts fields, calls extra once after the first round and submits.
// A declined retry after a non-field failure returns nil.
func (f *form) run(ctx context.Context, fields []string, extra func(context.Context) error) error {
	pending := fields
	for attempt := 0; attempt < maxAttempts; attempt++ {
		for _, field := range pending {
			if err := f.prompt(ctx, field); err != nil {
				return err
			}
		}
		if attempt == 0 && extra != nil {
			if err := extra(ctx); err != nil {
				return err
			}
		}

		err := f.p.Submit(ctx)
		if err == nil {
			return nil
		}
		var fe *failure.Error
		if !errors.As(err, &fe) {
			return err
		}

		errs := f.p.Errors()
		pending = nil
		for _, field := range fields {
			if msg, ok := errs[field]; ok {
				f.app.println(msg)
				pending = append(pending, field)
			}
		}
		if len(pending) > 0 {
			continue
		}

		f.app.println(failure.UserMessage(fe))
		if errors.Is(fe, common.ErrNoSession) {
			return nil
		}
		again, err := getYesNo(f.app.reader, "Try again?", f.app.out)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
	return errGaveUp
}

func (f *form) wait(ctx context.Context, field string) {
	ch := f.waitFor[field]
	if ch == nil {
		return
	}
	delete(f.waitFor, field)
	select {
	case <-ch:
	case <-ctx.Done():
	case <-time.After(session.DefaultLookupTimeout):
	}
}

func (f *form) prompt(ctx context.Context, field string) error {
	a := f.app
	f.wait(ctx, field)

	switch field {
	case validators.FieldPassword:
		pw, err := getPassword(a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(pw)
		f.p.Edit(field, string(pw))
		return nil

	case validators.FieldDescription:
		text, err := getMultiline(a.reader, fieldLabels[field], a.out)
		if err != nil {
			return err
		}
		f.p.Edit(field, text)
		return nil
	}

	label := fieldLabels[field]
	cur := f.p.Value(field)
	if cur != "" {
		label = fmt.Sprintf("%s [%s] (Enter to keep)", label, cur)
	}
	v, err := getSimpleText(a.reader, label, a.out)
	if err != nil {
		return err
	}
	if v == "" && cur != "" {
		return nil
	}
	f.p.Edit(field, v)
	return nil
}
