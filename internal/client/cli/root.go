package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
)

func (a *App) getStatus(ctx context.Context) string {
	sess := a.currentSession(ctx)
	if sess == nil {
		return ""
	}
	s := sess.Profile.Name
	if s == "" {
		s = sess.UserID
	}
	if sess.Expired(time.Now()) {
		s += " expired"
	}
	return fmt.Sprintf("(%s)", s)
}

// userMessage is what the REPL prints for a failed command.
func userMessage(err error) string {
	var fe *failure.Error
	if errors.As(err, &fe) {
		return failure.UserMessage(fe)
	}
	return "Error: " + err.Error()
}

func (a *App) Root(ctx context.Context) {
	a.println("Welcome to the Grievance Desk CLI (type 'help' for commands)")
	a.log.Info(ctx, "client started", "server", a.config.ServerURL)

	if !a.isLoggedIn(ctx) {
		a.println("You are not signed in. Use 'login' or 'register'.")
	}

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
