package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
)

// useLocation is typed at the address prompt to take the current location.
const useLocation = "loc"

func (a *App) printProfile(p models.Profile) {
	a.printf("Name:           %s\n", p.Name)
	a.printf("Email:          %s\n", p.Email)
	a.printf("Phone:          %s\n", p.Phone)
	a.printf("Address:        %s\n", p.Address)
	a.printf("Gender:         %s\n", p.Gender)
	a.printf("Date of birth:  %s\n", p.DateOfBirth)
	a.printf("Marital status: %s\n", p.MaritalStatus)
	if p.ProfileImageRef != "" {
		a.printf("Profile image:  %s\n", p.ProfileImageRef)
	}
}

func (a *App) WhoAmI(ctx context.Context) error {
	sess, err := a.sessions.RequireSession(ctx)
	if err != nil {
		return failure.Classify(err, failure.Content)
	}
	a.printProfile(sess.Profile)
	return nil
}

// ask returns nil when the user keeps the current value.
func (a *App) ask(label, cur string) (*string, error) {
	v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s] (Enter to keep)", label, cur), a.out)
	if err != nil || v == "" {
		return nil, err
	}
	return &v, nil
}

// Profile edits the locally cached profile. Email and phone are read-only.
func (a *App) Profile(ctx context.Context) error {
	sess, err := a.sessions.RequireSession(ctx)
	if err != nil {
		return failure.Classify(err, failure.Content)
	}
	p := sess.Profile
	a.printProfile(p)

	var upd models.ProfileUpdate
	if upd.Name, err = a.ask("Full name", p.Name); err != nil {
		return err
	}
	if upd.Name != nil {
		n := validators.NormalizeFullName(*upd.Name)
		upd.Name = &n
	}

	if upd.Address, err = a.ask(fmt.Sprintf("Address (%q for current location)", useLocation), p.Address); err != nil {
		return err
	}
	if upd.Address != nil && *upd.Address == useLocation {
		upd.Address = nil
		addr, lerr := a.locator.CurrentAddress(ctx)
		if lerr != nil {
			a.println("Location unavailable, address unchanged.")
			a.log.Debug(ctx, "location lookup failed", "error", lerr)
		} else {
			upd.Address = &addr
		}
	}

	if upd.Gender, err = a.ask("Gender", p.Gender); err != nil {
		return err
	}
	if upd.DateOfBirth, err = a.ask("Date of birth (DD/MM/YYYY)", p.DateOfBirth); err != nil {
		return err
	}
	if upd.MaritalStatus, err = a.ask("Marital status", p.MaritalStatus); err != nil {
		return err
	}
	if upd.ProfileImageRef, err = a.ask("Profile image path", p.ProfileImageRef); err != nil {
		return err
	}

	if _, err := a.sessions.UpdateProfile(ctx, upd); err != nil {
		return err
	}
	a.println("Profile updated.")
	return nil
}
