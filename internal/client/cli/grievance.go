package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/grievdesk/internal/client/device"
	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/staging"
	"github.com/dmitrijs2005/grievdesk/internal/client/submission"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
)

// Grievance files a grievance. Name, phone and address start from the
// cached profile, images are staged before the first submit.
func (a *App) Grievance(ctx context.Context) error {
	sess, err := a.sessions.RequireSession(ctx)
	if err != nil {
		return failure.Classify(err, failure.Grievance)
	}

	flow := submission.NewGrievance(a.opener)
	queue := staging.New()
	p := submission.New(flow, a.api, a.sessions, queue, a.log)
	defer p.Close()

	p.OnState(func(s submission.State) {
		if s == submission.Submitting {
			a.println("Submitting...")
		}
	})

	p.Edit(validators.FieldName, sess.Profile.Name)
	p.Edit(validators.FieldPhone, sess.Profile.Phone)

	waitFor := map[string]<-chan struct{}{}
	if sess.Profile.Address != "" {
		p.Edit(validators.FieldAddress, sess.Profile.Address)
	} else if a.locator != nil {
		waitFor[validators.FieldAddress] = p.Prefill(ctx, validators.FieldAddress, a.locator.CurrentAddress)
	}

	f := form{app: a, p: p, waitFor: waitFor}
	stage := func(ctx context.Context) error { return a.stageImages(ctx, queue) }
	if err := f.run(ctx, flow.Fields(), stage); err != nil {
		return err
	}
	if p.State() == submission.Succeeded {
		a.println("Grievance submitted successfully!")
	}
	return nil
}

func pickMessage(err error) string {
	switch {
	case errors.Is(err, device.ErrCanceled):
		return "No image selected."
	case errors.Is(err, device.ErrPermissionDenied):
		return "Permission to access images was denied."
	}
	return "Error: " + err.Error()
}

func (a *App) printQueue(q *staging.Queue) {
	a.printf("Images staged: %d/%d\n", q.Len(), q.Max())
	for i, r := range q.Snapshot() {
		a.printf("  [%d] %s  %s\n", i, r.Name, r.URI)
	}
}

// stageImages runs the attachment picker until the user is done.
func (a *App) stageImages(ctx context.Context, q *staging.Queue) error {
	for {
		a.printQueue(q)
		line, err := getSimpleText(a.reader, "Images: (l)ibrary, (c)amera, (r)emove <n>, (d)one", a.out)
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			return nil
		}

		switch parts[0] {
		case "d", "done":
			return nil

		case "l", "library":
			refs, err := a.picker.PickFromLibrary(ctx)
			if err != nil {
				a.println(pickMessage(err))
				continue
			}
			if _, err := q.AddFromLibrary(refs...); err != nil {
				a.println(err.Error())
			}

		case "c", "camera":
			ref, err := a.picker.Capture(ctx)
			if err != nil {
				a.println(pickMessage(err))
				continue
			}
			if err := q.AddFromCapture(ref); err != nil {
				a.println(err.Error())
			}

		case "r", "remove":
			if len(parts) < 2 {
				a.println("Usage: r <n>")
				continue
			}
			i, err := strconv.Atoi(parts[1])
			if err != nil {
				a.println("Usage: r <n>")
				continue
			}
			if err := q.RemoveAt(i); err != nil {
				a.println(err.Error())
			}

		default:
			a.println("Unknown option:", parts[0])
		}
	}
}
