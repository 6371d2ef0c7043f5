package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/client/staging"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
	"github.com/dmitrijs2005/grievdesk/internal/common"
	"github.com/dmitrijs2005/grievdesk/internal/logging"
)

type State int

const (
	Editing State = iota
	Validating
	Encoding
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Encoding:
		return "encoding"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var ErrInProgress = errors.New("submission already in progress")

// Doer sends an encoded request.
type Doer interface {
	Do(ctx context.Context, req *client.Request) (*client.Response, error)
}

// Sessions supplies the signed-in session for authenticated flows.
type Sessions interface {
	RequireSession(ctx context.Context) (*models.Session, error)
}

type Pipeline struct {
	flow     Flow
	api      Doer
	sessions Sessions
	queue    *staging.Queue
	log      logging.Logger
	now      func() time.Time

	mu       sync.Mutex
	state    State
	values   Values
	errs     validators.Errors
	global   string
	busy     bool
	closed   bool
	observer func(State)
}

// New builds a pipeline in the Editing state. queue may be nil for forms
// without attachments and sessions may be nil for unauthenticated flows.
func New(flow Flow, api Doer, sessions Sessions, queue *staging.Queue, log logging.Logger) *Pipeline {
	return &Pipeline{
		flow:     flow,
		api:      api,
		sessions: sessions,
		queue:    queue,
		log:      log.With("flow", flow.Name()),
		now:      time.Now,
		values:   Values{},
		errs:     validators.Errors{},
	}
}

// OnState registers fn to be called on every state change. fn runs with the
// pipeline lock held and must not call back into the pipeline.
func (p *Pipeline) OnState(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observer = fn
}

func (p *Pipeline) setState(ctx context.Context, s State) {
	if p.state == s {
		return
	}
	p.log.Debug(ctx, "submission state", "from", p.state.String(), "to", s.String())
	p.state = s
	if p.observer != nil {
		p.observer(s)
	}
}

func (p *Pipeline) Flow() Flow { return p.flow }

// Queue returns the attachment queue, or nil.
func (p *Pipeline) Queue() *staging.Queue { return p.queue }

// Edit stores the normalized value and clears that field's error only. It
// returns the stored value.
func (p *Pipeline) Edit(field, value string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	value = p.flow.Normalize(field, value)
	if p.closed {
		return value
	}
	p.values[field] = value
	delete(p.errs, field)
	if !p.busy {
		p.setState(context.Background(), Editing)
	}
	return value
}

func (p *Pipeline) Value(field string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[field]
}

func (p *Pipeline) Values() Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values.clone()
}

// Errors returns a copy of the field error set.
func (p *Pipeline) Errors() validators.Errors {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errs.Clone()
}

// GlobalError is the last non-field failure message.
func (p *Pipeline) GlobalError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.global
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close marks the owning screen as gone.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Prefill runs fn in the background and stores its result in field when the
// field is still empty and the pipeline is open. Errors are logged and
// dropped. The returned channel is closed when fn has been handled.
func (p *Pipeline) Prefill(ctx context.Context, field string, fn func(context.Context) (string, error)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		v, err := fn(ctx)
		if err != nil {
			p.log.Debug(ctx, "prefill skipped", "field", field, "error", err)
			return
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed || p.values[field] != "" {
			return
		}
		p.values[field] = p.flow.Normalize(field, v)
		delete(p.errs, field)
	}()
	return done
}

// Submit runs one attempt. The returned error is always a *failure.Error,
// common.ErrClosed or ErrInProgress.
func (p *Pipeline) Submit(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return common.ErrClosed
	}
	if p.busy {
		p.mu.Unlock()
		return ErrInProgress
	}

	p.global = ""
	p.setState(ctx, Validating)
	values := p.values.clone()
	errs := p.flow.Validate(values, p.now())
	if !errs.Empty() {
		p.errs = errs
		p.setState(ctx, Editing)
		p.mu.Unlock()
		p.log.Debug(ctx, "validation failed", "fields", len(errs))
		return failure.Invalid(errs)
	}
	p.errs = validators.Errors{}
	p.busy = true
	p.setState(ctx, Encoding)
	p.mu.Unlock()

	err := p.run(ctx, values)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false

	if p.closed {
		p.log.Debug(ctx, "result dropped, pipeline closed", "error", err)
		return common.ErrClosed
	}

	if err != nil {
		fe := failure.Classify(err, p.flow.Messages())
		for k, v := range fe.Fields {
			p.errs[k] = v
		}
		p.global = fe.Message
		p.setState(ctx, Failed)
		p.log.Warn(ctx, "submission failed", "kind", failure.KindName(fe), "error", err)
		return fe
	}

	if p.queue != nil {
		p.queue.Clear()
	}
	p.setState(ctx, Succeeded)
	p.log.Info(ctx, "submission succeeded")
	return nil
}

// run encodes, sends and completes. It is called without the lock.
func (p *Pipeline) run(ctx context.Context, values Values) error {
	var sess *models.Session
	if p.flow.RequiresSession() {
		if p.sessions == nil {
			return common.ErrNoSession
		}
		s, err := p.sessions.RequireSession(ctx)
		if err != nil {
			return err
		}
		sess = s
	}

	var attachments []models.MediaRef
	if p.queue != nil {
		attachments = p.queue.Snapshot()
	}

	req, err := p.flow.Encode(ctx, values, attachments, sess)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.flow.Name(), err)
	}

	p.mu.Lock()
	closed := p.closed
	if !closed {
		p.setState(ctx, Submitting)
	}
	p.mu.Unlock()
	if closed {
		return common.ErrClosed
	}

	if req == nil {
		return p.flow.Complete(ctx, values, nil)
	}
	resp, err := p.api.Do(ctx, req)
	if err != nil {
		return err
	}
	return p.flow.Complete(ctx, values, resp)
}
