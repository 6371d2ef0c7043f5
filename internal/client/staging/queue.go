// Package staging holds the images picked for a form that has not been sent
// yet.
package staging

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/common"
)

var (
	ErrCapacity   = errors.New("attachment limit reached")
	ErrOutOfRange = errors.New("attachment index out of range")
	ErrEmptyRef   = errors.New("attachment has no uri")
)

// CapacityError rejects an add that would take the queue over Max. Nothing
// from the rejected batch is added.
type CapacityError struct {
	Max      int
	Staged   int
	Rejected int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("You can only upload up to %d images.", e.Max)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// Queue is an ordered list of at most Max media references. It is owned by
// one form and safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	max   int
	items []models.MediaRef
}

func New() *Queue {
	return NewWithLimit(common.MaxAttachments)
}

func NewWithLimit(max int) *Queue {
	return &Queue{max: max}
}

func (q *Queue) Max() int { return q.max }

// AddFromLibrary appends the whole selection or nothing. It returns the
// number of refs added.
func (q *Queue) AddFromLibrary(refs ...models.MediaRef) (int, error) {
	prepared := make([]models.MediaRef, 0, len(refs))
	for _, r := range refs {
		p, err := prepare(r)
		if err != nil {
			return 0, err
		}
		prepared = append(prepared, p)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if over := len(q.items) + len(prepared) - q.max; over > 0 {
		return 0, &CapacityError{Max: q.max, Staged: len(q.items), Rejected: len(prepared)}
	}
	q.items = append(q.items, prepared...)
	return len(prepared), nil
}

// AddFromCapture appends a single camera capture.
func (q *Queue) AddFromCapture(ref models.MediaRef) error {
	_, err := q.AddFromLibrary(ref)
	return err
}

func prepare(r models.MediaRef) (models.MediaRef, error) {
	if r.URI == "" {
		return r, ErrEmptyRef
	}
	if r.MIME == "" {
		r.MIME = models.InferImageMIME(r.URI)
	}
	return r, nil
}

func (q *Queue) RemoveAt(i int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i < 0 || i >= len(q.items) {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(q.items))
	}
	q.items = append(q.items[:i], q.items[i+1:]...)
	return nil
}

// Snapshot returns a copy of the queue with each entry named by position.
func (q *Queue) Snapshot() []models.MediaRef {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.MediaRef, len(q.items))
	for i, r := range q.items {
		r.Name = models.AttachmentName(i)
		out[i] = r
	}
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Remaining is how many more refs fit.
func (q *Queue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.max - len(q.items)
}

func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}
