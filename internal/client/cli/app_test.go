package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/device"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/client/services"
	"github.com/dmitrijs2005/grievdesk/internal/common"
	"github.com/dmitrijs2005/grievdesk/internal/logging"
)

// ---- fakes ----

type fakeSessions struct {
	mu   sync.Mutex
	sess *models.Session

	signInID, signInPW string
	signInErr          error
	signedOut          bool

	reg  *models.Registration
	user *models.User

	upd    *models.ProfileUpdate
	updErr error
}

func (f *fakeSessions) SignIn(_ context.Context, id, pw string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signInID, f.signInPW = id, pw
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.sess = &models.Session{Token: "tok", UserID: "u1", Profile: models.Profile{ID: "u1", Name: "John Doe"}}
	return f.sess, nil
}

func (f *fakeSessions) SignOut(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = true
	f.sess = nil
	return nil
}

func (f *fakeSessions) CurrentSession(context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess, nil
}

func (f *fakeSessions) RequireSession(context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sess == nil {
		return nil, common.ErrNoSession
	}
	return f.sess, nil
}

func (f *fakeSessions) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upd = &upd
	if f.updErr != nil {
		return nil, f.updErr
	}
	return f.sess, nil
}

func (f *fakeSessions) CompleteSignUp(_ context.Context, reg models.Registration, user *models.User) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reg, f.user = &reg, user
	f.sess = &models.Session{Token: "tok", UserID: user.Identifier(), Profile: models.Profile{ID: user.Identifier(), Name: reg.Name}}
	return f.sess, nil
}

// fakeDoer answers the n-th call (0-based) with fn.
type fakeDoer struct {
	mu   sync.Mutex
	reqs []*client.Request
	fn   func(n int) (*client.Response, error)
}

func (f *fakeDoer) Do(_ context.Context, req *client.Request) (*client.Response, error) {
	f.mu.Lock()
	n := len(f.reqs)
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.fn == nil {
		return &client.Response{Status: 200}, nil
	}
	return f.fn(n)
}

type fakePicker struct {
	library []models.MediaRef
	libErr  error
	capture models.MediaRef
	capErr  error
}

func (f fakePicker) PickFromLibrary(context.Context) ([]models.MediaRef, error) {
	return f.library, f.libErr
}

func (f fakePicker) Capture(context.Context) (models.MediaRef, error) {
	return f.capture, f.capErr
}

type memOpener struct{}

func (memOpener) Open(_ context.Context, ref models.MediaRef) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("data:" + ref.URI)), nil
}

type fakeContent struct {
	services.ContentService

	blogs   []models.BlogView
	blog    *models.BlogView
	home    *models.Home
	list    []models.Grievance
	err     error
	toggled []string
	liked   map[string]bool
}

func (f *fakeContent) Home(context.Context) (*models.Home, error) { return f.home, f.err }
func (f *fakeContent) Blogs(context.Context) ([]models.BlogView, error) {
	return f.blogs, f.err
}
func (f *fakeContent) Blog(context.Context, string) (*models.BlogView, error) {
	return f.blog, f.err
}
func (f *fakeContent) Grievances(context.Context) ([]models.Grievance, error) {
	return f.list, f.err
}
func (f *fakeContent) BlogPhotoURL(id string) string { return "http://srv/photo/" + id }
func (f *fakeContent) ShareText(b models.Blog) string {
	return "share:" + b.Slug
}
func (f *fakeContent) ToggleLike(_ context.Context, id string) (bool, error) {
	if f.liked == nil {
		f.liked = map[string]bool{}
	}
	f.toggled = append(f.toggled, id)
	f.liked[id] = !f.liked[id]
	return f.liked[id], f.err
}

// script feeds canned answers to the interactive input seams.
type script struct {
	answers []string
	prompts []string
}

func (s *script) next(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func stubScript(t *testing.T, password string, answers ...string) *script {
	t.Helper()
	s := &script{answers: answers}
	origST, origGP, origML, origYN := getSimpleText, getPassword, getMultiline, getYesNo
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) { return s.next(prompt) }
	getMultiline = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) { return s.next(prompt) }
	getYesNo = func(_ *bufio.Reader, prompt string, _ io.Writer) (bool, error) {
		a, err := s.next(prompt)
		return a == "y", err
	}
	getPassword = func(io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline, getYesNo = origST, origGP, origML, origYN
	})
	return s
}

func newTestApp(sessions *fakeSessions, api *fakeDoer) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	a := &App{
		sessions: sessions,
		content:  &fakeContent{},
		api:      api,
		picker:   fakePicker{},
		opener:   memOpener{},
		locator:  device.StaticLocator{Address: "12 Main St"},
		reader:   bufio.NewReader(strings.NewReader("")),
		out:      out,
		log:      logging.Nop(),
	}
	return a, out
}

func signedIn() *fakeSessions {
	return &fakeSessions{sess: &models.Session{
		Token:  "tok",
		UserID: "u1",
		Profile: models.Profile{
			ID:    "u1",
			Name:  "John Doe",
			Email: "john@example.com",
			Phone: "9876543210",
		},
	}}
}
