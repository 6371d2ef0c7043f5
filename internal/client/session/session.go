// Package session owns the persisted identity of the signed-in user: the
// bearer token, the user id and a cached profile snapshot.
//
// A Store is constructed once per process and shared by every screen. All
// reads and writes go through one mutex, and the token, id and profile are
// written with a single ordered kv.Store.SetMany (profile, then id, then
// token) so a reader never sees a token without its profile.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/failure"
	"github.com/dmitrijs2005/grievdesk/internal/client/kv"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/client/validators"
	"github.com/dmitrijs2005/grievdesk/internal/common"
	"github.com/dmitrijs2005/grievdesk/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticator is the part of the backend the store talks to.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (*client.LoginResult, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
}

// AddressLookup resolves the device location to an address string.
type AddressLookup func(ctx context.Context) (string, error)

// DefaultLookupTimeout bounds the address lookup done during SignUp.
const DefaultLookupTimeout = 3 * time.Second

var sessionKeys = []string{common.KeyUserToken, common.KeyUserID, common.KeyUserData}

type Store struct {
	mu  sync.Mutex
	api Authenticator
	kv  kv.Store
	log logging.Logger

	lookup        AddressLookup
	lookupTimeout time.Duration

	now func() time.Time
}

func NewStore(api Authenticator, store kv.Store, log logging.Logger) *Store {
	return &Store{
		api:           api,
		kv:            store,
		log:           log,
		lookupTimeout: DefaultLookupTimeout,
		now:           time.Now,
	}
}

// SetAddressLookup installs the best-effort location lookup used by SignUp
// when the registration has no address.
func (s *Store) SetAddressLookup(fn AddressLookup, timeout time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookup = fn
	if timeout > 0 {
		s.lookupTimeout = timeout
	}
}

// SignIn checks the credentials with the backend and persists the session.
// Any previously persisted session is left untouched on failure.
func (s *Store) SignIn(ctx context.Context, identifier, password string) (*models.Session, error) {
	if errs := validators.ValidateLogin(identifier, password); !errs.Empty() {
		return nil, failure.Invalid(errs)
	}

	res, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		return nil, s.classify(ctx, "sign in failed", err, failure.SignIn)
	}

	sess, err := s.establish(ctx, res.Token, res.User.Profile())
	if err != nil {
		return nil, s.classify(ctx, "sign in failed", err, failure.SignIn)
	}
	s.log.Info(ctx, "signed in", "user_id", sess.UserID)
	return sess, nil
}

// SignUp is the non-interactive sign up: one call registers the account and
// then signs in with the new credentials, since registration alone does not
// issue a token. Forms use submission.Registration instead, which sends the
// register request itself and shares the second half through CompleteSignUp.
func (s *Store) SignUp(ctx context.Context, reg models.Registration) (*models.Session, error) {
	if errs := validators.ValidateRegistration(reg.Name, reg.Email, reg.Phone, reg.Password); !errs.Empty() {
		return nil, failure.Invalid(errs)
	}

	if reg.Address == "" {
		reg.Address = s.lookupAddress(ctx)
	}

	user, err := s.api.Register(ctx, reg)
	if err != nil {
		return nil, s.classify(ctx, "sign up failed", err, failure.SignUp)
	}
	return s.CompleteSignUp(ctx, reg, user)
}

// CompleteSignUp establishes the session for an account the backend has
// just created.
func (s *Store) CompleteSignUp(ctx context.Context, reg models.Registration, user *models.User) (*models.Session, error) {
	res, err := s.api.Login(ctx, reg.Email, reg.Password)
	if err != nil {
		return nil, s.classify(ctx, "sign in after sign up failed", err, failure.SignUp)
	}

	profile := res.User.Profile()
	if user != nil && profile.ID == "" {
		profile.ID = user.Identifier()
	}
	fillFromRegistration(&profile, reg)

	sess, err := s.establish(ctx, res.Token, profile)
	if err != nil {
		return nil, s.classify(ctx, "sign up failed", err, failure.SignUp)
	}
	s.log.Info(ctx, "signed up", "user_id", sess.UserID)
	return sess, nil
}

func fillFromRegistration(p *models.Profile, reg models.Registration) {
	if p.Name == "" {
		p.Name = reg.Name
	}
	if p.Email == "" {
		p.Email = reg.Email
	}
	if p.Phone == "" {
		p.Phone = reg.Phone
	}
	if p.Address == "" {
		p.Address = reg.Address
	}
}

func (s *Store) lookupAddress(ctx context.Context) string {
	s.mu.Lock()
	fn, timeout := s.lookup, s.lookupTimeout
	s.mu.Unlock()
	if fn == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr, err := fn(ctx)
	if err != nil {
		s.log.Debug(ctx, "address lookup skipped", "error", err)
		return ""
	}
	return addr
}

func (s *Store) establish(ctx context.Context, token string, profile models.Profile) (*models.Session, error) {
	if token == "" || profile.ID == "" {
		return nil, fmt.Errorf("%w: token and user id are required", client.ErrMalformedResponse)
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.kv.SetMany(ctx, []kv.Pair{
		{Key: common.KeyUserData, Value: data},
		{Key: common.KeyUserID, Value: []byte(profile.ID)},
		{Key: common.KeyUserToken, Value: []byte(token)},
	})
	if err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err)
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return &models.Session{
		Token:     token,
		UserID:    profile.ID,
		Profile:   profile,
		ExpiresAt: tokenExpiry(token),
	}, nil
}

// SignOut clears every session key. Calling it without a session is a no-op.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.DeleteMany(ctx, sessionKeys); err != nil {
		s.log.Error(ctx, "failed to clear session", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info(ctx, "signed out")
	return nil
}

// CurrentSession returns the persisted session, or nil when signed out.
func (s *Store) CurrentSession(ctx context.Context) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*models.Session, error) {
	token, err := s.kv.Get(ctx, common.KeyUserToken)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	userID, err := s.kv.Get(ctx, common.KeyUserID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(token) == 0 || len(userID) == 0 {
		return nil, nil
	}

	sess := &models.Session{
		Token:     string(token),
		UserID:    string(userID),
		ExpiresAt: tokenExpiry(string(token)),
	}

	data, err := s.kv.Get(ctx, common.KeyUserData)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, &sess.Profile); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
	}
	if sess.Profile.ID == "" {
		sess.Profile.ID = sess.UserID
	}
	return sess, nil
}

// RequireSession is CurrentSession that fails with common.ErrNoSession when
// nobody is signed in.
func (s *Store) RequireSession(ctx context.Context) (*models.Session, error) {
	sess, err := s.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, common.ErrNoSession
	}
	return sess, nil
}

// UpdateProfile merges upd into the cached profile. Email and phone are not
// editable. A future date of birth is rejected before anything is written.
func (s *Store) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(ctx)
	if err != nil {
		return nil, s.classify(ctx, "profile update failed", err, failure.Content)
	}
	if sess == nil {
		return nil, failure.Classify(common.ErrNoSession, failure.Content)
	}

	p := sess.Profile
	apply(&p.Name, upd.Name)
	apply(&p.Address, upd.Address)
	apply(&p.Gender, upd.Gender)
	apply(&p.DateOfBirth, upd.DateOfBirth)
	apply(&p.MaritalStatus, upd.MaritalStatus)
	apply(&p.ProfileImageRef, upd.ProfileImageRef)

	name := ""
	if upd.Name != nil {
		name = p.Name
	}
	if errs := validators.ValidateProfile(name, p.DateOfBirth, s.now()); !errs.Empty() {
		return nil, failure.Invalid(errs)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, s.classify(ctx, "profile update failed", err, failure.Content)
	}
	if err := s.kv.Set(ctx, common.KeyUserData, data); err != nil {
		return nil, s.classify(ctx, "profile update failed", err, failure.Content)
	}

	sess.Profile = p
	s.log.Info(ctx, "profile updated", "user_id", sess.UserID)
	return sess, nil
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (s *Store) classify(ctx context.Context, msg string, err error, m failure.Messages) error {
	fe := failure.Classify(err, m)
	s.log.Warn(ctx, msg, "kind", failure.KindName(fe), "error", err)
	return fe
}

// tokenExpiry reads the exp claim without verifying the signature.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// IsNoSession reports whether err means nobody is signed in.
func IsNoSession(err error) bool {
	return errors.Is(err, common.ErrNoSession)
}
