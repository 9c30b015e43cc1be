// Package store holds the two process-wide pieces of shared UI state: the
// authenticated session and the active search. Stores are constructor
// injected, mutated only through their own methods, and fan out change
// notifications to subscribed screens.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/storage"
)

// ErrBusy means a mutating call was issued while an earlier one is still
// pending. The caller should disable the triggering control instead of
// retrying.
var ErrBusy = errors.New("store: operation already in progress")

type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticating
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Storage keys for the persisted session. Both are written together and
// cleared together: a user without a token is never stored.
const (
	userKey  = "user"
	tokenKey = "token"
)

// SessionAPI is the slice of the movie API the session store drives.
type SessionAPI interface {
	Login(ctx context.Context, username, password string) (moviedb.Credentials, error)
	Register(ctx context.Context, req moviedb.RegisterRequest) error
	UpdateProfile(ctx context.Context, patch moviedb.ProfilePatch) (*moviedb.User, error)
	Favorites(ctx context.Context) ([]moviedb.MovieSummary, error)
	AddFavorite(ctx context.Context, movieID int) error
	RemoveFavorite(ctx context.Context, movieID int) error
}

type SessionSnapshot struct {
	State AuthState
	User  *moviedb.User
}

// LoginResult is the outcome of a login attempt. A rejected login is an
// expected, user-facing outcome, not an error.
type LoginResult struct {
	OK      bool
	User    *moviedb.User
	Message string
}

type SignupResult struct {
	OK      bool
	Message string
}

type Session struct {
	api     SessionAPI
	storage *storage.Store
	tokens  *moviedb.TokenHolder
	log     *zap.Logger

	mu            sync.Mutex
	state         AuthState
	user          *moviedb.User
	token         string
	signupPending bool
	nextSubID     int
	subs          map[int]func(SessionSnapshot)
}

// NewSession builds the store and hydrates it from persisted storage.
// Invalid or corrupt persisted data reads as "no session".
func NewSession(api SessionAPI, st *storage.Store, tokens *moviedb.TokenHolder, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if tokens == nil {
		tokens = &moviedb.TokenHolder{}
	}
	s := &Session{
		api:     api,
		storage: st,
		tokens:  tokens,
		log:     log,
		subs:    make(map[int]func(SessionSnapshot)),
	}
	s.hydrate()
	return s
}

func (s *Session) hydrate() {
	rawUser, okUser := s.storage.Get(userKey)
	rawToken, okToken := s.storage.Get(tokenKey)
	if !okUser || !okToken {
		s.clearPersisted()
		return
	}
	var u moviedb.User
	if err := json.Unmarshal(rawUser, &u); err != nil || u.Username == "" {
		s.log.Warn("discarding corrupt persisted session")
		s.clearPersisted()
		return
	}
	tok := string(rawToken)
	if tok == "" || tokenExpired(tok) {
		s.log.Info("discarding expired persisted session")
		s.clearPersisted()
		return
	}
	s.state = Authenticated
	s.user = &u
	s.token = tok
	s.tokens.Set(tok)
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification is the server's job. Opaque non-JWT tokens are
// kept and left for the server to reject.
func tokenExpired(tok string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{State: s.state, User: s.user}
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Authenticated
}

// Subscribe registers a change callback and returns its cancel func.
// Callbacks run outside the store lock and may call back into the store.
func (s *Session) Subscribe(fn func(SessionSnapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) notify(snap SessionSnapshot) {
	s.mu.Lock()
	fns := make([]func(SessionSnapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// Login drives Unauthenticated/Authenticated -> Authenticating -> outcome.
// A second call while one is pending fails fast with ErrBusy.
func (s *Session) Login(ctx context.Context, username, password string) (LoginResult, error) {
	s.mu.Lock()
	if s.state == Authenticating {
		s.mu.Unlock()
		return LoginResult{}, ErrBusy
	}
	prev := s.state
	s.state = Authenticating
	snap := SessionSnapshot{State: s.state, User: s.user}
	s.mu.Unlock()
	s.notify(snap)

	creds, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.mu.Lock()
		s.state = prev
		snap = SessionSnapshot{State: s.state, User: s.user}
		s.mu.Unlock()
		s.notify(snap)
		return LoginResult{Message: moviedb.UserMessage(err, "Invalid username or password")}, nil
	}

	user := creds.User
	if err := s.persist(user, creds.Token); err != nil {
		// Session still works in memory; it just won't survive a restart.
		s.log.Warn("persisting session failed", zap.Error(err))
	}

	s.mu.Lock()
	s.state = Authenticated
	s.user = &user
	s.token = creds.Token
	s.tokens.Set(creds.Token)
	snap = SessionSnapshot{State: s.state, User: s.user}
	s.mu.Unlock()
	s.notify(snap)
	return LoginResult{OK: true, User: &user}, nil
}

// Signup registers a new account. Success does not authenticate; the caller
// must log in separately.
func (s *Session) Signup(ctx context.Context, req moviedb.RegisterRequest) (SignupResult, error) {
	s.mu.Lock()
	if s.signupPending {
		s.mu.Unlock()
		return SignupResult{}, ErrBusy
	}
	s.signupPending = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.signupPending = false
		s.mu.Unlock()
	}()

	if err := s.api.Register(ctx, req); err != nil {
		return SignupResult{Message: moviedb.UserMessage(err, "Username or email already exists")}, nil
	}
	return SignupResult{OK: true, Message: "Registration complete. Please log in."}, nil
}

// Logout clears the persisted session and unconditionally succeeds.
func (s *Session) Logout() {
	s.clearPersisted()
	s.mu.Lock()
	s.state = Unauthenticated
	s.user = nil
	s.token = ""
	s.tokens.Set("")
	snap := SessionSnapshot{State: s.state}
	s.mu.Unlock()
	s.notify(snap)
}

// Favorites re-fetches the favorite list from the API; membership is never
// cached locally.
func (s *Session) Favorites(ctx context.Context) ([]moviedb.MovieSummary, error) {
	if !s.IsAuthenticated() {
		return nil, moviedb.ErrUnauthorized
	}
	list, err := s.api.Favorites(ctx)
	if err != nil {
		s.expireOnUnauthorized(err)
		return nil, err
	}
	return list, nil
}

func (s *Session) AddFavorite(ctx context.Context, movieID int) error {
	if !s.IsAuthenticated() {
		return moviedb.ErrUnauthorized
	}
	if err := s.api.AddFavorite(ctx, movieID); err != nil {
		s.expireOnUnauthorized(err)
		return err
	}
	return nil
}

func (s *Session) RemoveFavorite(ctx context.Context, movieID int) error {
	if !s.IsAuthenticated() {
		return moviedb.ErrUnauthorized
	}
	if err := s.api.RemoveFavorite(ctx, movieID); err != nil {
		s.expireOnUnauthorized(err)
		return err
	}
	return nil
}

// UpdateProfile applies a bearer-authenticated patch and refreshes the
// persisted user on success.
func (s *Session) UpdateProfile(ctx context.Context, patch moviedb.ProfilePatch) (*moviedb.User, error) {
	if !s.IsAuthenticated() {
		return nil, moviedb.ErrUnauthorized
	}
	updated, err := s.api.UpdateProfile(ctx, patch)
	if err != nil {
		s.expireOnUnauthorized(err)
		return nil, err
	}

	s.mu.Lock()
	if s.user != nil && updated != nil {
		merged := *s.user
		if updated.Email != "" {
			merged.Email = updated.Email
		}
		if updated.Phone != "" {
			merged.Phone = updated.Phone
		}
		if updated.DOB != "" {
			merged.DOB = updated.DOB
		}
		if updated.Name != "" {
			merged.Name = updated.Name
		}
		s.user = &merged
	}
	user := s.user
	token := s.token
	snap := SessionSnapshot{State: s.state, User: s.user}
	s.mu.Unlock()

	if user != nil {
		if err := s.persist(*user, token); err != nil {
			s.log.Warn("persisting session failed", zap.Error(err))
		}
	}
	s.notify(snap)
	return user, nil
}

// expireOnUnauthorized is the one place an error causes a store-level state
// transition: a 401 mid-session means the token died, so force a logout.
func (s *Session) expireOnUnauthorized(err error) {
	if !errors.Is(err, moviedb.ErrUnauthorized) {
		return
	}
	s.mu.Lock()
	wasAuthed := s.state == Authenticated
	s.mu.Unlock()
	if !wasAuthed {
		return
	}
	s.log.Info("session token rejected, logging out")
	s.Logout()
}

func (s *Session) persist(u moviedb.User, token string) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.storage.Put(userKey, b); err != nil {
		return err
	}
	return s.storage.Put(tokenKey, []byte(token))
}

func (s *Session) clearPersisted() {
	_ = s.storage.Delete(userKey)
	_ = s.storage.Delete(tokenKey)
}
