// Package session owns the authentication state of the running process and
// persists it between runs.
//
// Store is the single source of truth for "who is logged in". The request
// pipeline reads the token from it before every call and clears it when the
// backend rejects the credential; the shell subscribes to it to keep its
// prompt current.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/contractlens/internal/client/models"
	"github.com/dmitrijs2005/contractlens/internal/common"
	"github.com/dmitrijs2005/contractlens/internal/logging"
)

// ErrInvalidSession is returned by Establish for an empty token or a user
// without an id or email.
var ErrInvalidSession = errors.New("session requires a token and a user")

type subscriber struct {
	id int
	fn func(models.Snapshot)
}

type Store struct {
	storage Storage
	log     logging.Logger
	now     func() time.Time

	// mutate serializes Establish, Clear and Restore including their storage
	// writes; mu guards the in-memory fields only.
	mutate sync.Mutex
	mu     sync.RWMutex
	token  string
	user   *models.User

	subMu  sync.Mutex
	subs   []subscriber
	nextID int
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns an unauthenticated store over storage. Call Restore to
// pick up a persisted session.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		log:     logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) snapshotLocked() models.Snapshot {
	if s.token == "" || s.user == nil {
		return models.Snapshot{}
	}
	u := *s.user
	return models.Snapshot{Authenticated: true, User: &u}
}

// set swaps the in-memory state and reports the new snapshot and whether
// anything changed.
func (s *Store) set(token string, user *models.User) (models.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.token != token || !sameUser(s.user, user)
	s.token = token
	s.user = user
	return s.snapshotLocked(), changed
}

func sameUser(a, b *models.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Current returns a copy of the session state. It never fails.
func (s *Store) Current() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Token returns the bearer credential when a session is active.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != "" && s.user != nil
}

// Restore loads the persisted session. Missing, half written, malformed or
// expired records leave the store unauthenticated; the broken ones are
// removed from storage.
func (s *Store) Restore(ctx context.Context) models.Snapshot {
	s.mutate.Lock()

	token, user := s.load(ctx)
	snap, changed := s.set(token, user)

	s.mutate.Unlock()

	if snap.Authenticated {
		s.log.Debug(ctx, "session restored", "user", snap.User.Email)
	}
	if changed {
		s.notify(snap)
	}
	return snap
}

func (s *Store) load(ctx context.Context) (string, *models.User) {
	rec, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "persisted session unreadable", "error", err)
		if errors.Is(err, common.ErrMalformedLocalData) {
			s.discard(ctx)
		}
		return "", nil
	}
	if rec.Empty() {
		return "", nil
	}

	token := strings.TrimSpace(string(rec.Token))
	if token == "" || len(rec.User) == 0 {
		s.log.Warn(ctx, "persisted session incomplete, discarding")
		s.discard(ctx)
		return "", nil
	}

	var user models.User
	if err := json.Unmarshal(rec.User, &user); err != nil || !user.Valid() {
		s.log.Warn(ctx, "persisted user malformed, discarding", "error", err)
		s.discard(ctx)
		return "", nil
	}

	if tokenExpired(token, s.now()) {
		s.log.Info(ctx, "persisted session expired, discarding", "user", user.Email)
		s.discard(ctx)
		return "", nil
	}

	return token, &user
}

// discard removes the persisted pair. When removal fails the pair is
// overwritten with an empty record, which restores as no session.
func (s *Store) discard(ctx context.Context) {
	err := s.storage.Remove(ctx)
	if err == nil {
		return
	}
	s.log.Warn(ctx, "failed to remove persisted session", "error", err)

	if err := s.storage.Save(ctx, Record{Token: []byte{}, User: []byte{}}); err != nil {
		s.log.Error(ctx, "persisted session could not be invalidated", "error", err)
	}
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Tokens that are not JWTs carry no expiry the client can see.
func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(now)
}

// Establish makes token and user the active session and persists them.
// The new state is visible to readers before Establish returns. A storage
// failure is logged and the previously stored pair is removed, so a restart
// comes up logged out rather than as the earlier user. The session still
// works for this process.
func (s *Store) Establish(ctx context.Context, token string, user *models.User) error {
	token = strings.TrimSpace(token)
	if token == "" || !user.Valid() {
		return ErrInvalidSession
	}
	u := *user

	s.mutate.Lock()

	snap, changed := s.set(token, &u)

	if err := s.persist(ctx, token, &u); err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
		s.discard(ctx)
	}

	s.mutate.Unlock()

	if changed {
		s.notify(snap)
	}
	return nil
}

func (s *Store) persist(ctx context.Context, token string, user *models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.storage.Save(ctx, Record{Token: []byte(token), User: payload})
}

// Clear forgets the session in memory and in storage. It is safe to call
// when nobody is logged in.
func (s *Store) Clear(ctx context.Context) {
	s.mutate.Lock()

	snap, changed := s.set("", nil)
	s.discard(ctx)

	s.mutate.Unlock()

	if changed {
		s.notify(snap)
	}
}

// Revoke clears the session only while token is the active credential, so
// a rejection of an older token cannot log out a newer session. It reports
// whether the session was cleared.
func (s *Store) Revoke(ctx context.Context, token string) bool {
	s.mutate.Lock()

	if current, ok := s.Token(); !ok || current != token {
		s.mutate.Unlock()
		return false
	}
	snap, changed := s.set("", nil)
	s.discard(ctx)

	s.mutate.Unlock()

	if changed {
		s.notify(snap)
	}
	return true
}

// Subscribe registers fn to be called with the new snapshot after every
// state change. Callbacks run synchronously in subscription order.
func (s *Store) Subscribe(fn func(models.Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) notify(snap models.Snapshot) {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(cloneSnapshot(snap))
	}
}

func cloneSnapshot(snap models.Snapshot) models.Snapshot {
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}
