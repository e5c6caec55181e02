package store

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-core/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Entry is one live session. All access to the session goes through Do or
// View so that reveals on the same session never interleave.
type Entry struct {
	ID        string
	StartedAt time.Time

	mu      sync.Mutex
	session *mines.Session
	endedAt *time.Time
	now     func() time.Time
}

// Do runs fn with exclusive access to the session. The end time is stamped
// the first time the session is seen in a terminal state.
func (e *Entry) Do(fn func(s *mines.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := fn(e.session)
	if e.endedAt == nil && e.session.State().Over() {
		t := e.now()
		e.endedAt = &t
	}
	return err
}

// View runs fn with exclusive access to the session and its end time (nil
// while the session is in progress). fn must not mutate the session.
func (e *Entry) View(fn func(s *mines.Session, endedAt *time.Time)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session, e.endedAt)
}

func (e *Entry) expired(cutoff time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.endedAt != nil {
		return e.endedAt.Before(cutoff)
	}
	return e.StartedAt.Before(cutoff)
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	log     logrus.FieldLogger
	now     func() time.Time
}

func New(log logrus.FieldLogger) *Store {
	return &Store{
		entries: make(map[string]*Entry),
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func newID() string {
	u := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(u[:])
}

func (s *Store) Create(ctx context.Context, session *mines.Session) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e := &Entry{
		ID:        newID(),
		StartedAt: s.now(),
		session:   session,
		now:       s.now,
	}

	s.mu.Lock()
	s.entries[e.ID] = e
	s.mu.Unlock()

	s.log.WithField("session_id", e.ID).Debug("session created")
	return e, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// Delete removes id from the store without checking if it existed.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops sessions that ended more than ttl ago, and sessions that
// started more than ttl ago and never ended. It returns how many went.
func (s *Store) Sweep(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, e := range s.entries {
		if err := ctx.Err(); err != nil {
			return dropped, err
		}
		if e.expired(cutoff) {
			delete(s.entries, id)
			dropped++
		}
	}
	return dropped, nil
}

// Run sweeps the store every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := s.Sweep(ctx, ttl)
			if err != nil {
				return nil
			}
			if n > 0 {
				s.log.WithFields(logrus.Fields{
					"dropped": n,
					"live":    s.Len(),
				}).Info("swept expired sessions")
			}
		}
	}
}
