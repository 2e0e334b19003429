package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/wrapping-quotes/internal/order"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// StoreOptions configures a Store.
type StoreOptions struct {
	Exporter Exporter
	Logger   zerolog.Logger
	Now      func() time.Time
}

// Store keeps live sessions in memory. Every session draws order numbers from
// the same sequence.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	seq      order.Sequence
	exporter Exporter
	logger   zerolog.Logger
	now      func() time.Time
}

// NewStore builds an empty store.
func NewStore(opts StoreOptions) *Store {
	if opts.Exporter == nil {
		opts.Exporter = DirExporter{Dir: "."}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		sessions: make(map[string]*Session),
		exporter: opts.Exporter,
		logger:   opts.Logger,
		now:      opts.Now,
	}
}

// Create opens a session with a fresh order.
func (s *Store) Create() *Session {
	sess := newSession(uuid.NewString(), &s.seq, s.exporter, s.now, s.logger)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	sess.logger.Info().Msg("session opened")
	return sess
}

// Get looks up a session by id.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close drops a session. With exportFirst a pending order is exported first
// and the session survives a failed export.
func (s *Store) Close(ctx context.Context, id string, exportFirst bool) (string, error) {
	sess, err := s.Get(id)
	if err != nil {
		return "", err
	}
	path, err := sess.close(ctx, exportFirst)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	sess.logger.Info().Msg("session closed")
	return path, nil
}

// Len reports the number of open sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
