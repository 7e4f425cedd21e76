package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"cattery/internal/core/cattery"
	perr "cattery/internal/platform/errors"
	"cattery/internal/platform/logger"
	"cattery/internal/services/cattery/repo"
)

// Snapshot is a committed state and the instant it was read or written at
type Snapshot struct {
	State cattery.State
	At    time.Time
}

// Mutation computes the next state from the current one at now.
// changed tells the Store whether next must be persisted, even alongside an error
type Mutation func(cur cattery.State, now time.Time) (next cattery.State, changed bool, err error)

// Store is the single writer over the persisted aggregate.
// Every read-modify-write cycle runs under one mutex; now is read once per cycle
type Store struct {
	storage repo.Storage
	now     func() time.Time
	log     *logger.Logger

	mu sync.Mutex

	subsMu sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
}

// NewStore wraps storage. now may be nil for the wall clock
func NewStore(storage repo.Storage, now func() time.Time, log *logger.Logger) *Store {
	if storage == nil {
		panic("cattery store: nil storage")
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Named("cattery.store")
	}
	return &Store{storage: storage, now: now, log: log, subs: map[int]chan Snapshot{}}
}

// Load returns the persisted state and never fails.
// Missing or unreadable records become the default state
func (s *Store) Load(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	st, _ := s.read(ctx, now)
	return Snapshot{State: st, At: now}
}

// Update runs fn against the current state and persists the result when it changed.
// Subscribers see the new state only after a successful write
func (s *Store) Update(ctx context.Context, fn Mutation) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	cur, err := s.read(ctx, now)
	if err != nil {
		return Snapshot{State: cur, At: now}, err
	}

	next, changed, ferr := fn(cur.Clone(), now)
	if !changed {
		return Snapshot{State: cur, At: now}, ferr
	}
	if err := s.storage.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("cattery save failed")
		if ferr != nil {
			return Snapshot{State: cur, At: now}, ferr
		}
		return Snapshot{State: cur, At: now}, perr.Wrap(err, perr.ErrorCodeUnavailable, "save cattery")
	}

	snap := Snapshot{State: next, At: now}
	s.publish(snap)
	return snap, ferr
}

// read loads the record. Missing or corrupt records are replaced with a persisted
// default; other backend failures yield the default without touching storage and
// are reported so writers do not clobber a record they could not see
func (s *Store) read(ctx context.Context, now time.Time) (cattery.State, error) {
	st, err := s.storage.Load(ctx)
	if err == nil {
		return st, nil
	}

	def := cattery.New(now)
	if errors.Is(err, perr.ErrNotFound) || perr.IsCode(err, perr.ErrorCodeJSON) {
		s.log.Warn().Err(err).Msg("cattery record missing or unreadable, starting fresh")
		if serr := s.storage.Save(ctx, def); serr != nil {
			s.log.Error().Err(serr).Msg("persist default cattery failed")
		}
		return def, nil
	}

	s.log.Warn().Err(err).Msg("cattery load failed, serving default")
	return def, perr.Wrap(err, perr.ErrorCodeUnavailable, "load cattery")
}

func (s *Store) clock() time.Time { return s.now().UTC().Truncate(time.Millisecond) }

// Subscribe returns a channel that receives the latest committed snapshot.
// Slow readers only ever see the newest one. cancel closes the channel
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *Store) publish(snap Snapshot) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		offer(ch, snap)
	}
}

// offer replaces whatever is buffered in ch with v. Callers must be ch's only sender
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
