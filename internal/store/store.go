// Package store is the on-device trip data store: the single owner of trips,
// cards, reservations and media references. All mutations run through one
// serialized commit path; readers see committed snapshots only.
package store

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"TripKeeper/internal/media"
	"TripKeeper/internal/metrics"
	"TripKeeper/internal/model"
	"TripKeeper/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures Open.
type Options struct {
	Trips   repo.TripRepository // required
	Media   *media.Repository
	Session repo.SessionStore
	Logger  *zap.SugaredLogger
	Metrics *metrics.Metrics
	// Debug asserts (zap DPanic) on operations that name unknown ids.
	Debug bool
	Now   func() time.Time
}

// Store is the trip data store. Create one with Open and share the handle.
type Store struct {
	repo    repo.TripRepository
	media   *media.Repository
	session repo.SessionStore
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
	debug   bool
	now     func() time.Time

	mu       sync.Mutex // single writer
	state    state
	version  uint64
	desynced bool
	lastErr  error

	current atomic.Pointer[Snapshot]

	subMu   sync.Mutex
	subs    map[uint64]*Subscription
	nextSub uint64
}

// Open loads the durable state and returns the store.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Trips == nil {
		return nil, errors.New("store: nil trip repository")
	}
	s := &Store{
		repo:    opts.Trips,
		media:   opts.Media,
		session: opts.Session,
		log:     opts.Logger,
		metrics: opts.Metrics,
		debug:   opts.Debug,
		now:     opts.Now,
		state:   newState(),
		subs:    make(map[uint64]*Subscription),
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}
	if s.now == nil {
		s.now = time.Now
	}

	snap, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	s.state.trips.load(snap.Trips, func(t model.Trip) string { return t.ID })
	s.state.cards.load(snap.Cards, func(c model.Card) string { return c.ID })
	s.state.reservations.load(snap.Reservations, func(r model.Reservation) string { return r.ID })
	if err := s.dropOrphans(ctx); err != nil {
		s.log.Warnw("orphan cleanup not persisted", "error", err)
	}
	s.restoreSession()

	s.current.Store(s.state.snapshot(0))
	s.updateGauges()
	s.log.Infow("trip store opened",
		"trips", s.state.trips.len(),
		"cards", s.state.cards.len(),
		"reservations", s.state.reservations.len(),
		"active_trip", s.state.activeTripID,
	)
	return s, nil
}

// dropOrphans removes cards and reservations whose trip is missing from the durable copy.
func (s *Store) dropOrphans(ctx context.Context) error {
	tx := newTxn(s.state)
	orphan := func(tripID string) bool { return !s.state.trips.has(tripID) }
	for _, id := range s.state.cards.ids(func(c model.Card) bool { return orphan(c.TripID) }) {
		tx.removeCard(id)
	}
	for _, id := range s.state.reservations.ids(func(r model.Reservation) bool { return orphan(r.TripID) }) {
		tx.removeReservation(id)
	}
	if !tx.changed() {
		return nil
	}
	s.log.Warnw("dropping orphaned rows", "cards", len(tx.dirtyCards), "reservations", len(tx.dirtyReservations))
	s.state = tx.state
	return s.repo.Apply(ctx, tx.changeset())
}

func (s *Store) restoreSession() {
	if s.session == nil {
		return
	}
	id, err := s.session.LoadActiveTrip()
	if err != nil {
		s.log.Warnw("active trip hint unreadable", "error", err)
		return
	}
	if id == "" {
		return
	}
	if s.state.trips.has(id) {
		s.state.activeTripID = id
		return
	}
	if err := s.session.ClearActiveTrip(); err != nil {
		s.log.Warnw("stale active trip hint not cleared", "trip_id", id, "error", err)
	}
}

// commit runs fn against a copy of the state and, when fn succeeds and
// changed something, makes the copy current, writes it through and
// publishes exactly one snapshot. A *PersistError return means the change
// is live in memory but not yet durable.
func (s *Store) commit(op string, fn func(tx *txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newTxn(s.state.clone())
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.changed() {
		return nil
	}

	s.state = tx.state
	s.version++
	var perr error
	if cs := tx.changeset(); !cs.Empty() || s.desynced {
		perr = s.persist(op, cs)
	}
	if tx.sessionChanged {
		s.saveSessionHint()
	}

	snap := s.state.snapshot(s.version)
	s.current.Store(snap)
	s.publish(snap)

	s.metrics.Commit(op)
	s.updateGauges()
	return perr
}

// persist writes a changeset; after an earlier failure it rewrites the whole
// state instead so the durable copy catches up.
func (s *Store) persist(op string, cs repo.Changeset) error {
	ctx := context.Background()
	var err error
	if s.desynced {
		err = s.repo.ReplaceAll(ctx, s.durableSnapshot())
	} else {
		err = s.repo.Apply(ctx, cs)
	}
	if err != nil {
		s.desynced = true
		s.lastErr = err
		s.metrics.PersistFailure()
		s.log.Errorw("durable write failed, keeping in-memory state", "op", op, "error", err)
		return &PersistError{Op: op, Err: err}
	}
	if s.desynced {
		s.log.Infow("durable copy resynchronized", "op", op)
	}
	s.desynced = false
	s.lastErr = nil
	return nil
}

func (s *Store) durableSnapshot() repo.Snapshot {
	return repo.Snapshot{
		Trips:        s.state.trips.ordered(),
		Cards:        s.state.cards.ordered(),
		Reservations: s.state.reservations.ordered(),
	}
}

func (s *Store) saveSessionHint() {
	if s.session == nil {
		return
	}
	var err error
	if s.state.activeTripID == "" {
		err = s.session.ClearActiveTrip()
	} else {
		err = s.session.SaveActiveTrip(s.state.activeTripID)
	}
	if err != nil {
		s.log.Warnw("active trip hint not saved", "error", err)
	}
}

func (s *Store) updateGauges() {
	s.metrics.Entities(s.state.trips.len(), s.state.cards.len(), s.state.reservations.len())
}

// unknown reports an operation on an id the store does not hold. The
// operation itself stays a no-op; in debug mode this is an assertion.
func (s *Store) unknown(op, id string) {
	if s.debug {
		s.log.DPanicw("operation on unknown id", "op", op, "id", id)
		return
	}
	s.log.Debugw("operation on unknown id ignored", "op", op, "id", id)
}

func (s *Store) newID() string { return uuid.NewString() }

// Snapshot returns the latest committed snapshot.
func (s *Store) Snapshot() *Snapshot { return s.current.Load() }

// Trips returns the committed trips in insertion order.
func (s *Store) Trips() []model.Trip { return s.Snapshot().Trips }

// Cards returns the committed cards in insertion order.
func (s *Store) Cards() []model.Card { return s.Snapshot().Cards }

// PersistenceHealthy reports whether the durable copy matches memory.
func (s *Store) PersistenceHealthy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.desynced
}

// LastPersistError returns the error of the last failed durable write, or nil
// once a later write has succeeded.
func (s *Store) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Resync rewrites the durable copy from memory.
func (s *Store) Resync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.ReplaceAll(ctx, s.durableSnapshot()); err != nil {
		s.desynced = true
		s.lastErr = err
		s.metrics.PersistFailure()
		return &PersistError{Op: "resync", Err: err}
	}
	s.desynced = false
	s.lastErr = nil
	return nil
}

// StoreMedia persists payload in the media repository.
func (s *Store) StoreMedia(payload []byte) (model.Media, error) {
	if s.media == nil {
		return model.Media{}, errors.New("store: media repository not configured")
	}
	return s.media.Store(context.Background(), payload)
}

// LoadMediaImage returns the decoded image for mediaID. Absent content is not an error.
func (s *Store) LoadMediaImage(mediaID string) (image.Image, bool) {
	if s.media == nil {
		return nil, false
	}
	return s.media.LoadImage(context.Background(), mediaID)
}

// LoadMedia returns the raw bytes for mediaID.
func (s *Store) LoadMedia(mediaID string) ([]byte, bool) {
	if s.media == nil {
		return nil, false
	}
	return s.media.Load(context.Background(), mediaID)
}
