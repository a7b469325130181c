package songs

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Store is the persistence surface the service drives. Implementations
// must be safe for concurrent use and must return ErrNotFound and
// ErrUnavailable (possibly wrapped) for the matching conditions.
type Store interface {
	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Song, error)

	// Put stores the full record, overwriting any record with the
	// same id.
	Put(ctx context.Context, song Song) error

	// Update merges the supplied fields into the stored record and
	// returns the merged result, or ErrNotFound.
	Update(ctx context.Context, id string, patch UpdateParams) (*Song, error)

	// Delete removes the record and returns its last state, or
	// ErrNotFound.
	Delete(ctx context.Context, id string) (*Song, error)

	// ListAll returns every stored record, in store order.
	ListAll(ctx context.Context) ([]Song, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// Service orchestrates validation and persistence for song records. It
// holds no record state of its own, so any number of instances can run
// against the same store.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a Service backed by store. A nil logger falls back
// to slog.Default().
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// List returns all stored songs in store order.
func (s *Service) List(ctx context.Context) ([]Song, error) {
	return s.store.ListAll(ctx)
}

// Create validates the payload, assigns a fresh id, defaults plays to
// zero when unspecified, and stores the record. Nothing is written when
// validation fails.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Song, error) {
	if err := validateCreate(p); err != nil {
		return nil, err
	}

	song := Song{
		ID:   uuid.NewString(),
		Name: p.Name,
		Path: p.Path,
	}
	if p.Plays != nil {
		song.Plays = *p.Plays
	}

	if err := s.store.Put(ctx, song); err != nil {
		return nil, err
	}
	s.logger.Info("created song", "id", song.ID)
	return &song, nil
}

// Get returns the song with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Song, error) {
	return s.store.Get(ctx, id)
}

// Update validates the supplied fields and merges them into the stored
// record, returning the merged result. Fields not present in the patch
// keep their stored value; an empty patch leaves the record untouched.
func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (*Song, error) {
	if err := validateUpdate(p); err != nil {
		return nil, err
	}
	song, err := s.store.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info("updated song", "id", id)
	return song, nil
}

// Delete removes the song and returns its last stored state.
func (s *Service) Delete(ctx context.Context, id string) (*Song, error) {
	song, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("deleted song", "id", id)
	return song, nil
}

// Ready reports whether the backing store is currently reachable. Used
// by the readiness probe.
func (s *Service) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}
