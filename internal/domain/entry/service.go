package entry

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Read(ctx context.Context, owner, dateKey string) (Entry, error)
	Write(ctx context.Context, owner, dateKey string, content *string) (Entry, error)
	List(ctx context.Context, owner string) ([]string, error)
}

// Service defines the business logic for diary entries
type Service struct {
	repo        Repository
	strictDates bool
	log         *slog.Logger
}

// NewService creates a new entry service. With strictDates only real
// YYYY-MM-DD calendar dates are accepted as keys.
func NewService(repo Repository, strictDates bool, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		strictDates: strictDates,
		log:         log.With("component", "entry_service"),
	}
}

// Read returns the entry for the key, empty if it was never written.
func (s *Service) Read(ctx context.Context, owner, dateKey string) (Entry, error) {
	if err := s.validate(owner, dateKey); err != nil {
		return Entry{}, err
	}

	e, err := s.repo.Get(ctx, owner, dateKey)
	if err != nil {
		s.log.Error("failed to read entry", "owner", owner, "date_key", dateKey, "error", err)
		return Entry{}, fmt.Errorf("%w: read entry: %w", ErrStorage, err)
	}

	e.Owner = owner
	e.DateKey = dateKey

	return e, nil
}

// Write overwrites the entry content. A nil content means the field was
// absent from the request; an empty string is a valid entry.
func (s *Service) Write(ctx context.Context, owner, dateKey string, content *string) (Entry, error) {
	if content == nil {
		return Entry{}, ErrMissingContent
	}

	if err := s.validate(owner, dateKey); err != nil {
		return Entry{}, err
	}

	e, err := s.repo.Put(ctx, owner, dateKey, *content)
	if err != nil {
		s.log.Error("failed to write entry", "owner", owner, "date_key", dateKey, "error", err)
		return Entry{}, fmt.Errorf("%w: write entry: %w", ErrStorage, err)
	}

	s.log.Debug("entry saved", "owner", owner, "date_key", dateKey, "size", len(*content))

	return e, nil
}

// List returns the date keys the owner has written, newest first.
func (s *Service) List(ctx context.Context, owner string) ([]string, error) {
	if err := ValidateOwner(owner); err != nil {
		return nil, err
	}

	keys, err := s.repo.List(ctx, owner)
	if err != nil {
		s.log.Error("failed to list entries", "owner", owner, "error", err)
		return nil, fmt.Errorf("%w: list entries: %w", ErrStorage, err)
	}

	if keys == nil {
		keys = []string{}
	}

	slices.Sort(keys)
	slices.Reverse(keys)

	return keys, nil
}

func (s *Service) validate(owner, dateKey string) error {
	if err := ValidateOwner(owner); err != nil {
		return err
	}
	return ValidateDateKey(dateKey, s.strictDates)
}
