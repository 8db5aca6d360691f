// Package jobs manages the catalog the same way the feed manages posts: the
// applied mark is flipped optimistically in the store, confirmed against the
// repository, and rolled back to the pre-mutation snapshot if the write fails.
package jobs

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/worklinkhq/worklink/internal/notify"
	"github.com/worklinkhq/worklink/internal/store"
	"github.com/worklinkhq/worklink/pkg/models"
)

// Repository is the persistence surface mutations are confirmed against.
// *database.JobRepository satisfies it.
type Repository interface {
	GetAllJobs() ([]*models.Job, error)
	UpdateJob(job *models.Job) error
}

// Service applies catalog mutations optimistically and reconciles with the
// repository.
type Service struct {
	store    *store.Store[*models.Job]
	repo     Repository
	notifier notify.Notifier
	log      zerolog.Logger
}

func NewService(repo Repository, notifier notify.Notifier, log zerolog.Logger) *Service {
	return &Service{
		store:    store.New[*models.Job]("job", notifier),
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Load hydrates the store from the repository.
func (s *Service) Load() error {
	jobs, err := s.repo.GetAllJobs()
	if err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}
	s.store.Load(jobs)
	return nil
}

// ToggleApplied flips the applied mark on a listing, moving the applicant
// counter with it. The change shows up immediately; if persistence fails the
// catalog reverts and the caller gets the error.
func (s *Service) ToggleApplied(id string) (*models.Job, error) {
	snap := s.store.Snapshot()
	if err := s.store.Toggle(id, "applied"); err != nil {
		return nil, err
	}

	job, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateJob(job); err != nil {
		s.store.Restore(snap)
		s.log.Error().Err(err).Str("job", id).Msg("apply toggle rolled back")
		s.notifier.Notify(notify.KindError, "Something went wrong", "Your change could not be saved and has been undone.")
		return nil, fmt.Errorf("persist apply: %w", err)
	}
	return job, nil
}

// Jobs returns the catalog in store order.
func (s *Service) Jobs() []*models.Job {
	return s.store.List()
}
