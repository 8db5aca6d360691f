// Package feed manages the social feed: posts are mutated optimistically in
// the in-memory store, then confirmed against the repository. A failed
// confirmation rolls the store back to its pre-mutation snapshot, so the
// visible feed never drifts from what actually persisted.
package feed

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/internal/notify"
	"github.com/worklinkhq/worklink/internal/store"
	"github.com/worklinkhq/worklink/pkg/models"
)

// Repository is the persistence surface the service confirms mutations
// against. *database.PostRepository satisfies it.
type Repository interface {
	CreatePost(post *models.Post) error
	UpdatePost(post *models.Post) error
	DeletePost(id string) error
	GetAllPosts() ([]*models.Post, error)
}

// Service applies feed mutations optimistically and reconciles with the
// repository.
type Service struct {
	store    *store.Store[*models.Post]
	repo     Repository
	session  models.Session
	notifier notify.Notifier
	log      zerolog.Logger
}

// NewService returns a feed service acting as the given session's user.
func NewService(repo Repository, session models.Session, notifier notify.Notifier, log zerolog.Logger) *Service {
	return &Service{
		store:    store.New[*models.Post]("post", notifier),
		repo:     repo,
		session:  session,
		notifier: notifier,
		log:      log,
	}
}

// Load hydrates the store from the repository.
func (s *Service) Load() error {
	posts, err := s.repo.GetAllPosts()
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	s.store.Load(posts)
	return nil
}

// CreatePost publishes a new post authored by the session user. The post
// appears at the head of the feed immediately; if persistence fails the feed
// reverts and the caller gets the error.
func (s *Service) CreatePost(content, imageURL string) (string, error) {
	draft := &models.Post{
		AuthorID:   s.session.UserID,
		AuthorName: s.session.Name,
		Content:    content,
		ImageURL:   imageURL,
		CreatedAt:  time.Now(),
	}

	snap := s.store.Snapshot()
	id, err := s.store.Create(draft)
	if err != nil {
		return "", err
	}

	created, err := s.store.Get(id)
	if err != nil {
		return "", err
	}
	if err := s.repo.CreatePost(created); err != nil {
		s.rollback(snap, "create", err)
		return "", fmt.Errorf("persist post: %w", err)
	}
	return id, nil
}

// UpdatePost replaces the content of one of the session user's posts.
func (s *Service) UpdatePost(id, content string) error {
	if err := s.authorize(id); err != nil {
		return err
	}

	snap := s.store.Snapshot()
	err := s.store.Update(id, func(p *models.Post) {
		p.Content = content
	})
	if err != nil {
		return err
	}

	return s.confirm(snap, "update", id)
}

// DeletePost removes one of the session user's posts. Deleting an id that is
// already gone is a no-op.
func (s *Service) DeletePost(id string) error {
	if _, err := s.store.Get(id); err != nil {
		return nil
	}
	if err := s.authorize(id); err != nil {
		return err
	}

	snap := s.store.Snapshot()
	s.store.Delete(id)

	if err := s.repo.DeletePost(id); err != nil {
		s.rollback(snap, "delete", err)
		return fmt.Errorf("persist delete: %w", err)
	}
	return nil
}

// ToggleLike flips the session user's like on any post, own or not.
func (s *Service) ToggleLike(id string) error {
	snap := s.store.Snapshot()
	if err := s.store.Toggle(id, "like"); err != nil {
		return err
	}
	return s.confirm(snap, "like", id)
}

// Posts returns the feed, most recent first.
func (s *Service) Posts() []*models.Post {
	return s.store.List()
}

// MyPosts returns only the session user's posts, in feed order. This is the
// profile view of the feed: same store, filtered by ownership.
func (s *Service) MyPosts() []*models.Post {
	out := []*models.Post{}
	for _, p := range s.store.List() {
		if p.AuthorID == s.session.UserID {
			out = append(out, p)
		}
	}
	return out
}

// authorize rejects mutations of posts the session user does not own.
func (s *Service) authorize(id string) error {
	post, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if post.AuthorID != s.session.UserID {
		return fmt.Errorf("post %s belongs to another user: %w", id, app.ErrValidation)
	}
	return nil
}

// confirm writes the store's current version of the post through to the
// repository, rolling back on failure.
func (s *Service) confirm(snap store.Snapshot[*models.Post], op, id string) error {
	post, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePost(post); err != nil {
		s.rollback(snap, op, err)
		return fmt.Errorf("persist %s: %w", op, err)
	}
	return nil
}

func (s *Service) rollback(snap store.Snapshot[*models.Post], op string, cause error) {
	s.store.Restore(snap)
	s.log.Error().Err(cause).Str("op", op).Msg("feed mutation rolled back")
	s.notifier.Notify(notify.KindError, "Something went wrong", "Your change could not be saved and has been undone.")
}
