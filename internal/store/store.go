// Package store holds an ordered, most-recent-first collection of entities
// and applies mutations to it immediately, before any backing confirmation.
// Rollback is the caller's job: take a Snapshot before the mutation, Restore
// it if the confirmation fails. The store itself knows nothing about
// transport or persistence.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/internal/notify"
)

// Entity is anything the store can hold. Clone must return a deep copy so
// snapshots stay independent of later mutations.
type Entity[E any] interface {
	EntityID() string
	SetEntityID(id string)
	OwnerID() string
	Validate() error
	Toggle(field string) error
	Clone() E
}

// Store is an ordered collection with optimistic mutation semantics. All
// mutations are serialized; each one either fully applies or leaves the
// collection untouched.
type Store[E Entity[E]] struct {
	mu       sync.Mutex
	items    []E
	label    string
	notifier notify.Notifier
	newID    func() string
}

// New returns an empty store. label names the entity kind in notifications
// ("post", "job"). A nil notifier is treated as a no-op sink.
func New[E Entity[E]](label string, notifier notify.Notifier) *Store[E] {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Store[E]{
		label:    label,
		notifier: notifier,
		newID:    uuid.NewString,
	}
}

// Load replaces the collection with the given entities, preserving their
// order. Used to hydrate from the backing repository; emits no notifications.
func (s *Store[E]) Load(items []E) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = cloneAll(items)
}

// Create validates the draft, assigns it a fresh id, and inserts it at the
// head of the collection. Most-recent-first is a fixed policy.
func (s *Store[E]) Create(draft E) (string, error) {
	if err := draft.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if s.index(id) >= 0 {
		return "", fmt.Errorf("duplicate %s id %s: %w", s.label, id, app.ErrOperationFailed)
	}
	entity := draft.Clone()
	entity.SetEntityID(id)
	s.items = append([]E{entity}, s.items...)

	s.notifier.Notify(notify.KindInfo, strTitle(s.label)+" created", "Your "+s.label+" has been published.")
	return id, nil
}

// Update applies patch to a copy of the entity and commits the copy, so a
// misbehaving patch can never leave partial state. Id and ownership are
// preserved; a patch that changes ownership is rejected.
func (s *Store[E]) Update(id string, patch func(E)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%s %s: %w", s.label, id, app.ErrNotFound)
	}

	next := s.items[i].Clone()
	patch(next)
	next.SetEntityID(id)
	if next.OwnerID() != s.items[i].OwnerID() {
		return fmt.Errorf("patch may not change %s ownership: %w", s.label, app.ErrValidation)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.items[i] = next

	s.notifier.Notify(notify.KindInfo, strTitle(s.label)+" updated", "Your changes have been applied.")
	return nil
}

// Delete removes the entity if present. Deleting an absent id is a silent
// no-op so duplicate delete clicks are safe.
func (s *Store[E]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)

	s.notifier.Notify(notify.KindInfo, strTitle(s.label)+" deleted", "The "+s.label+" has been removed.")
}

// Toggle flips a like-style flag and its paired counter by exactly one. Each
// call is a discrete transition; rapid repeated calls are applied in order.
func (s *Store[E]) Toggle(id, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%s %s: %w", s.label, id, app.ErrNotFound)
	}

	next := s.items[i].Clone()
	if err := next.Toggle(field); err != nil {
		return err
	}
	s.items[i] = next

	s.notifier.Notify(notify.KindInfo, strTitle(s.label)+" "+field+" toggled", "")
	return nil
}

// Get returns a copy of the entity with the given id.
func (s *Store[E]) Get(id string) (E, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero E
	i := s.index(id)
	if i < 0 {
		return zero, fmt.Errorf("%s %s: %w", s.label, id, app.ErrNotFound)
	}
	return s.items[i].Clone(), nil
}

// List returns a copy of the collection in store order (most recent first).
func (s *Store[E]) List() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.items)
}

// Len reports the number of entities currently held.
func (s *Store[E]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Snapshot captures the current state for later rollback.
type Snapshot[E Entity[E]] struct {
	items []E
}

// Snapshot returns an independent copy of the collection.
func (s *Store[E]) Snapshot() Snapshot[E] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[E]{items: cloneAll(s.items)}
}

// Restore replaces the collection with a previously captured snapshot.
func (s *Store[E]) Restore(snap Snapshot[E]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = cloneAll(snap.items)
}

// index returns the position of id, or -1. Callers must hold s.mu.
func (s *Store[E]) index(id string) int {
	for i, e := range s.items {
		if e.EntityID() == id {
			return i
		}
	}
	return -1
}

func cloneAll[E Entity[E]](items []E) []E {
	out := make([]E, len(items))
	for i, e := range items {
		out[i] = e.Clone()
	}
	return out
}

func strTitle(label string) string {
	if label == "" {
		return "Item"
	}
	return string(label[0]-'a'+'A') + label[1:]
}
