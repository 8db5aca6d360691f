// Package letter drives a single cover-letter generation: submission,
// validation, the in-flight call to the generation service, result delivery,
// and the post-result edit/save flow.
//
// Status graph:
//
//	Idle ──submit──► Validating ──► Pending ──► Ready ──startEdit──► Editing
//	  ▲                  │             │          │                     │
//	  └──(invalid)───────┘             ▼          │◄────discardEdit─────┤
//	  ▲                             Failed        │                     │
//	  └───────cancel── Pending      (retry via    └──submit── new run   ▼
//	                                 submit)                          Saved
//
// A task is owned by the view that created it and is never shared. Only one
// generation may be in flight per task; a submit while Pending is rejected.
// Late results from superseded runs are dropped by a run-counter guard.
package letter

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/internal/notify"
)

// Status is the lifecycle state of a generation task.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusPending    Status = "pending"
	StatusReady      Status = "ready"
	StatusEditing    Status = "editing"
	StatusSaved      Status = "saved"
	StatusFailed     Status = "failed"
)

// Request is the immutable input of a generation run.
type Request struct {
	JobTitle    string
	CompanyName string
	ResumeRef   string
}

// Validate checks the required fields before any external call is made.
func (r Request) Validate() error {
	switch {
	case strings.TrimSpace(r.JobTitle) == "":
		return fmt.Errorf("job title is required: %w", app.ErrValidation)
	case strings.TrimSpace(r.CompanyName) == "":
		return fmt.Errorf("company name is required: %w", app.ErrValidation)
	case strings.TrimSpace(r.ResumeRef) == "":
		return fmt.Errorf("resume is required: %w", app.ErrValidation)
	}
	return nil
}

// Generator produces the letter text. Latency is unbounded from the task's
// perspective; implementations must honor context cancellation.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Task is the generation state machine. All methods are safe for the single
// logical actor plus the one background goroutine a run spawns.
type Task struct {
	mu       sync.Mutex
	status   Status
	input    Request
	result   string
	draft    string
	run      int
	done     chan struct{}
	cancelFn context.CancelFunc

	gen      Generator
	notifier notify.Notifier
	log      zerolog.Logger
}

// NewTask returns a task in Idle. A nil notifier is treated as a no-op sink.
func NewTask(gen Generator, notifier notify.Notifier, log zerolog.Logger) *Task {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Task{
		status:   StatusIdle,
		gen:      gen,
		notifier: notifier,
		log:      log,
	}
}

// Status returns the current lifecycle state.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Input returns the request of the current run. Retained across Failed so the
// user can retry without retyping.
func (t *Task) Input() Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.input
}

// Result returns the authoritative letter text. Present only in Ready,
// Editing, and Saved.
func (t *Task) Result() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// Draft returns the mutable text while Editing.
func (t *Task) Draft() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

// Submit starts a generation run. Valid from Idle, Failed, Ready, and Saved;
// a submit while a run is in flight fails with ErrBusy and changes nothing.
// Validation failures are reported through the notifier and leave the task in
// Idle with no state retained.
func (t *Task) Submit(ctx context.Context, req Request) error {
	t.mu.Lock()

	if t.status == StatusPending || t.status == StatusValidating {
		t.mu.Unlock()
		return fmt.Errorf("a letter is already being generated: %w", app.ErrBusy)
	}
	if t.status == StatusEditing {
		t.mu.Unlock()
		return fmt.Errorf("finish or discard the current edit first: %w", app.ErrValidation)
	}

	t.status = StatusValidating
	if err := req.Validate(); err != nil {
		t.status = StatusIdle
		t.input = Request{}
		t.result = ""
		t.draft = ""
		t.mu.Unlock()
		t.notifier.Notify(notify.KindError, "Missing information", "Please fill in all required fields.")
		return err
	}

	// A new run supersedes everything: previous result, previous in-flight
	// goroutine (its captured run number no longer matches).
	t.run++
	run := t.run
	t.input = req
	t.result = ""
	t.draft = ""
	t.status = StatusPending

	genCtx, cancel := context.WithCancel(ctx)
	t.cancelFn = cancel
	done := make(chan struct{})
	t.done = done
	t.mu.Unlock()

	t.log.Debug().Int("run", run).Str("job", req.JobTitle).Str("company", req.CompanyName).
		Msg("generation started")

	go func() {
		text, err := t.gen.Generate(genCtx, req)
		t.resolve(run, done, text, err)
	}()
	return nil
}

// resolve applies the outcome of a run, unless the run has been superseded.
func (t *Task) resolve(run int, done chan struct{}, text string, err error) {
	defer close(done)

	t.mu.Lock()
	if run != t.run {
		t.mu.Unlock()
		t.log.Debug().Int("run", run).Msg("stale generation result dropped")
		return
	}
	t.cancelFn = nil

	if err != nil {
		// Input stays put so the user can retry with a plain re-submit.
		t.status = StatusFailed
		t.mu.Unlock()
		t.log.Debug().Int("run", run).Err(err).Msg("generation failed")
		t.notifier.Notify(notify.KindError, "Generation failed", "Could not generate the cover letter. Try again.")
		return
	}

	t.result = text
	t.status = StatusReady
	t.mu.Unlock()
	t.notifier.Notify(notify.KindInfo, "Cover letter generated", "Your personalized cover letter has been created.")
}

// Wait blocks until the current run resolves or ctx expires. Returns
// immediately when no run is in flight.
func (t *Task) Wait(ctx context.Context) error {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel abandons an in-flight run and returns the task to Idle. It cannot
// stop the external call, only guarantee its late result is never applied.
func (t *Task) Cancel() {
	t.mu.Lock()
	if t.status != StatusPending {
		t.mu.Unlock()
		return
	}
	t.run++ // invalidates the in-flight run's captured counter
	t.status = StatusIdle
	t.result = ""
	t.draft = ""
	t.done = nil
	cancel := t.cancelFn
	t.cancelFn = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// StartEdit makes the result mutable. Valid only in Ready.
func (t *Task) StartEdit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusReady {
		return fmt.Errorf("no generated letter to edit in state %s: %w", t.status, app.ErrValidation)
	}
	t.status = StatusEditing
	t.draft = t.result
	return nil
}

// SetDraft replaces the working text while Editing.
func (t *Task) SetDraft(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusEditing {
		return fmt.Errorf("not editing: %w", app.ErrValidation)
	}
	t.draft = text
	return nil
}

// Save freezes the draft as the authoritative result.
func (t *Task) Save() error {
	t.mu.Lock()
	if t.status != StatusEditing {
		t.mu.Unlock()
		return fmt.Errorf("not editing: %w", app.ErrValidation)
	}
	t.result = t.draft
	t.draft = ""
	t.status = StatusSaved
	t.mu.Unlock()

	t.notifier.Notify(notify.KindInfo, "Cover letter saved", "Your cover letter has been saved.")
	return nil
}

// DiscardEdit reverts to the last generated or saved result.
func (t *Task) DiscardEdit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusEditing {
		return fmt.Errorf("not editing: %w", app.ErrValidation)
	}
	t.draft = ""
	t.status = StatusReady
	return nil
}
