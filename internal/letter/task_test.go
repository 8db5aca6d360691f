package letter_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/internal/letter"
	"github.com/worklinkhq/worklink/internal/notify"
)

var validReq = letter.Request{
	JobTitle:    "Software Engineer",
	CompanyName: "TechCorp",
	ResumeRef:   "Software_Developer_Resume.pdf",
}

func newTask(gen letter.Generator) (*letter.Task, *notify.Recorder) {
	rec := &notify.Recorder{}
	return letter.NewTask(gen, rec, zerolog.Nop()), rec
}

func TestSubmitMissingFieldsNeverCallsGenerator(t *testing.T) {
	var called atomic.Bool
	task, rec := newTask(letter.GeneratorFunc(func(context.Context, letter.Request) (string, error) {
		called.Store(true)
		return "", nil
	}))

	for _, req := range []letter.Request{
		{JobTitle: "", CompanyName: "TechCorp", ResumeRef: "resume.pdf"},
		{JobTitle: "Engineer", CompanyName: "", ResumeRef: "resume.pdf"},
		{JobTitle: "Engineer", CompanyName: "TechCorp", ResumeRef: ""},
	} {
		err := task.Submit(context.Background(), req)
		if !errors.Is(err, app.ErrValidation) {
			t.Fatalf("Submit(%+v): expected ErrValidation, got %v", req, err)
		}
		if got := task.Status(); got != letter.StatusIdle {
			t.Errorf("status after invalid submit = %s, want idle", got)
		}
	}

	if called.Load() {
		t.Error("generator must not be called for invalid input")
	}
	if len(rec.Events) != 3 || rec.Events[0].Kind != notify.KindError {
		t.Errorf("expected 3 error notifications, got %+v", rec.Events)
	}
}

func TestSubmitGeneratesResult(t *testing.T) {
	release := make(chan struct{})
	task, rec := newTask(letter.GeneratorFunc(func(ctx context.Context, req letter.Request) (string, error) {
		<-release
		return "Dear Hiring Manager at " + req.CompanyName + ",", nil
	}))

	if err := task.Submit(context.Background(), validReq); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := task.Status(); got != letter.StatusPending {
		t.Fatalf("status while in flight = %s, want pending", got)
	}

	close(release)
	if err := task.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if got := task.Status(); got != letter.StatusReady {
		t.Fatalf("status after resolve = %s, want ready", got)
	}
	if want := "Dear Hiring Manager at TechCorp,"; task.Result() != want {
		t.Errorf("Result = %q, want %q", task.Result(), want)
	}
	if len(rec.Events) != 1 || rec.Events[0].Kind != notify.KindInfo {
		t.Errorf("expected one success notification, got %+v", rec.Events)
	}
}

func TestSecondSubmitWhilePendingIsBusy(t *testing.T) {
	release := make(chan struct{})
	task, _ := newTask(letter.GeneratorFunc(func(context.Context, letter.Request) (string, error) {
		<-release
		return "first run result", nil
	}))

	if err := task.Submit(context.Background(), validReq); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	err := task.Submit(context.Background(), validReq)
	if !errors.Is(err, app.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(release)
	if err := task.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if task.Result() != "first run result" {
		t.Errorf("rejected submit altered the result: %q", task.Result())
	}
}

func TestStaleResultNeverOverwritesNewerRun(t *testing.T) {
	releaseFirst := make(chan struct{})
	releaseSecond := make(chan struct{})
	var calls atomic.Int32
	task, rec := newTask(letter.GeneratorFunc(func(ctx context.Context, req letter.Request) (string, error) {
		if calls.Add(1) == 1 {
			<-releaseFirst
			return "stale result", nil
		}
		<-releaseSecond
		return "fresh result", nil
	}))

	if err := task.Submit(context.Background(), validReq); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	task.Cancel()
	if got := task.Status(); got != letter.StatusIdle {
		t.Fatalf("status after cancel = %s, want idle", got)
	}

	if err := task.Submit(context.Background(), validReq); err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	close(releaseSecond)
	if err := task.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if task.Result() != "fresh result" {
		t.Fatalf("Result = %q, want fresh result", task.Result())
	}

	// Let the abandoned first run resolve; its result must be dropped.
	close(releaseFirst)
	time.Sleep(50 * time.Millisecond)

	if task.Result() != "fresh result" {
		t.Errorf("stale result overwrote newer run: %q", task.Result())
	}
	if got := task.Status(); got != letter.StatusReady {
		t.Errorf("status = %s, want ready", got)
	}
	success := 0
	for _, ev := range rec.Events {
		if ev.Kind == notify.KindInfo {
			success++
		}
	}
	if success != 1 {
		t.Errorf("expected exactly one success notification, got %d", success)
	}
}

func TestFailureRetainsInputForRetry(t *testing.T) {
	var calls atomic.Int32
	task, rec := newTask(letter.GeneratorFunc(func(context.Context, letter.Request) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.New("provider unavailable")
		}
		return "second attempt", nil
	}))

	if err := task.Submit(context.Background(), validReq); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := task.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := task.Status(); got != letter.StatusFailed {
		t.Fatalf("status = %s, want failed", got)
	}
	if task.Input() != validReq {
		t.Errorf("input not retained after failure: %+v", task.Input())
	}
	if len(rec.Events) != 1 || rec.Events[0].Kind != notify.KindError {
		t.Errorf("expected one failure notification, got %+v", rec.Events)
	}

	// Retry re-enters the normal flow.
	if err := task.Submit(context.Background(), task.Input()); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if err := task.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if task.Status() != letter.StatusReady || task.Result() != "second attempt" {
		t.Errorf("retry did not recover: status=%s result=%q", task.Status(), task.Result())
	}
}

func generateReady(t *testing.T, text string) *letter.Task {
	t.Helper()
	task, _ := newTask(letter.GeneratorFunc(func(context.Context, letter.Request) (string, error) {
		return text, nil
	}))
	if err := task.Submit(context.Background(), validReq); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := task.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if task.Status() != letter.StatusReady {
		t.Fatalf("setup: status = %s, want ready", task.Status())
	}
	return task
}

func TestEditSaveRoundTrip(t *testing.T) {
	task := generateReady(t, "generated text")

	if err := task.StartEdit(); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	if task.Draft() != "generated text" {
		t.Errorf("draft should start from the result, got %q", task.Draft())
	}
	if err := task.SetDraft("hand-polished text"); err != nil {
		t.Fatalf("SetDraft: %v", err)
	}
	if err := task.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if task.Status() != letter.StatusSaved {
		t.Errorf("status = %s, want saved", task.Status())
	}
	if task.Result() != "hand-polished text" {
		t.Errorf("Result = %q, want the edited text", task.Result())
	}
}

func TestEditDiscardRevertsToGenerated(t *testing.T) {
	task := generateReady(t, "generated text")

	if err := task.StartEdit(); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	if err := task.SetDraft("abandoned changes"); err != nil {
		t.Fatalf("SetDraft: %v", err)
	}
	if err := task.DiscardEdit(); err != nil {
		t.Fatalf("DiscardEdit: %v", err)
	}

	if task.Status() != letter.StatusReady {
		t.Errorf("status = %s, want ready", task.Status())
	}
	if task.Result() != "generated text" {
		t.Errorf("Result = %q, want the original generated text", task.Result())
	}
}

func TestEditRequiresReadyState(t *testing.T) {
	task, _ := newTask(letter.GeneratorFunc(func(context.Context, letter.Request) (string, error) {
		return "", nil
	}))
	if err := task.StartEdit(); !errors.Is(err, app.ErrValidation) {
		t.Errorf("StartEdit from idle: expected ErrValidation, got %v", err)
	}
	if err := task.SetDraft("x"); !errors.Is(err, app.ErrValidation) {
		t.Errorf("SetDraft outside editing: expected ErrValidation, got %v", err)
	}
	if err := task.Save(); !errors.Is(err, app.ErrValidation) {
		t.Errorf("Save outside editing: expected ErrValidation, got %v", err)
	}
}

func TestResubmitDiscardsPreviousResult(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	task, _ := newTask(letter.GeneratorFunc(func(context.Context, letter.Request) (string, error) {
		if calls.Add(1) == 1 {
			return "first letter", nil
		}
		<-release
		return "second letter", nil
	}))

	if err := task.Submit(context.Background(), validReq); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	task.Wait(context.Background())

	next := validReq
	next.CompanyName = "DesignHub"
	if err := task.Submit(context.Background(), next); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if task.Status() != letter.StatusPending {
		t.Fatalf("status = %s, want pending", task.Status())
	}
	if task.Result() != "" {
		t.Errorf("previous result must be discarded on resubmit, got %q", task.Result())
	}

	close(release)
	task.Wait(context.Background())
	if task.Result() != "second letter" {
		t.Errorf("Result = %q, want second letter", task.Result())
	}
}

func TestCancelOutsidePendingIsNoOp(t *testing.T) {
	task := generateReady(t, "kept")
	task.Cancel()
	if task.Status() != letter.StatusReady || task.Result() != "kept" {
		t.Errorf("cancel outside pending changed state: %s %q", task.Status(), task.Result())
	}
}
