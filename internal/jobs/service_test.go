package jobs_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/internal/jobs"
	"github.com/worklinkhq/worklink/internal/notify"
	"github.com/worklinkhq/worklink/pkg/models"
)

// fakeRepo keeps jobs in a map and can be told to fail.
type fakeRepo struct {
	jobs    map[string]*models.Job
	failAll bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{jobs: map[string]*models.Job{
		"job-1": {ID: "job-1", Title: "Senior React Developer", Company: "TechCorp", Applicants: 12},
	}}
}

func (r *fakeRepo) GetAllJobs() ([]*models.Job, error) {
	out := []*models.Job{}
	for _, j := range r.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (r *fakeRepo) UpdateJob(j *models.Job) error {
	if r.failAll {
		return errors.New("disk full")
	}
	r.jobs[j.ID] = j
	return nil
}

func newService(t *testing.T, repo jobs.Repository) (*jobs.Service, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	svc := jobs.NewService(repo, rec, zerolog.Nop())
	if err := svc.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return svc, rec
}

func TestToggleAppliedMovesFlagAndCounter(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(t, repo)

	job, err := svc.ToggleApplied("job-1")
	if err != nil {
		t.Fatalf("ToggleApplied: %v", err)
	}
	if !job.Applied || job.Applicants != 13 {
		t.Errorf("after apply: applied=%v applicants=%d", job.Applied, job.Applicants)
	}
	if !repo.jobs["job-1"].Applied || repo.jobs["job-1"].Applicants != 13 {
		t.Errorf("apply not persisted: %+v", repo.jobs["job-1"])
	}

	// Second toggle withdraws.
	job, err = svc.ToggleApplied("job-1")
	if err != nil {
		t.Fatalf("ToggleApplied: %v", err)
	}
	if job.Applied || job.Applicants != 12 {
		t.Errorf("double toggle should restore state: applied=%v applicants=%d", job.Applied, job.Applicants)
	}
}

func TestToggleAppliedRollsBackOnRepoFailure(t *testing.T) {
	repo := newFakeRepo()
	svc, rec := newService(t, repo)

	repo.failAll = true
	if _, err := svc.ToggleApplied("job-1"); err == nil {
		t.Fatal("expected error when repository fails")
	}

	job := svc.Jobs()[0]
	if job.Applied || job.Applicants != 12 {
		t.Errorf("catalog not rolled back: applied=%v applicants=%d", job.Applied, job.Applicants)
	}
	if repo.jobs["job-1"].Applied {
		t.Error("repository changed despite failure")
	}
	last := rec.Events[len(rec.Events)-1]
	if last.Kind != notify.KindError {
		t.Errorf("expected a rollback error notification, got %+v", last)
	}
}

func TestToggleAppliedUnknownJob(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(t, repo)

	if _, err := svc.ToggleApplied("nope"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if svc.Jobs()[0].Applied {
		t.Error("failed toggle changed the catalog")
	}
}
