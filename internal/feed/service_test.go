package feed_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/internal/feed"
	"github.com/worklinkhq/worklink/internal/notify"
	"github.com/worklinkhq/worklink/pkg/models"
)

var session = models.Session{UserID: "user-1", Name: "Alex Johnson"}

// fakeRepo keeps posts in a map and can be told to fail.
type fakeRepo struct {
	posts   map[string]*models.Post
	failAll bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{posts: map[string]*models.Post{}}
}

func (r *fakeRepo) CreatePost(p *models.Post) error {
	if r.failAll {
		return errors.New("disk full")
	}
	r.posts[p.ID] = p
	return nil
}

func (r *fakeRepo) UpdatePost(p *models.Post) error {
	if r.failAll {
		return errors.New("disk full")
	}
	r.posts[p.ID] = p
	return nil
}

func (r *fakeRepo) DeletePost(id string) error {
	if r.failAll {
		return errors.New("disk full")
	}
	delete(r.posts, id)
	return nil
}

func (r *fakeRepo) GetAllPosts() ([]*models.Post, error) {
	out := []*models.Post{}
	for _, p := range r.posts {
		out = append(out, p)
	}
	return out, nil
}

func newService(repo feed.Repository) (*feed.Service, *notify.Recorder) {
	rec := &notify.Recorder{}
	return feed.NewService(repo, session, rec, zerolog.Nop()), rec
}

func TestCreatePostAppearsAtHead(t *testing.T) {
	repo := newFakeRepo()
	svc, rec := newService(repo)

	first, err := svc.CreatePost("first post", "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	second, err := svc.CreatePost("second post", "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	posts := svc.Posts()
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != second || posts[1].ID != first {
		t.Errorf("posts not most-recent-first: %s, %s", posts[0].ID, posts[1].ID)
	}
	if posts[0].AuthorID != session.UserID || posts[0].AuthorName != session.Name {
		t.Errorf("post not stamped with session identity: %+v", posts[0])
	}
	if len(repo.posts) != 2 {
		t.Errorf("expected 2 persisted posts, got %d", len(repo.posts))
	}
	if len(rec.Events) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(rec.Events))
	}
}

func TestCreatePostRollsBackOnRepoFailure(t *testing.T) {
	repo := newFakeRepo()
	svc, rec := newService(repo)

	repo.failAll = true
	if _, err := svc.CreatePost("doomed post", ""); err == nil {
		t.Fatal("expected error when repository fails")
	}

	if got := len(svc.Posts()); got != 0 {
		t.Errorf("feed not rolled back, has %d posts", got)
	}
	last := rec.Events[len(rec.Events)-1]
	if last.Kind != notify.KindError {
		t.Errorf("expected a rollback error notification, got %+v", last)
	}
}

func TestUpdatePostRollsBackOnRepoFailure(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo)

	id, err := svc.CreatePost("original content", "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	repo.failAll = true
	if err := svc.UpdatePost(id, "edited content"); err == nil {
		t.Fatal("expected error when repository fails")
	}

	posts := svc.Posts()
	if posts[0].Content != "original content" {
		t.Errorf("feed not rolled back, content = %q", posts[0].Content)
	}
	if repo.posts[id].Content != "original content" {
		t.Errorf("repository content changed despite failure: %q", repo.posts[id].Content)
	}
}

func TestUpdateOtherUsersPostRejected(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo)

	theirs := &models.Post{
		ID:         "their-post",
		AuthorID:   "user-2",
		AuthorName: "Sam Lee",
		Content:    "not yours to edit",
	}
	repo.posts[theirs.ID] = theirs
	if err := svc.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	err := svc.UpdatePost("their-post", "vandalized")
	if !errors.Is(err, app.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if svc.Posts()[0].Content != "not yours to edit" {
		t.Error("rejected update still changed the feed")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo)

	id, err := svc.CreatePost("short-lived", "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if err := svc.DeletePost(id); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if err := svc.DeletePost(id); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
	if got := len(svc.Posts()); got != 0 {
		t.Errorf("expected empty feed, got %d posts", got)
	}
}

func TestToggleLikeRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo)

	theirs := &models.Post{
		ID:         "their-post",
		AuthorID:   "user-2",
		AuthorName: "Sam Lee",
		Content:    "like me",
		Likes:      5,
	}
	repo.posts[theirs.ID] = theirs
	if err := svc.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := svc.ToggleLike("their-post"); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	post := svc.Posts()[0]
	if !post.Liked || post.Likes != 6 {
		t.Errorf("after like: liked=%v likes=%d", post.Liked, post.Likes)
	}
	if repo.posts["their-post"].Likes != 6 {
		t.Errorf("like not persisted: %d", repo.posts["their-post"].Likes)
	}

	if err := svc.ToggleLike("their-post"); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	post = svc.Posts()[0]
	if post.Liked || post.Likes != 5 {
		t.Errorf("double toggle should restore state: liked=%v likes=%d", post.Liked, post.Likes)
	}
}

func TestMyPostsFiltersByOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo)

	theirs := &models.Post{
		ID:         "their-post",
		AuthorID:   "user-2",
		AuthorName: "Sam Lee",
		Content:    "not mine",
	}
	repo.posts[theirs.ID] = theirs
	if err := svc.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	first, err := svc.CreatePost("my first post", "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	second, err := svc.CreatePost("my second post", "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	mine := svc.MyPosts()
	if len(mine) != 2 {
		t.Fatalf("expected 2 own posts, got %d", len(mine))
	}
	if mine[0].ID != second || mine[1].ID != first {
		t.Errorf("own posts not in feed order: %s, %s", mine[0].ID, mine[1].ID)
	}
	for _, p := range mine {
		if p.AuthorID != session.UserID {
			t.Errorf("foreign post leaked into MyPosts: %+v", p)
		}
	}
	if len(svc.Posts()) != 3 {
		t.Errorf("full feed should still hold all posts, got %d", len(svc.Posts()))
	}
}

func TestToggleLikeRollsBackOnRepoFailure(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo)

	id, err := svc.CreatePost("my post", "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	repo.failAll = true
	if err := svc.ToggleLike(id); err == nil {
		t.Fatal("expected error when repository fails")
	}
	post := svc.Posts()[0]
	if post.Liked || post.Likes != 0 {
		t.Errorf("like not rolled back: liked=%v likes=%d", post.Liked, post.Likes)
	}
}
