package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/worklinkhq/worklink/internal/app"
	"github.com/worklinkhq/worklink/pkg/models"
)

// PostRepository persists feed posts. It is the "backing service" behind the
// optimistic store: callers apply the mutation locally first, then confirm
// here, and roll back their snapshot if confirmation fails.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) CreatePost(post *models.Post) error {
	query := `INSERT INTO posts (id, author_id, author_name, content, image_url, likes, liked, comments, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, post.ID, post.AuthorID, post.AuthorName, post.Content,
		post.ImageURL, post.Likes, post.Liked, post.Comments, post.CreatedAt)
	return err
}

func (r *PostRepository) UpdatePost(post *models.Post) error {
	query := `UPDATE posts SET content=?, image_url=?, likes=?, liked=?, comments=? WHERE id=?`
	res, err := r.db.Exec(query, post.Content, post.ImageURL, post.Likes, post.Liked, post.Comments, post.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("post %s: %w", post.ID, app.ErrNotFound)
	}
	return nil
}

// DeletePost removes the row if present; deleting an absent id is a no-op.
func (r *PostRepository) DeletePost(id string) error {
	_, err := r.db.Exec(`DELETE FROM posts WHERE id=?`, id)
	return err
}

func (r *PostRepository) GetAllPosts() ([]*models.Post, error) {
	query := `SELECT id, author_id, author_name, content, image_url, likes, liked, comments, created_at
			  FROM posts ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post := &models.Post{}
		err := rows.Scan(&post.ID, &post.AuthorID, &post.AuthorName, &post.Content,
			&post.ImageURL, &post.Likes, &post.Liked, &post.Comments, &post.CreatedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) GetPostsByAuthor(authorID string) ([]*models.Post, error) {
	query := `SELECT id, author_id, author_name, content, image_url, likes, liked, comments, created_at
			  FROM posts WHERE author_id=? ORDER BY created_at DESC`
	rows, err := r.db.Query(query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post := &models.Post{}
		err := rows.Scan(&post.ID, &post.AuthorID, &post.AuthorName, &post.Content,
			&post.ImageURL, &post.Likes, &post.Liked, &post.Comments, &post.CreatedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// JobRepository persists the job catalog.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) CreateJob(job *models.Job) error {
	query := `INSERT INTO jobs (id, title, company, location, job_type, experience, description, tags, apply_url, match_score, applied, applicants, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, job.ID, job.Title, job.Company, job.Location, job.JobType,
		job.Experience, job.Description, joinTags(job.Tags), job.ApplyURL,
		job.MatchScore, job.Applied, job.Applicants, job.CreatedAt)
	return err
}

func (r *JobRepository) UpdateJob(job *models.Job) error {
	query := `UPDATE jobs SET title=?, company=?, location=?, job_type=?, experience=?, description=?, tags=?, apply_url=?, match_score=?, applied=?, applicants=? WHERE id=?`
	res, err := r.db.Exec(query, job.Title, job.Company, job.Location, job.JobType,
		job.Experience, job.Description, joinTags(job.Tags), job.ApplyURL,
		job.MatchScore, job.Applied, job.Applicants, job.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("job %s: %w", job.ID, app.ErrNotFound)
	}
	return nil
}

func (r *JobRepository) DeleteJob(id string) error {
	_, err := r.db.Exec(`DELETE FROM jobs WHERE id=?`, id)
	return err
}

func (r *JobRepository) GetJob(id string) (*models.Job, error) {
	query := `SELECT id, title, company, location, job_type, experience, description, tags, apply_url, match_score, applied, applicants, created_at
			  FROM jobs WHERE id=?`
	job := &models.Job{}
	var tags string
	err := r.db.QueryRow(query, id).Scan(&job.ID, &job.Title, &job.Company, &job.Location,
		&job.JobType, &job.Experience, &job.Description, &tags, &job.ApplyURL,
		&job.MatchScore, &job.Applied, &job.Applicants, &job.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job %s: %w", id, app.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	job.Tags = splitTags(tags)
	return job, nil
}

// GetAllJobs returns the catalog ordered by match score, best match first.
func (r *JobRepository) GetAllJobs() ([]*models.Job, error) {
	query := `SELECT id, title, company, location, job_type, experience, description, tags, apply_url, match_score, applied, applicants, created_at
			  FROM jobs ORDER BY match_score DESC, created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		job := &models.Job{}
		var tags string
		err := rows.Scan(&job.ID, &job.Title, &job.Company, &job.Location,
			&job.JobType, &job.Experience, &job.Description, &tags, &job.ApplyURL,
			&job.MatchScore, &job.Applied, &job.Applicants, &job.CreatedAt)
		if err != nil {
			return nil, err
		}
		job.Tags = splitTags(tags)
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// LetterRepository persists saved cover letters.
type LetterRepository struct {
	db *sql.DB
}

func NewLetterRepository(db *sql.DB) *LetterRepository {
	return &LetterRepository{db: db}
}

func (r *LetterRepository) SaveCoverLetter(cl *models.CoverLetter) error {
	query := `INSERT OR REPLACE INTO cover_letters (id, job_title, company_name, resume_ref, content, generated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, cl.ID, cl.JobTitle, cl.CompanyName, cl.ResumeRef, cl.Content, cl.GeneratedAt)
	return err
}

func (r *LetterRepository) GetCoverLetter(id string) (*models.CoverLetter, error) {
	query := `SELECT id, job_title, company_name, resume_ref, content, generated_at
			  FROM cover_letters WHERE id=?`
	cl := &models.CoverLetter{}
	err := r.db.QueryRow(query, id).Scan(&cl.ID, &cl.JobTitle, &cl.CompanyName, &cl.ResumeRef, &cl.Content, &cl.GeneratedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("cover letter %s: %w", id, app.ErrNotFound)
	}
	return cl, err
}

func (r *LetterRepository) GetAllCoverLetters() ([]*models.CoverLetter, error) {
	query := `SELECT id, job_title, company_name, resume_ref, content, generated_at
			  FROM cover_letters ORDER BY generated_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	letters := []*models.CoverLetter{}
	for rows.Next() {
		cl := &models.CoverLetter{}
		err := rows.Scan(&cl.ID, &cl.JobTitle, &cl.CompanyName, &cl.ResumeRef, &cl.Content, &cl.GeneratedAt)
		if err != nil {
			return nil, err
		}
		letters = append(letters, cl)
	}
	return letters, rows.Err()
}

// ProfileRepository persists the single local profile.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) CreateProfile(p *models.Profile) error {
	query := `INSERT INTO profile (name, headline, bio, email, location) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, p.Name, p.Headline, p.Bio, p.Email, p.Location)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	p.ID = int(id)
	return nil
}

// GetProfile returns the profile, or nil when none has been created yet.
func (r *ProfileRepository) GetProfile() (*models.Profile, error) {
	query := `SELECT id, name, headline, bio, email, location, created_at, updated_at FROM profile LIMIT 1`
	p := &models.Profile{}
	err := r.db.QueryRow(query).Scan(&p.ID, &p.Name, &p.Headline, &p.Bio, &p.Email,
		&p.Location, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *ProfileRepository) UpdateProfile(p *models.Profile) error {
	query := `UPDATE profile SET name=?, headline=?, bio=?, email=?, location=?, updated_at=? WHERE id=?`
	_, err := r.db.Exec(query, p.Name, p.Headline, p.Bio, p.Email, p.Location, time.Now(), p.ID)
	return err
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
