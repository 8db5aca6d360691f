package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/worklinkhq/worklink/internal/app"
)

// Session identifies the acting user. It is passed explicitly to every
// operation that needs an ownership check; there is no global "logged in"
// state anywhere in the codebase.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// Post is a feed entry. Likes and Liked move together: the counter is only
// ever touched through Toggle so it cannot drift from the flag.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url,omitempty"`
	Likes      int       `json:"likes"`
	Liked      bool      `json:"liked"`
	Comments   int       `json:"comments"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p *Post) EntityID() string      { return p.ID }
func (p *Post) SetEntityID(id string) { p.ID = id }
func (p *Post) OwnerID() string       { return p.AuthorID }

func (p *Post) Validate() error {
	if strings.TrimSpace(p.Content) == "" {
		return fmt.Errorf("post content is empty: %w", app.ErrValidation)
	}
	return nil
}

// Toggle flips the named flag and moves its paired counter by exactly one.
func (p *Post) Toggle(field string) error {
	switch field {
	case "like":
		if p.Liked {
			p.Liked = false
			p.Likes--
		} else {
			p.Liked = true
			p.Likes++
		}
		return nil
	}
	return fmt.Errorf("post has no toggleable field %q: %w", field, app.ErrValidation)
}

func (p *Post) Clone() *Post {
	clone := *p
	return &clone
}

// Job is a job listing. MatchScore (0-100) is supplied by the data source;
// nothing client-side recomputes it.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	JobType     string    `json:"job_type"`
	Experience  string    `json:"experience"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags,omitempty"`
	ApplyURL    string    `json:"apply_url,omitempty"`
	MatchScore  int       `json:"match_score"`
	Applied     bool      `json:"applied"`
	Applicants  int       `json:"applicants"`
	CreatedAt   time.Time `json:"created_at"`
}

func (j *Job) EntityID() string      { return j.ID }
func (j *Job) SetEntityID(id string) { j.ID = id }

// OwnerID is empty: listings belong to the catalog, not to a user.
func (j *Job) OwnerID() string { return "" }

func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" || strings.TrimSpace(j.Company) == "" {
		return fmt.Errorf("job title and company are required: %w", app.ErrValidation)
	}
	return nil
}

func (j *Job) Toggle(field string) error {
	switch field {
	case "applied":
		if j.Applied {
			j.Applied = false
			j.Applicants--
		} else {
			j.Applied = true
			j.Applicants++
		}
		return nil
	}
	return fmt.Errorf("job has no toggleable field %q: %w", field, app.ErrValidation)
}

func (j *Job) Clone() *Job {
	clone := *j
	clone.Tags = append([]string(nil), j.Tags...)
	return &clone
}

// CoverLetter is a saved generation result.
type CoverLetter struct {
	ID          string    `json:"id"`
	JobTitle    string    `json:"job_title"`
	CompanyName string    `json:"company_name"`
	ResumeRef   string    `json:"resume_ref"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Profile holds the user's local profile information.
type Profile struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Headline  string    `json:"headline"`
	Bio       string    `json:"bio"`
	Email     string    `json:"email"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session returns the identity carried by this profile.
func (p *Profile) Session() Session {
	return Session{UserID: fmt.Sprintf("user-%d", p.ID), Name: p.Name}
}
