package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Initialize creates and opens the SQLite database with proper settings
func Initialize() (*sql.DB, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	worklinkDir := filepath.Join(homeDir, ".worklink")
	if err := os.MkdirAll(worklinkDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create worklink directory: %w", err)
	}

	dbPath := filepath.Join(worklinkDir, "worklink.db")

	// Open with DSN options for SQLite pragmas
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := SeedJobs(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed jobs: %w", err)
	}

	return db, nil
}

// RunMigrations creates all necessary tables
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		headline TEXT,
		bio TEXT,
		email TEXT,
		location TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		author_id TEXT NOT NULL,
		author_name TEXT NOT NULL,
		content TEXT NOT NULL,
		image_url TEXT DEFAULT '',
		likes INTEGER DEFAULT 0,
		liked BOOLEAN DEFAULT 0,
		comments INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT DEFAULT '',
		job_type TEXT DEFAULT '',
		experience TEXT DEFAULT '',
		description TEXT DEFAULT '',
		tags TEXT DEFAULT '',
		apply_url TEXT DEFAULT '',
		match_score INTEGER DEFAULT 0,
		applied BOOLEAN DEFAULT 0,
		applicants INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS cover_letters (
		id TEXT PRIMARY KEY,
		job_title TEXT NOT NULL,
		company_name TEXT NOT NULL,
		resume_ref TEXT DEFAULT '',
		content TEXT NOT NULL,
		generated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id);
	CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at);
	CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company);
	`

	_, err := db.Exec(schema)
	return err
}

// SeedJobs inserts the starter job catalog so list/search work on a fresh
// install. Re-running is a no-op thanks to INSERT OR IGNORE on fixed ids.
func SeedJobs(db *sql.DB) error {
	seed := `
	INSERT OR IGNORE INTO jobs (id, title, company, location, job_type, experience, description, tags, match_score, applicants) VALUES
	('seed-1', 'Senior React Developer', 'TechCorp', 'San Francisco, CA (Remote)', 'remote', 'senior',
	 'We are seeking an experienced React developer to join our frontend team. You will be responsible for building responsive user interfaces and implementing complex features.',
	 'React,TypeScript,Redux,Senior', 92, 12),
	('seed-2', 'UX/UI Designer', 'DesignHub', 'New York, NY', 'on-site', 'mid',
	 'Join our creative team to design intuitive and beautiful user experiences for web and mobile applications. Must have a strong portfolio and experience with Figma.',
	 'UI Design,Figma,User Research,Prototyping', 85, 8),
	('seed-3', 'Full Stack Engineer', 'StartupInc', 'Austin, TX (Hybrid)', 'hybrid', 'mid',
	 'Looking for a versatile developer comfortable with both frontend and backend technologies. Stack includes React, Node.js, and MongoDB.',
	 'Full Stack,JavaScript,Node.js,MongoDB', 78, 21),
	('seed-4', 'Product Manager', 'ProductPro', 'Seattle, WA', 'on-site', 'senior',
	 'Lead the development of new product features from conception to launch. Work closely with design, engineering, and marketing teams.',
	 'Product Management,Agile,Roadmapping', 73, 5);
	`
	_, err := db.Exec(seed)
	return err
}
