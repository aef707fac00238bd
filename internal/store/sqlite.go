// Package store persists scored jobs, the candidate profile, and scan
// history in a single SQLite database file.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/neilv/neilsearch/internal/model"
)

const timeLayout = time.RFC3339

// SQLiteStore implements model.JobStore over a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ model.JobStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id                TEXT PRIMARY KEY,
			source            TEXT NOT NULL,
			company           TEXT NOT NULL,
			title             TEXT NOT NULL,
			location          TEXT,
			description       TEXT,
			url               TEXT UNIQUE NOT NULL,
			posted_at         TEXT,
			scraped_at        TEXT NOT NULL,
			match_score       REAL,
			match_breakdown   TEXT,
			skills_matched    TEXT,
			skills_missing    TEXT,
			match_explanation TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS profile (
			id           INTEGER PRIMARY KEY CHECK (id = 1),
			resume_path  TEXT,
			updated_at   TEXT NOT NULL,
			profile_data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scans (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_time        TEXT NOT NULL,
			jobs_found       INTEGER NOT NULL,
			sources_scanned  INTEGER NOT NULL,
			duration_seconds REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_match_score ON jobs(match_score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_scraped_at ON jobs(scraped_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// SaveJob inserts a job. It returns false and leaves the stored row
// untouched when a job with the same ID or URL already exists.
func (s *SQLiteStore) SaveJob(job model.Job) (bool, error) {
	var (
		score       sql.NullFloat64
		breakdown   sql.NullString
		matched     sql.NullString
		missing     sql.NullString
		explanation sql.NullString
	)
	if job.Match != nil {
		score = sql.NullFloat64{Float64: job.Match.Score, Valid: true}
		explanation = sql.NullString{String: job.Match.Explanation, Valid: true}

		b, err := json.Marshal(job.Match.Breakdown)
		if err != nil {
			return false, fmt.Errorf("saving job %s: %w", job.ID, err)
		}
		breakdown = sql.NullString{String: string(b), Valid: true}

		m, err := json.Marshal(stringsOrEmpty(job.Match.SkillsMatched))
		if err != nil {
			return false, fmt.Errorf("saving job %s: %w", job.ID, err)
		}
		matched = sql.NullString{String: string(m), Valid: true}

		mi, err := json.Marshal(stringsOrEmpty(job.Match.SkillsMissing))
		if err != nil {
			return false, fmt.Errorf("saving job %s: %w", job.ID, err)
		}
		missing = sql.NullString{String: string(mi), Valid: true}
	}

	var postedAt sql.NullString
	if job.PostedAt != nil {
		postedAt = sql.NullString{String: job.PostedAt.UTC().Format(timeLayout), Valid: true}
	}

	res, err := s.db.Exec(`INSERT OR IGNORE INTO jobs (
			id, source, company, title, location, description, url,
			posted_at, scraped_at, match_score, match_breakdown,
			skills_matched, skills_missing, match_explanation
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Source, job.Company, job.Title, job.Location,
		job.Description, job.URL, postedAt,
		job.ScrapedAt.UTC().Format(timeLayout),
		score, breakdown, matched, missing, explanation,
	)
	if err != nil {
		return false, fmt.Errorf("saving job %s: %w", job.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("saving job %s: %w", job.ID, err)
	}
	return n > 0, nil
}

// Jobs returns stored jobs matching the query, best score first, newest
// first within equal scores.
func (s *SQLiteStore) Jobs(q model.JobQuery) ([]model.Job, error) {
	query := `SELECT id, source, company, title, location, description, url,
		posted_at, scraped_at, match_score, match_breakdown,
		skills_matched, skills_missing, match_explanation
		FROM jobs WHERE 1=1`
	var args []any

	if q.MinScore != nil {
		query += " AND match_score >= ?"
		args = append(args, *q.MinScore)
	}
	if q.Company != "" {
		query += " AND company = ?"
		args = append(args, q.Company)
	}
	if q.Days > 0 {
		cutoff := time.Now().AddDate(0, 0, -q.Days).UTC().Format(timeLayout)
		query += " AND scraped_at >= ?"
		args = append(args, cutoff)
	}

	query += " ORDER BY match_score DESC, scraped_at DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("listing jobs: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, nil
}

// Companies returns the distinct company names with stored jobs, sorted.
func (s *SQLiteStore) Companies() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT company FROM jobs ORDER BY company")
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var companies []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("listing companies: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// SaveProfile stores the candidate profile, replacing any previous one.
func (s *SQLiteStore) SaveProfile(resumePath string, p model.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO profile (id, resume_path, updated_at, profile_data)
		VALUES (1, ?, ?, ?)`,
		resumePath, time.Now().UTC().Format(timeLayout), string(data))
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// LoadProfile returns the stored profile, or nil when none is saved yet.
func (s *SQLiteStore) LoadProfile() (*model.StoredProfile, error) {
	var (
		resumePath sql.NullString
		updatedAt  string
		data       string
	)
	err := s.db.QueryRow("SELECT resume_path, updated_at, profile_data FROM profile WHERE id = 1").
		Scan(&resumePath, &updatedAt, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	sp := &model.StoredProfile{ResumePath: resumePath.String}
	if t, err := time.Parse(timeLayout, updatedAt); err == nil {
		sp.UpdatedAt = t
	}
	if err := json.Unmarshal([]byte(data), &sp.Profile); err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return sp, nil
}

// RecordScan appends one scan history entry.
func (s *SQLiteStore) RecordScan(rec model.ScanRecord) error {
	_, err := s.db.Exec(`INSERT INTO scans (scan_time, jobs_found, sources_scanned, duration_seconds)
		VALUES (?, ?, ?, ?)`,
		rec.ScanTime.UTC().Format(timeLayout), rec.JobsFound, rec.SourcesScanned,
		rec.Duration.Seconds())
	if err != nil {
		return fmt.Errorf("recording scan: %w", err)
	}
	return nil
}

// Stats summarizes the stored corpus.
func (s *SQLiteStore) Stats() (model.Stats, error) {
	var stats model.Stats

	if err := s.db.QueryRow("SELECT COUNT(*) FROM jobs").Scan(&stats.TotalJobs); err != nil {
		return stats, fmt.Errorf("stats: %w", err)
	}

	var avg sql.NullFloat64
	if err := s.db.QueryRow("SELECT AVG(match_score) FROM jobs WHERE match_score IS NOT NULL").Scan(&avg); err != nil {
		return stats, fmt.Errorf("stats: %w", err)
	}
	if avg.Valid {
		stats.AvgScore = avg.Float64
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM jobs WHERE match_score >= 80").Scan(&stats.HighMatches); err != nil {
		return stats, fmt.Errorf("stats: %w", err)
	}

	err := s.db.QueryRow(`SELECT COUNT(*) FROM jobs
		WHERE json_extract(match_breakdown, '$.fresh_grad_friendly') >= 20`).
		Scan(&stats.FreshGradFit)
	if err != nil {
		return stats, fmt.Errorf("stats: %w", err)
	}

	rows, err := s.db.Query(`SELECT company, COUNT(*) AS count FROM jobs
		GROUP BY company ORDER BY count DESC, company LIMIT 10`)
	if err != nil {
		return stats, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cc model.CompanyCount
		if err := rows.Scan(&cc.Company, &cc.Count); err != nil {
			return stats, fmt.Errorf("stats: %w", err)
		}
		stats.ByCompany = append(stats.ByCompany, cc)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("stats: %w", err)
	}

	var (
		scanTime string
		found    int
		sources  int
		seconds  float64
	)
	err = s.db.QueryRow(`SELECT scan_time, jobs_found, sources_scanned, duration_seconds
		FROM scans ORDER BY scan_time DESC LIMIT 1`).
		Scan(&scanTime, &found, &sources, &seconds)
	if err != nil && err != sql.ErrNoRows {
		return stats, fmt.Errorf("stats: %w", err)
	}
	if err == nil {
		rec := model.ScanRecord{
			JobsFound:      found,
			SourcesScanned: sources,
			Duration:       time.Duration(seconds * float64(time.Second)),
		}
		if t, perr := time.Parse(timeLayout, scanTime); perr == nil {
			rec.ScanTime = t
		}
		stats.LastScan = &rec
	}

	return stats, nil
}

// Clean deletes jobs scraped longer ago than olderThan and returns how many
// rows were removed.
func (s *SQLiteStore) Clean(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan).UTC().Format(timeLayout)
	res, err := s.db.Exec("DELETE FROM jobs WHERE scraped_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning old jobs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleaning old jobs: %w", err)
	}
	return int(n), nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanJob(rows *sql.Rows) (model.Job, error) {
	var (
		job         model.Job
		location    sql.NullString
		description sql.NullString
		postedAt    sql.NullString
		scrapedAt   string
		score       sql.NullFloat64
		breakdown   sql.NullString
		matched     sql.NullString
		missing     sql.NullString
		explanation sql.NullString
	)
	err := rows.Scan(&job.ID, &job.Source, &job.Company, &job.Title, &location,
		&description, &job.URL, &postedAt, &scrapedAt,
		&score, &breakdown, &matched, &missing, &explanation)
	if err != nil {
		return model.Job{}, err
	}

	job.Location = location.String
	job.Description = description.String
	if postedAt.Valid {
		if t, err := time.Parse(timeLayout, postedAt.String); err == nil {
			job.PostedAt = &t
		}
	}
	if t, err := time.Parse(timeLayout, scrapedAt); err == nil {
		job.ScrapedAt = t
	}

	if score.Valid {
		m := &model.MatchResult{
			Score:       score.Float64,
			Explanation: explanation.String,
		}
		if breakdown.Valid {
			if err := json.Unmarshal([]byte(breakdown.String), &m.Breakdown); err != nil {
				return model.Job{}, err
			}
		}
		if matched.Valid {
			if err := json.Unmarshal([]byte(matched.String), &m.SkillsMatched); err != nil {
				return model.Job{}, err
			}
		}
		if missing.Valid {
			if err := json.Unmarshal([]byte(missing.String), &m.SkillsMissing); err != nil {
				return model.Job{}, err
			}
		}
		job.Match = m
	}

	return job, nil
}

// stringsOrEmpty keeps nil slices serializing as [] rather than null.
func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
