package model

import "time"

// JobQuery narrows a job listing read. Zero values mean "no constraint".
type JobQuery struct {
	MinScore *float64 // minimum match score
	Company  string   // exact company name
	Days     int      // only jobs scraped within the last N days
	Limit    int      // cap on returned rows
}

// StoredProfile is a candidate profile plus its storage metadata.
type StoredProfile struct {
	ResumePath string
	UpdatedAt  time.Time
	Profile    Profile
}

// ScanRecord is one entry of scan history.
type ScanRecord struct {
	ScanTime       time.Time
	JobsFound      int
	SourcesScanned int
	Duration       time.Duration
}

// CompanyCount pairs a company with its stored-job count.
type CompanyCount struct {
	Company string
	Count   int
}

// Stats summarizes the stored job corpus for the summary command and the
// dashboard header.
type Stats struct {
	TotalJobs    int
	AvgScore     float64 // 0 when no scored jobs exist
	ByCompany    []CompanyCount
	LastScan     *ScanRecord
	HighMatches  int // jobs scoring >= 80
	FreshGradFit int // jobs with fresh_grad_friendly >= 20
}

// JobStore persists scored jobs, the candidate profile, and scan history.
// SaveJob drops URL duplicates: it returns false and leaves the stored row
// untouched when a job with the same ID already exists.
type JobStore interface {
	SaveJob(job Job) (bool, error)
	Jobs(q JobQuery) ([]Job, error)
	Companies() ([]string, error)
	SaveProfile(resumePath string, p Profile) error
	LoadProfile() (*StoredProfile, error)
	RecordScan(rec ScanRecord) error
	Stats() (Stats, error)
	Clean(olderThan time.Duration) (int, error)
}
