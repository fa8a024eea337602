// Package catalog loads the job catalog the matching engine scores against.
// A loaded catalog is immutable and may be shared between goroutines.
package catalog

import (
	"errors"
	"fmt"

	"github.com/spigell/career-fit/internal/profile"
)

// DefaultJobZone is used when a record does not state its job zone.
const DefaultJobZone = 3

var (
	ErrEmptyCatalog      = errors.New("job catalog is empty")
	ErrInvalidCatalog    = errors.New("job catalog is invalid")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// Job is a single read-only catalog entry.
type Job struct {
	ID          string             `json:"job_id"`
	Title       string             `json:"title"`
	Family      string             `json:"job_family"`
	Zone        int                `json:"job_zone"`
	Personality profile.Vector     `json:"P_job"`
	Aspirations profile.Vector     `json:"A_job"`
	Capability  profile.Vector     `json:"C_job"`
	Exclusions  profile.Exclusions `json:"X_job"`
}

// Catalog is an ordered, immutable list of jobs.
type Catalog struct {
	jobs []Job
}

// New validates jobs and wraps them into a catalog. Order is preserved.
func New(jobs []Job) (*Catalog, error) {
	if len(jobs) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]int, len(jobs))
	var errs []error
	for idx, job := range jobs {
		if job.ID == "" {
			errs = append(errs, fmt.Errorf("job #%d: empty job_id", idx))
			continue
		}
		if prev, ok := seen[job.ID]; ok {
			errs = append(errs, fmt.Errorf("job #%d: duplicate job_id %q (first seen at #%d)", idx, job.ID, prev))
			continue
		}
		seen[job.ID] = idx
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}

	return &Catalog{jobs: append([]Job(nil), jobs...)}, nil
}

// Len returns the number of jobs.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.jobs)
}

// Jobs returns the jobs in catalog order. The vectors are shared and must
// not be modified.
func (c *Catalog) Jobs() []Job {
	if c == nil {
		return nil
	}
	return append([]Job(nil), c.jobs...)
}

// FindByID returns the job with the given id.
func (c *Catalog) FindByID(id string) (Job, bool) {
	for _, job := range c.jobs {
		if job.ID == id {
			return job, true
		}
	}
	return Job{}, false
}

// record is the wire shape shared by file and database sources.
type record struct {
	JobID     string             `json:"job_id" yaml:"job_id"`
	Title     string             `json:"title" yaml:"title"`
	JobFamily string             `json:"job_family" yaml:"job_family"`
	JobZone   *float64           `json:"job_zone" yaml:"job_zone"`
	PJob      map[string]float64 `json:"P_job" yaml:"P_job"`
	AJob      map[string]float64 `json:"A_job" yaml:"A_job"`
	CJob      map[string]float64 `json:"C_job" yaml:"C_job"`
	XJob      map[string]bool    `json:"X_job" yaml:"X_job"`
}

func (r record) job() Job {
	zone := DefaultJobZone
	if r.JobZone != nil {
		zone = int(*r.JobZone)
	}

	return Job{
		ID:          r.JobID,
		Title:       r.Title,
		Family:      r.JobFamily,
		Zone:        zone,
		Personality: profile.KnownVector(profile.PersonalityKind, r.PJob),
		Aspirations: profile.KnownVector(profile.AspirationsKind, r.AJob),
		Capability:  profile.KnownVector(profile.CapabilityKind, r.CJob),
		Exclusions:  profile.KnownExclusionsOf(r.XJob),
	}
}
