package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

const createJobsTable = `
CREATE TABLE IF NOT EXISTS jobs (
	position   INTEGER NOT NULL,
	job_id     TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	job_family TEXT NOT NULL DEFAULT '',
	job_zone   INTEGER,
	p_job      TEXT NOT NULL DEFAULT '{}',
	a_job      TEXT NOT NULL DEFAULT '{}',
	c_job      TEXT NOT NULL DEFAULT '{}',
	x_job      TEXT NOT NULL DEFAULT '{}'
)`

// SQLiteSource reads jobs from the jobs table of a SQLite database, in
// position order.
type SQLiteSource struct {
	Path string
}

func (s *SQLiteSource) Name() string { return "sqlite:" + s.Path }

func (s *SQLiteSource) Load(ctx context.Context) ([]Job, error) {
	db, err := sql.Open(driverName, s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT job_id, title, job_family, job_zone, p_job, a_job, c_job, x_job
		FROM jobs
		ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var (
			r                      record
			zone                   sql.NullInt64
			pJob, aJob, cJob, xJob string
		)
		if err := rows.Scan(&r.JobID, &r.Title, &r.JobFamily, &zone, &pJob, &aJob, &cJob, &xJob); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		if zone.Valid {
			z := float64(zone.Int64)
			r.JobZone = &z
		}
		if err := decodeColumns(&r, pJob, aJob, cJob, xJob); err != nil {
			return nil, fmt.Errorf("%w: job %q: %w", ErrInvalidCatalog, r.JobID, err)
		}
		jobs = append(jobs, r.job())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}

	return jobs, nil
}

// WriteSQLite replaces the jobs table of the database at path with jobs.
func WriteSQLite(ctx context.Context, path string, jobs []Job) error {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return fmt.Errorf("open catalog database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, createJobsTable); err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("clear jobs table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO jobs (position, job_id, title, job_family, job_zone, p_job, a_job, c_job, x_job)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for idx, job := range jobs {
		columns, err := encodeColumns(job)
		if err != nil {
			return fmt.Errorf("encode job %q: %w", job.ID, err)
		}
		args := append([]any{idx, job.ID, job.Title, job.Family, job.Zone}, columns...)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert job %q: %w", job.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func decodeColumns(r *record, pJob, aJob, cJob, xJob string) error {
	if err := json.Unmarshal([]byte(pJob), &r.PJob); err != nil {
		return fmt.Errorf("p_job: %w", err)
	}
	if err := json.Unmarshal([]byte(aJob), &r.AJob); err != nil {
		return fmt.Errorf("a_job: %w", err)
	}
	if err := json.Unmarshal([]byte(cJob), &r.CJob); err != nil {
		return fmt.Errorf("c_job: %w", err)
	}
	if err := json.Unmarshal([]byte(xJob), &r.XJob); err != nil {
		return fmt.Errorf("x_job: %w", err)
	}
	return nil
}

func encodeColumns(job Job) ([]any, error) {
	values := []any{job.Personality, job.Aspirations, job.Capability, job.Exclusions}
	columns := make([]any, 0, len(values))
	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if string(data) == "null" {
			data = []byte("{}")
		}
		columns = append(columns, string(data))
	}
	return columns, nil
}
