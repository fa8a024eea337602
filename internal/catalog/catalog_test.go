package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-fit/internal/profile"
)

const sampleJSON = `[
  {
    "job_id": "17-2051.00",
    "title": "Civil Engineers",
    "job_family": "Architecture and Engineering",
    "job_zone": 4,
    "P_job": {"independence": 0.6, "structure": 0.7, "charisma": 0.9},
    "A_job": {"income": 0.7},
    "C_job": {"education": 0.75, "experience": 0.4, "stamina": 0.5},
    "X_job": {"travel": true, "weekends": true}
  },
  {
    "job_id": "41-3091.00",
    "title": "Sales Representatives",
    "job_family": "Sales"
  }
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceJSON(t *testing.T) {
	path := writeFile(t, "jobs.json", sampleJSON)

	src, err := Open(path, true)
	require.NoError(t, err)

	jobs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	civil := jobs[0]
	assert.Equal(t, "17-2051.00", civil.ID)
	assert.Equal(t, 4, civil.Zone)
	assert.Equal(t, profile.Vector{profile.Independence: 0.6, profile.Structure: 0.7}, civil.Personality)
	assert.Equal(t, profile.Vector{profile.Education: 0.75, profile.Experience: 0.4}, civil.Capability)
	assert.Equal(t, profile.Exclusions{profile.Travel: true}, civil.Exclusions)

	sales := jobs[1]
	assert.Equal(t, DefaultJobZone, sales.Zone)
	assert.Empty(t, sales.Capability)
}

func TestFileSourceYAML(t *testing.T) {
	path := writeFile(t, "jobs.yaml", `
- job_id: "15-1252.00"
  title: Software Developers
  job_family: Computer and Mathematical
  job_zone: 4
  C_job:
    education: 0.6
`)

	src, err := Open(path, true)
	require.NoError(t, err)

	jobs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Software Developers", jobs[0].Title)
	assert.InDelta(t, 0.6, jobs[0].Capability[profile.Education], 1e-9)
}

func TestFileSourceSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zone out of range", `[{"job_id": "a", "title": "A", "job_zone": 7}]`},
		{"missing title", `[{"job_id": "a"}]`},
		{"vector out of range", `[{"job_id": "a", "title": "A", "C_job": {"education": 1.4}}]`},
		{"exclusion not bool", `[{"job_id": "a", "title": "A", "X_job": {"sales": "yes"}}]`},
		{"not an array", `{"job_id": "a"}`},
		{"broken json", `[{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "jobs.json", tt.content)
			_, err := (&FileSource{Path: path, Validate: true}).Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestFileSourceWithoutValidationDefaultsZone(t *testing.T) {
	path := writeFile(t, "jobs.json", `[{"job_id": "a", "title": "A", "job_zone": 7}]`)

	jobs, err := (&FileSource{Path: path}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, jobs[0].Zone)
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	_, err := Open("jobs.csv", true)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Open("  ", true)
	assert.Error(t, err)
}

func TestNewValidatesJobs(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = New([]Job{{ID: "a"}, {ID: "a"}, {ID: ""}})
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "duplicate job_id")

	cat, err := New([]Job{{ID: "b"}, {ID: "a"}})
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, "b", cat.Jobs()[0].ID)

	job, ok := cat.FindByID("a")
	assert.True(t, ok)
	assert.Equal(t, "a", job.ID)
}

func TestCacheLoadsOnce(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	path := writeFile(t, "jobs.json", sampleJSON)

	cache := NewCache(&FileSource{Path: path, Validate: true}, zap.New(core))

	first, err := cache.Get(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	second, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, observed.FilterMessage("job catalog loaded").Len())
}

func TestCacheMissingFileIsError(t *testing.T) {
	cache := NewCache(&FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}, nil)

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading catalog file")
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	jsonPath := writeFile(t, "jobs.json", sampleJSON)

	jobs, err := (&FileSource{Path: jsonPath, Validate: true}).Load(ctx)
	require.NoError(t, err)

	dbPath := filepath.Join(t.TempDir(), "jobs.db")
	require.NoError(t, WriteSQLite(ctx, dbPath, jobs))
	// a second import replaces the rows instead of appending
	require.NoError(t, WriteSQLite(ctx, dbPath, jobs))

	src, err := Open(dbPath, false)
	require.NoError(t, err)

	loaded, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, jobs, loaded)
}
