package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/career-fit/internal/adjustment"
	"github.com/spigell/career-fit/internal/catalog"
	"github.com/spigell/career-fit/internal/tagging"
)

func TestToggle(t *testing.T) {
	domains := toggle(nil, tagging.DomainEngineering)
	assert.Equal(t, []string{tagging.DomainEngineering}, domains)

	domains = toggle(domains, tagging.DomainIT)
	domains = toggle(domains, tagging.DomainEngineering)
	assert.Equal(t, []string{tagging.DomainIT}, domains)

	assert.Equal(t, []string{tagging.DomainIT}, toggle(domains, ""))
}

func TestRankingOptions(t *testing.T) {
	cfg := &Config{Matching: &MatchingConfig{
		EducationMode:        "transform",
		StrictAlignment:      true,
		PreviewSize:          3,
		UnrelatedPreviewSize: 7,
		StrengthsBonus:       5,
	}}

	opts, err := cfg.rankingOptions()
	require.NoError(t, err)
	assert.Equal(t, adjustment.Transform, opts.Mode)
	assert.True(t, opts.StrictAlignment)
	assert.Equal(t, 3, opts.PreviewSize)

	cfg.Matching.EducationMode = "lenient"
	_, err = cfg.rankingOptions()
	assert.ErrorIs(t, err, adjustment.ErrUnknownMode)

	cfg.Matching.EducationMode = "Strict"
	cfg.Matching.PreviewSize = 0
	_, err = cfg.rankingOptions()
	assert.Error(t, err)
}

func TestPrintTags(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTags(&buf, tagging.Default(), "BSc Civil Engineering, PMP", false))
	out := buf.String()
	assert.Contains(t, out, "Domains: "+tagging.DomainConstruction+", "+tagging.DomainEngineering)
	assert.Contains(t, out, "PMP")
	assert.Contains(t, out, "Skill keywords: -")

	buf.Reset()
	require.NoError(t, printTags(&buf, tagging.Default(), "Registered Nurses", true))
	assert.Equal(t, "Job domains: "+tagging.DomainHealthcare+"\n", buf.String())
}

func TestImportCatalog(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(source, []byte(`
- job_id: "17-2051.00"
  title: Civil Engineers
  job_family: Architecture and Engineering
  job_zone: 4
  C_job: {education: 0.75}
- job_id: "29-1141.00"
  title: Registered Nurses
`), 0o644))

	database := filepath.Join(dir, "jobs.db")
	count, err := importCatalog(context.Background(), source, database, true)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	src, err := catalog.Open(database, false)
	require.NoError(t, err)
	jobs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "17-2051.00", jobs[0].ID)
	assert.Equal(t, catalog.DefaultJobZone, jobs[1].Zone)

	_, err = importCatalog(context.Background(), source, filepath.Join(dir, "jobs.json"), true)
	assert.ErrorIs(t, err, catalog.ErrUnsupportedFormat)

	_, err = importCatalog(context.Background(), database, filepath.Join(dir, "other.db"), true)
	assert.ErrorIs(t, err, catalog.ErrUnsupportedFormat)
}
