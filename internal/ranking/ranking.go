// Package ranking scores a whole catalog for one profile, orders the results
// and splits them into the presented buckets.
package ranking

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/career-fit/internal/adjustment"
	"github.com/spigell/career-fit/internal/catalog"
	"github.com/spigell/career-fit/internal/logger"
	"github.com/spigell/career-fit/internal/profile"
	"github.com/spigell/career-fit/internal/scoring"
	"github.com/spigell/career-fit/internal/tagging"
)

const (
	// NoGapEpsilon is the largest education gap still treated as no gap.
	NoGapEpsilon = 0.01
	// UpskillingGap is the largest gap labeled as upskilling rather than new education.
	UpskillingGap = 0.15

	LabelUpskilling   = "Requires upskilling"
	LabelNewEducation = "Requires new education"

	DefaultPreviewSize          = 5
	DefaultUnrelatedPreviewSize = 10
	DefaultStrengthsBonus       = 5.0
)

// Breakdown explains a final score.
type Breakdown struct {
	Base       scoring.Breakdown `json:"base"`
	Adjustment adjustment.Result `json:"adjustment"`
}

// ScoredResult is one job scored for one profile.
type ScoredResult struct {
	JobID        string   `json:"job_id"`
	Title        string   `json:"title"`
	Family       string   `json:"job_family"`
	JobZone      int      `json:"job_zone"`
	BaseScore    float64  `json:"base_score"`
	EducationGap float64  `json:"education_gap"`
	Domains      []string `json:"domains"`
	FinalScore   float64  `json:"final_score"`
	Category     string   `json:"category"`
	// Aligned is true when the job shares a domain with the user.
	Aligned bool `json:"aligned"`
	// Label is set for jobs with an education gap.
	Label     string    `json:"label,omitempty"`
	Breakdown Breakdown `json:"breakdown"`
}

// HasGap reports whether the job needs more education than the user has.
func (r ScoredResult) HasGap() bool { return r.EducationGap > NoGapEpsilon }

// Options controls a ranking pass.
type Options struct {
	adjustment.Options
	PreviewSize          int     `json:"preview_size"`
	UnrelatedPreviewSize int     `json:"unrelated_preview_size"`
	StrengthsBonus       float64 `json:"strengths_bonus"`
}

// DefaultOptions returns Flexible mode without alignment and the standard preview sizes.
func DefaultOptions() Options {
	return Options{
		Options:              adjustment.Options{Mode: adjustment.Flexible},
		PreviewSize:          DefaultPreviewSize,
		UnrelatedPreviewSize: DefaultUnrelatedPreviewSize,
		StrengthsBonus:       DefaultStrengthsBonus,
	}
}

// Normalize returns o with the mode in canonical form, or an error when the
// mode or a preview size is invalid.
func (o Options) Normalize() (Options, error) {
	mode, err := adjustment.ParseMode(string(o.Mode))
	if err != nil {
		return o, err
	}
	o.Mode = mode
	return o, o.validateSizes()
}

func (o Options) validateSizes() error {
	if o.PreviewSize <= 0 {
		return fmt.Errorf("preview size must be positive, got %d", o.PreviewSize)
	}
	if o.UnrelatedPreviewSize <= 0 {
		return fmt.Errorf("unrelated preview size must be positive, got %d", o.UnrelatedPreviewSize)
	}
	if o.StrengthsBonus < 0 {
		return fmt.Errorf("strengths bonus must not be negative, got %v", o.StrengthsBonus)
	}
	return nil
}

// Engine runs scoring passes. It holds no per-pass state and is safe for
// concurrent use.
type Engine struct {
	tagger *tagging.Tagger
	logger *zap.Logger
}

// NewEngine creates an engine. A nil tagger means tagging.Default().
func NewEngine(tagger *tagging.Tagger, logger *zap.Logger) *Engine {
	if tagger == nil {
		tagger = tagging.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{tagger: tagger, logger: logger}
}

// Tagger returns the tagger used for job domains and skills.
func (e *Engine) Tagger() *tagging.Tagger { return e.tagger }

// Score computes a result for every job and sorts them by final score,
// highest first. Equal scores keep catalog order.
func (e *Engine) Score(user *profile.UserProfile, cat *catalog.Catalog, opts adjustment.Options) []ScoredResult {
	jobs := cat.Jobs()
	results := make([]ScoredResult, 0, len(jobs))

	for _, job := range jobs {
		results = append(results, e.score(user, job, opts))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	return results
}

func (e *Engine) score(user *profile.UserProfile, job catalog.Job, opts adjustment.Options) ScoredResult {
	base := scoring.Explain(user, job)
	domains := e.tagger.JobDomains(job.Family, job.Title)

	adj := adjustment.Apply(base.Score, adjustment.Input{
		Zone:          job.Zone,
		UserEducation: user.Capability.Value(profile.Education),
		UserDomains:   user.Domains,
		JobDomains:    domains,
		Skills:        e.tagger.MatchSkills(user.Skills, job.Family+" "+job.Title),
	}, opts)

	res := ScoredResult{
		JobID:        job.ID,
		Title:        job.Title,
		Family:       job.Family,
		JobZone:      job.Zone,
		BaseScore:    base.Score,
		EducationGap: scoring.Round2(adj.EducationGap),
		Domains:      domains,
		FinalScore:   adj.Score,
		Category:     adjustment.Category(adj.Score),
		Aligned:      adj.Aligned,
		Breakdown:    Breakdown{Base: base, Adjustment: adj},
	}
	if res.HasGap() {
		res.Label = LabelNewEducation
		if res.EducationGap <= UpskillingGap {
			res.Label = LabelUpskilling
		}
	}

	e.logger.Debug("job scored", append(logger.JobFields(job.ID, job.Title),
		zap.Float64("base_score", res.BaseScore),
		zap.Float64("final_score", res.FinalScore),
		zap.Float64("education_gap", res.EducationGap),
	)...)

	return res
}

// Rank scores the catalog and builds every bucket.
func (e *Engine) Rank(ctx context.Context, user *profile.UserProfile, cat *catalog.Catalog, opts Options) (*Report, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, fmt.Errorf("ranking options: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user profile is required")
	}
	if cat == nil || cat.Len() == 0 {
		return nil, catalog.ErrEmptyCatalog
	}

	results := e.Score(user, cat, opts.Options)

	steps := DefaultSteps()
	env := Env{User: user, Tagger: e.tagger, Options: opts, Logger: e.logger}
	buckets, err := Run(ctx, env, steps, results)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Options:    opts,
		Results:    results,
		Confidence: Confidence(results),
		Buckets:    buckets,
		Statuses:   Describe(steps),
	}

	e.logger.Info("ranking completed",
		zap.Int("jobs", len(results)),
		zap.Float64("confidence", report.Confidence),
		zap.String("education_mode", string(opts.Mode)),
		zap.Bool("strict_alignment", opts.StrictAlignment),
	)

	return report, nil
}

// Confidence is the top final score, or 0 without results.
func Confidence(results []ScoredResult) float64 {
	if len(results) == 0 {
		return 0
	}
	return results[0].FinalScore
}
