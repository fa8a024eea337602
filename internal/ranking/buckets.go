package ranking

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/career-fit/internal/adjustment"
	"github.com/spigell/career-fit/internal/profile"
	"github.com/spigell/career-fit/internal/tagging"
)

const (
	BucketReadyNow      = "ready_now"
	BucketBestPotential = "best_potential"
	BucketStrengths     = "strengths"
	BucketUnrelated     = "unrelated"
)

// Step builds one bucket out of the sorted results.
type Step interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(env Env) error
	Apply(ctx context.Context, env Env, results []ScoredResult) (Bucket, Selection, error)
}

// Env aggregates what every step may consult.
type Env struct {
	User    *profile.UserProfile
	Tagger  *tagging.Tagger
	Options Options
	Logger  *zap.Logger
}

func (e Env) alignmentActive() bool {
	return adjustment.AlignmentActive(e.Options.StrictAlignment, e.User.Domains)
}

// Selection describes how many results a step looked at and kept.
type Selection struct {
	Initial int
	Dropped int
	Left    int
}

// Entry is a bucket item. ViewScore orders the bucket and equals the final
// score except in the strengths view.
type Entry struct {
	ScoredResult
	ViewScore float64 `json:"view_score"`
}

// Bucket is a named, capped view over the sorted results.
type Bucket struct {
	Name    string  `json:"name"`
	Enabled bool    `json:"enabled"`
	Reason  string  `json:"reason,omitempty"`
	Total   int     `json:"total"`
	Items   []Entry `json:"items"`
}

// Status represents runtime information about a step.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type statusProvider interface {
	Status() Status
}

// DefaultSteps returns fresh bucket steps in presentation order.
func DefaultSteps() []Step {
	return []Step{
		NewReadyNow(),
		NewBestPotential(),
		NewStrengths(),
		NewUnrelated(),
	}
}

// DisableByName marks a step with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Step, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates and applies the steps in order. Disabled steps still
// produce an empty bucket carrying the reason.
func Run(ctx context.Context, env Env, steps []Step, results []ScoredResult) ([]Bucket, error) {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if err := step.Validate(env); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	buckets := make([]Bucket, 0, len(steps))
	for _, step := range steps {
		if !step.IsEnabled() {
			reason := ""
			if reporter, ok := step.(statusProvider); ok {
				reason = reporter.Status().Reason
			}
			env.Logger.Debug("bucket disabled", zap.String("name", step.Name()), zap.String("reason", reason))
			buckets = append(buckets, Bucket{Name: step.Name(), Reason: reason, Items: []Entry{}})
			continue
		}

		bucket, info, err := step.Apply(ctx, env, results)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		env.Logger.Debug("bucket step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		buckets = append(buckets, bucket)
	}

	return buckets, nil
}

// Describe returns status entries for the provided steps.
func Describe(steps []Step) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// base carries the enable/disable bookkeeping shared by the steps.
type base struct {
	disabled bool
	reason   string
	details  map[string]string
}

func (b *base) Disable(reason string) {
	b.disabled = true
	b.reason = reason
}

func (b *base) IsEnabled() bool { return !b.disabled }

func (b *base) status(name string) Status {
	return Status{Name: name, Enabled: !b.disabled, Reason: b.reason, Details: b.details}
}

func selectEntries(name string, results []ScoredResult, limit int, keep func(ScoredResult) bool) (Bucket, Selection) {
	entries := make([]Entry, 0)
	for _, r := range results {
		if keep(r) {
			entries = append(entries, Entry{ScoredResult: r, ViewScore: r.FinalScore})
		}
	}
	return preview(name, entries, limit), Selection{Initial: len(results), Dropped: len(results) - len(entries), Left: len(entries)}
}

func preview(name string, entries []Entry, limit int) Bucket {
	total := len(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return Bucket{Name: name, Enabled: true, Total: total, Items: entries}
}

type readyNowStep struct{ base }

// NewReadyNow creates the step for jobs reachable without more education.
func NewReadyNow() Step { return &readyNowStep{} }

func (s *readyNowStep) Name() string { return BucketReadyNow }

func (s *readyNowStep) Validate(env Env) error {
	s.details = map[string]string{"preview": strconv.Itoa(env.Options.PreviewSize)}
	return nil
}

func (s *readyNowStep) Apply(_ context.Context, env Env, results []ScoredResult) (Bucket, Selection, error) {
	aligned := env.alignmentActive()
	b, sel := selectEntries(s.Name(), results, env.Options.PreviewSize, func(r ScoredResult) bool {
		return !r.HasGap() && (!aligned || r.Aligned)
	})
	return b, sel, nil
}

func (s *readyNowStep) Status() Status { return s.status(s.Name()) }

type bestPotentialStep struct{ base }

// NewBestPotential creates the step for jobs that need more education.
// It disables itself in Strict mode.
func NewBestPotential() Step { return &bestPotentialStep{} }

func (s *bestPotentialStep) Name() string { return BucketBestPotential }

func (s *bestPotentialStep) Validate(env Env) error {
	s.details = map[string]string{
		"preview":        strconv.Itoa(env.Options.PreviewSize),
		"education_mode": string(env.Options.Mode),
	}
	if env.Options.Mode == adjustment.Strict {
		s.Disable("Strict education mode suppresses roles that require additional education")
	}
	return nil
}

func (s *bestPotentialStep) Apply(_ context.Context, env Env, results []ScoredResult) (Bucket, Selection, error) {
	aligned := env.alignmentActive()
	b, sel := selectEntries(s.Name(), results, env.Options.PreviewSize, func(r ScoredResult) bool {
		return r.HasGap() && (!aligned || r.Aligned)
	})
	return b, sel, nil
}

func (s *bestPotentialStep) Status() Status { return s.status(s.Name()) }

type strengthsStep struct{ base }

// NewStrengths creates the view that lifts jobs whose title matches a
// selected skill by the configured bonus. Final scores are left untouched.
func NewStrengths() Step { return &strengthsStep{} }

func (s *strengthsStep) Name() string { return BucketStrengths }

func (s *strengthsStep) Validate(env Env) error {
	s.details = map[string]string{
		"preview": strconv.Itoa(env.Options.PreviewSize),
		"bonus":   strconv.FormatFloat(env.Options.StrengthsBonus, 'f', -1, 64),
	}
	if env.Tagger == nil {
		return fmt.Errorf("tagger is required")
	}
	if len(env.User.Skills) == 0 {
		s.Disable("no skills selected")
	}
	return nil
}

func (s *strengthsStep) Apply(_ context.Context, env Env, results []ScoredResult) (Bucket, Selection, error) {
	aligned := env.alignmentActive()
	entries := make([]Entry, 0, len(results))
	boosted := 0

	for _, r := range results {
		if aligned && !r.Aligned {
			continue
		}
		view := r.FinalScore
		if len(env.Tagger.MatchSkills(env.User.Skills, r.Title)) > 0 {
			view += env.Options.StrengthsBonus
			boosted++
		}
		entries = append(entries, Entry{ScoredResult: r, ViewScore: view})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ViewScore > entries[j].ViewScore
	})

	s.details["boosted"] = strconv.Itoa(boosted)

	return preview(s.Name(), entries, env.Options.PreviewSize),
		Selection{Initial: len(results), Dropped: len(results) - len(entries), Left: len(entries)}, nil
}

func (s *strengthsStep) Status() Status { return s.status(s.Name()) }

type unrelatedStep struct{ base }

// NewUnrelated creates the step collecting jobs outside the user's domains.
// It is only enabled while domain alignment is active.
func NewUnrelated() Step { return &unrelatedStep{} }

func (s *unrelatedStep) Name() string { return BucketUnrelated }

func (s *unrelatedStep) Validate(env Env) error {
	s.details = map[string]string{"preview": strconv.Itoa(env.Options.UnrelatedPreviewSize)}
	switch {
	case !env.Options.StrictAlignment:
		s.Disable("strict domain alignment is off")
	case len(env.User.Domains) == 0:
		s.Disable("no background domains to align with")
	}
	return nil
}

func (s *unrelatedStep) Apply(_ context.Context, env Env, results []ScoredResult) (Bucket, Selection, error) {
	b, sel := selectEntries(s.Name(), results, env.Options.UnrelatedPreviewSize, func(r ScoredResult) bool {
		return !r.Aligned
	})
	return b, sel, nil
}

func (s *unrelatedStep) Status() Status { return s.status(s.Name()) }
