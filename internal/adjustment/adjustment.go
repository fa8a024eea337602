// Package adjustment turns a base fit score into the final score by applying
// the education gap penalty, the domain alignment penalty and the skill boost.
package adjustment

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spigell/career-fit/internal/scoring"
	"github.com/spigell/career-fit/internal/tagging"
)

var ErrUnknownMode = errors.New("unknown education mode")

// Mode controls how hard an education gap is punished.
type Mode string

const (
	// Strict keeps only roles the current education already covers.
	Strict Mode = "Strict"
	// Flexible allows certifications and short training.
	Flexible Mode = "Flexible"
	// Transform allows a new degree when the match is excellent.
	Transform Mode = "Transform"
)

// Modes lists the education modes from least to most permissive.
func Modes() []Mode { return []Mode{Strict, Flexible, Transform} }

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(strings.TrimSpace(s), string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of Strict, Flexible, Transform)", ErrUnknownMode, s)
}

const (
	StrictPenalty = 0.60

	FlexibleRate = 0.35
	FlexibleCap  = 0.35

	TransformRate = 0.15
	TransformCap  = 0.15

	// MisalignedPenalty suppresses jobs outside the user's domains while
	// keeping them visible.
	MisalignedPenalty = 0.85

	MaxSkillBoost = 1.15

	// DefaultRequiredEducation is used for job zones outside 1..5.
	DefaultRequiredEducation = 0.60
)

var requiredEducation = map[int]float64{
	1: 0.30,
	2: 0.45,
	3: 0.60,
	4: 0.75,
	5: 0.90,
}

// RequiredEducation maps a job zone to the education level it expects.
func RequiredEducation(zone int) float64 {
	if v, ok := requiredEducation[zone]; ok {
		return v
	}
	return DefaultRequiredEducation
}

// EducationGap is how far the user's education falls short of required.
func EducationGap(userEducation, required float64) float64 {
	return math.Max(0, required-userEducation)
}

// EducationPenalty returns the discount for gap under mode. A zero gap is
// never penalized.
func EducationPenalty(gap float64, mode Mode) float64 {
	if gap <= 0 {
		return 0
	}
	switch mode {
	case Strict:
		return StrictPenalty
	case Flexible:
		return math.Min(FlexibleCap, gap*FlexibleRate)
	default:
		return math.Min(TransformCap, gap*TransformRate)
	}
}

// AlignmentActive reports whether domain alignment applies at all: the
// toggle is on and the user has declared at least one domain.
func AlignmentActive(strict bool, userDomains []string) bool {
	return strict && len(userDomains) > 0
}

// AlignmentPenalty is MisalignedPenalty for a job sharing no domain with the
// user while alignment is active, otherwise 0.
func AlignmentPenalty(strict bool, userDomains, jobDomains []string) float64 {
	if !AlignmentActive(strict, userDomains) || tagging.Intersects(userDomains, jobDomains) {
		return 0
	}
	return MisalignedPenalty
}

// SkillBoost compounds the boosts of the matched skill rules and caps the
// product at MaxSkillBoost. It is never below 1.
func SkillBoost(rules []tagging.SkillRule) float64 {
	boost := 1.0
	for _, r := range rules {
		if r.Boost > 1 {
			boost *= r.Boost
		}
	}
	return math.Min(boost, MaxSkillBoost)
}

// Options are the runtime toggles of a scoring pass.
type Options struct {
	Mode            Mode `json:"education_mode"`
	StrictAlignment bool `json:"strict_alignment"`
}

// Input is the per-job data the pipeline needs besides the base score.
type Input struct {
	Zone          int
	UserEducation float64
	UserDomains   []string
	JobDomains    []string
	Skills        []tagging.SkillRule
}

// Result records every adjustment applied to a base score.
type Result struct {
	RequiredEducation float64  `json:"required_education"`
	EducationGap      float64  `json:"education_gap"`
	EducationPenalty  float64  `json:"education_penalty"`
	AlignmentPenalty  float64  `json:"alignment_penalty"`
	Aligned           bool     `json:"aligned"`
	SkillBoost        float64  `json:"skill_boost"`
	MatchedSkills     []string `json:"matched_skills"`
	// Score is the final fit in [0,100], rounded to one decimal.
	Score float64 `json:"final_score"`
}

// Apply runs the penalties and then the boost over base:
// final = base * (1-edu) * (1-align) * boost, clamped to [0,100].
func Apply(base float64, in Input, opts Options) Result {
	required := RequiredEducation(in.Zone)
	gap := EducationGap(in.UserEducation, required)
	edu := EducationPenalty(gap, opts.Mode)
	align := AlignmentPenalty(opts.StrictAlignment, in.UserDomains, in.JobDomains)
	boost := SkillBoost(in.Skills)

	matched := make([]string, 0, len(in.Skills))
	for _, r := range in.Skills {
		matched = append(matched, r.Tag)
	}

	final := base * (1 - edu) * (1 - align) * boost

	return Result{
		RequiredEducation: required,
		EducationGap:      gap,
		EducationPenalty:  edu,
		AlignmentPenalty:  align,
		Aligned:           tagging.Intersects(in.UserDomains, in.JobDomains),
		SkillBoost:        boost,
		MatchedSkills:     matched,
		Score:             scoring.Round1(scoring.Clamp(final, 0, 100)),
	}
}

// Category labels, highest first.
const (
	BestFit   = "Best Fit"
	StrongFit = "Strong Fit"
	SafeFit   = "Safe Fit"
	LowFit    = "Low Fit"
)

// Category labels a final score.
func Category(score float64) string {
	switch {
	case score >= 80:
		return BestFit
	case score >= 65:
		return StrongFit
	case score >= 55:
		return SafeFit
	default:
		return LowFit
	}
}
