// Package scoring computes the base compatibility score between a user
// profile and a job record.
package scoring

import (
	"math"

	"github.com/spigell/career-fit/internal/catalog"
	"github.com/spigell/career-fit/internal/profile"
)

// Weights of the sub-scores in the base fit score.
const (
	WeightPersonality = 0.40
	WeightAspirations = 0.35
	WeightCapability  = 0.25
)

const (
	// Neutral is returned when there is nothing to compare.
	Neutral = 0.5

	ExclusionStep = 0.15
	ExclusionCap  = 0.60
)

// Breakdown explains how a base score was produced.
type Breakdown struct {
	Personality        float64  `json:"personality_similarity"`
	Aspirations        float64  `json:"aspirations_similarity"`
	Capability         float64  `json:"capability_score"`
	ExclusionPenalty   float64  `json:"exclusion_penalty"`
	ExclusionConflicts []string `json:"exclusion_conflicts"`
	// Score is the base fit score in [0,100], rounded to one decimal.
	Score float64 `json:"base_score"`
}

// Similarity is 1 minus the mean absolute difference over the dimensions
// both vectors state. Without shared dimensions it returns Neutral.
func Similarity(v1, v2 profile.Vector) float64 {
	var (
		sum    float64
		shared int
	)
	for _, d := range v1.Dimensions() {
		a := v1[d]
		b, ok := v2[d]
		if !ok {
			continue
		}
		sum += math.Abs(a - b)
		shared++
	}
	if shared == 0 {
		return Neutral
	}
	return math.Max(0, 1-sum/float64(shared))
}

// CapabilityScore averages per-requirement readiness. A requirement at or
// below zero, or one the user meets, counts 1; a shortfall earns have/req.
// Dimensions the user leaves out count as 0. With no requirements it
// returns Neutral.
func CapabilityScore(user, job profile.Vector) float64 {
	if len(job) == 0 {
		return Neutral
	}

	var sum float64
	for _, d := range job.Dimensions() {
		req := job[d]
		have := user.Value(d)
		switch {
		case req <= 0:
			sum++
		case have >= req:
			sum++
		default:
			sum += math.Max(0, have/req)
		}
	}
	return sum / float64(len(job))
}

// ExclusionPenalty adds ExclusionStep for every flag the user avoids and
// the job involves, capped at ExclusionCap.
func ExclusionPenalty(user, job profile.Exclusions) float64 {
	penalty, _ := exclusionConflicts(user, job)
	return penalty
}

func exclusionConflicts(user, job profile.Exclusions) (float64, []string) {
	conflicts := make([]string, 0)
	for _, e := range profile.KnownExclusions {
		if user[e] && job[e] {
			conflicts = append(conflicts, string(e))
		}
	}
	return math.Min(float64(len(conflicts))*ExclusionStep, ExclusionCap), conflicts
}

// FitScore returns the base fit score in [0,100].
func FitScore(user *profile.UserProfile, job catalog.Job) float64 {
	return Explain(user, job).Score
}

// Explain computes the base score along with its sub-scores.
func Explain(user *profile.UserProfile, job catalog.Job) Breakdown {
	p := Similarity(user.Personality, job.Personality)
	a := Similarity(user.Aspirations, job.Aspirations)
	c := CapabilityScore(user.Capability, job.Capability)
	penalty, conflicts := exclusionConflicts(user.Exclusions, job.Exclusions)

	base := WeightPersonality*p + WeightAspirations*a + WeightCapability*c
	final := base * (1 - penalty)

	return Breakdown{
		Personality:        p,
		Aspirations:        a,
		Capability:         c,
		ExclusionPenalty:   penalty,
		ExclusionConflicts: conflicts,
		Score:              Round1(Clamp(final*100, 0, 100)),
	}
}

// Round1 rounds to one decimal place.
func Round1(x float64) float64 { return math.Round(x*10) / 10 }

// Round2 rounds to two decimal places.
func Round2(x float64) float64 { return math.Round(x*100) / 100 }

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
