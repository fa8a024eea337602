package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/career-fit/internal/catalog"
	"github.com/spigell/career-fit/internal/profile"
)

func scenarioUser() *profile.UserProfile {
	return &profile.UserProfile{
		Personality: profile.Vector{
			profile.Independence: 0.8, profile.Ambiguity: 0.8, profile.Structure: 0.2,
			profile.Cognitive: 0.9, profile.Pace: 0.8,
		},
		Aspirations: profile.Vector{
			profile.Income: 0.5, profile.Purpose: 0.9, profile.Leadership: 0.3,
			profile.Flexibility: 0.9, profile.Balance: 0.5,
		},
		Capability: profile.Vector{
			profile.Education: 0.55, profile.Experience: 0.4, profile.Learning: 0.6,
		},
		Exclusions: profile.Exclusions{profile.Sales: true, profile.Political: false, profile.Travel: false},
	}
}

func randomVector(r *rand.Rand, kind profile.Kind) profile.Vector {
	v := profile.Vector{}
	for _, d := range kind.Dimensions {
		if r.Intn(4) == 0 {
			continue
		}
		v[d] = r.Float64()
	}
	return v
}

func TestSimilaritySelfIsPerfect(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		v := randomVector(r, profile.PersonalityKind)
		if len(v) == 0 {
			continue
		}
		assert.InDelta(t, 1.0, Similarity(v, v), 1e-12)
	}
}

func TestSimilarityBounded(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		s := Similarity(randomVector(r, profile.AspirationsKind), randomVector(r, profile.AspirationsKind))
		require.GreaterOrEqual(t, s, 0.0)
		require.LessOrEqual(t, s, 1.0)
	}
}

func TestSimilaritySharedKeysOnly(t *testing.T) {
	v1 := profile.Vector{profile.Income: 1, profile.Purpose: 0}
	v2 := profile.Vector{profile.Income: 0.5, profile.Balance: 0.9}

	assert.InDelta(t, 0.5, Similarity(v1, v2), 1e-12)
	assert.Equal(t, Neutral, Similarity(profile.Vector{profile.Income: 1}, profile.Vector{profile.Purpose: 1}))
	assert.Equal(t, Neutral, Similarity(nil, nil))
	assert.Equal(t, 0.0, Similarity(profile.Vector{profile.Income: 0}, profile.Vector{profile.Income: 1}))
}

func TestCapabilityScore(t *testing.T) {
	user := profile.Vector{profile.Education: 0.4, profile.Experience: 0.8}

	tests := []struct {
		name   string
		job    profile.Vector
		expect float64
	}{
		{"no requirements", profile.Vector{}, Neutral},
		{"met", profile.Vector{profile.Education: 0.4}, 1},
		{"zero requirement", profile.Vector{profile.Learning: 0}, 1},
		{"partial", profile.Vector{profile.Education: 0.8}, 0.5},
		{"missing user key counts as zero", profile.Vector{profile.Learning: 0.5}, 0},
		{"average", profile.Vector{profile.Education: 0.8, profile.Experience: 0.2}, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, CapabilityScore(user, tt.job), 1e-12)
		})
	}
}

func TestExclusionPenaltyMonotonicAndCapped(t *testing.T) {
	all := profile.Exclusions{profile.Sales: true, profile.Political: true, profile.Travel: true}

	assert.Equal(t, 0.0, ExclusionPenalty(profile.Exclusions{}, all))
	assert.Equal(t, 0.0, ExclusionPenalty(all, profile.Exclusions{}))
	assert.Equal(t, 0.0, ExclusionPenalty(profile.Exclusions{profile.Sales: false}, all))

	previous := 0.0
	job := profile.Exclusions{}
	for _, e := range profile.KnownExclusions {
		job[e] = true
		p := ExclusionPenalty(all, job)
		assert.GreaterOrEqual(t, p, previous)
		assert.LessOrEqual(t, p, ExclusionCap)
		previous = p
	}
	assert.InDelta(t, 0.45, previous, 1e-12)
}

func TestFitScoreScenarioExclusionOnly(t *testing.T) {
	user := scenarioUser()
	job := catalog.Job{
		ID:          "j1",
		Zone:        2,
		Personality: user.Personality,
		Aspirations: user.Aspirations,
		Capability:  profile.Vector{profile.Education: 0.45},
		Exclusions:  profile.Exclusions{profile.Sales: true},
	}

	b := Explain(user, job)
	assert.InDelta(t, 1.0, b.Personality, 1e-12)
	assert.InDelta(t, 1.0, b.Aspirations, 1e-12)
	assert.InDelta(t, 1.0, b.Capability, 1e-12)
	assert.InDelta(t, 0.15, b.ExclusionPenalty, 1e-12)
	assert.Equal(t, []string{"sales"}, b.ExclusionConflicts)
	assert.InDelta(t, 85.0, b.Score, 1e-9)
	assert.InDelta(t, 85.0, FitScore(user, job), 1e-9)
}

func TestFitScoreBounded(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for i := 0; i < 500; i++ {
		user := &profile.UserProfile{
			Personality: randomVector(r, profile.PersonalityKind),
			Aspirations: randomVector(r, profile.AspirationsKind),
			Capability:  randomVector(r, profile.CapabilityKind),
			Exclusions:  profile.Exclusions{profile.Sales: r.Intn(2) == 0, profile.Travel: r.Intn(2) == 0},
		}
		job := catalog.Job{
			Personality: randomVector(r, profile.PersonalityKind),
			Aspirations: randomVector(r, profile.AspirationsKind),
			Capability:  randomVector(r, profile.CapabilityKind),
			Exclusions:  profile.Exclusions{profile.Sales: r.Intn(2) == 0, profile.Political: true},
		}
		score := FitScore(user, job)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 100.0)
	}
}

func TestFitScoreEmptyVectorsIsNeutral(t *testing.T) {
	score := FitScore(&profile.UserProfile{}, catalog.Job{})
	assert.InDelta(t, 50.0, score, 1e-9)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 85.1, Round1(85.06))
	assert.Equal(t, 0.65, Round2(0.6500000001))
	assert.Equal(t, 100.0, Clamp(104, 0, 100))
	assert.Equal(t, 0.0, Clamp(-1, 0, 100))
}
