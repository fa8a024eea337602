package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTagger struct {
	domains     []string
	credentials []string
}

func (s stubTagger) Domains(string) []string     { return s.domains }
func (s stubTagger) Credentials(string) []string { return s.credentials }

func TestNormalizers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fn     func(string) float64
		input  string
		expect float64
	}{
		{"high school", NormalizeEducationLevel, EducationHighSchool, 0.25},
		{"bachelor curly", NormalizeEducationLevel, "Bachelor’s", 0.55},
		{"bachelor straight", NormalizeEducationLevel, "bachelor's", 0.55},
		{"phd", NormalizeEducationLevel, EducationPhD, 0.90},
		{"education unknown", NormalizeEducationLevel, "Clown college", DefaultEducation},
		{"education empty", NormalizeEducationLevel, "", DefaultEducation},
		{"experience en dash", NormalizeExperience, "6–10", 0.60},
		{"experience hyphen", NormalizeExperience, "6-10", 0.60},
		{"experience plus", NormalizeExperience, "10+", 0.80},
		{"experience unknown", NormalizeExperience, "forever", DefaultExperience},
		{"learning steep", NormalizeLearningAppetite, LearningSteep, 0.90},
		{"learning unknown", NormalizeLearningAppetite, "?", DefaultLearning},
		{"career path leadership", NormalizeCareerPath, PathLeadership, 0.8},
		{"career path unknown", NormalizeCareerPath, "", DefaultLeadership},
		{"remote", NormalizeWorkLocation, "  fully   REMOTE ", 0.9},
		{"location unknown", NormalizeWorkLocation, "moon", DefaultFlexibility},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expect, tt.fn(tt.input), 1e-9)
		})
	}
}

func TestNewVectorRejectsUnknownAndOutOfRange(t *testing.T) {
	_, err := NewVector(PersonalityKind, map[string]float64{
		"independance": 0.5,
		"pace":         1.5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDimension))
	assert.True(t, errors.Is(err, ErrOutOfRange))

	v, err := NewVector(CapabilityKind, map[string]float64{"education": 0, "learning": 1})
	require.NoError(t, err)
	assert.Len(t, v, 2)
}

func TestKnownVectorDropsUnknownKeys(t *testing.T) {
	v := KnownVector(CapabilityKind, map[string]float64{"education": 0.4, "charisma": 0.9, "learning": 1.2})
	assert.Equal(t, Vector{Education: 0.4, Learning: 1}, v)
}

func TestBuildAppliesDefaultsAndInfersDomains(t *testing.T) {
	tagger := stubTagger{domains: []string{"Engineering"}, credentials: []string{"PMP"}}

	p, bg, err := Build(Answers{
		Personality:      map[string]float64{"pace": 0.9},
		CareerPath:       PathLeadership,
		WorkLocation:     LocationRemote,
		EducationLevel:   EducationMaster,
		Experience:       Experience3to5,
		LearningAppetite: LearningGradual,
		EducationText:    "  BSc Civil Engineering, PMP ",
		Skills:           []string{"Analysis / Data", "Analysis / Data", " "},
		Avoid:            map[string]bool{"sales": true},
	}, tagger)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, p.Personality[Pace], 1e-9)
	assert.InDelta(t, 0.7, p.Personality[Cognitive], 1e-9)
	assert.InDelta(t, 0.8, p.Aspirations[Leadership], 1e-9)
	assert.InDelta(t, 0.9, p.Aspirations[Flexibility], 1e-9)
	assert.InDelta(t, 0.7, p.Capability[Education], 1e-9)
	assert.InDelta(t, 0.4, p.Capability[Experience], 1e-9)
	assert.InDelta(t, 0.6, p.Capability[Learning], 1e-9)
	assert.True(t, p.Exclusions[Sales])
	assert.Equal(t, []string{"Analysis / Data"}, p.Skills)
	assert.Equal(t, []string{"Engineering"}, p.Domains)

	assert.True(t, bg.Inferred)
	assert.Equal(t, "BSc Civil Engineering, PMP", bg.Text)
	assert.Equal(t, []string{"PMP"}, bg.Credentials)
}

func TestBuildExplicitDomainsOverrideInference(t *testing.T) {
	tagger := stubTagger{domains: []string{"Engineering"}}

	p, bg, err := Build(Answers{
		EducationText: "BEng",
		Domains:       []string{"Healthcare"},
	}, tagger)
	require.NoError(t, err)

	assert.Equal(t, []string{"Healthcare"}, p.Domains)
	assert.False(t, bg.Inferred)
}

func TestBuildExplicitAspirationWins(t *testing.T) {
	p, _, err := Build(Answers{
		Aspirations: map[string]float64{"leadership": 0.1},
		CareerPath:  PathLeadership,
	}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, p.Aspirations[Leadership], 1e-9)
}

func TestBuildReportsAllErrors(t *testing.T) {
	_, _, err := Build(Answers{
		Personality:          map[string]float64{"mood": 0.3},
		Avoid:                map[string]bool{"weekends": true},
		TimeInvestmentMonths: 36,
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDimension)
	assert.Contains(t, err.Error(), "time-investment-months")
}

func TestWithDomainsDoesNotMutate(t *testing.T) {
	p := &UserProfile{Domains: []string{"A"}}
	edited := p.WithDomains([]string{"B", "B", ""})

	assert.Equal(t, []string{"A"}, p.Domains)
	assert.Equal(t, []string{"B"}, edited.Domains)
	assert.True(t, edited.HasDomains())
	assert.False(t, p.WithDomains(nil).HasDomains())
}

func TestExclusions(t *testing.T) {
	x, err := NewExclusions(map[string]bool{"travel": true, "sales": true, "political": false})
	require.NoError(t, err)
	assert.Equal(t, []string{"sales", "travel"}, x.Active())

	known := KnownExclusionsOf(map[string]bool{"travel": true, "nights": true})
	assert.Equal(t, Exclusions{Travel: true}, known)
}

func TestDecodeAnswers(t *testing.T) {
	a, err := DecodeAnswers(map[string]any{
		"personality":            map[string]any{"independence": 0.8, "pace": 1},
		"career-path":            "Leadership / management",
		"education-level":        "Master’s",
		"domains":                []any{"Engineering"},
		"avoid":                  map[string]any{"sales": true},
		"time-investment-months": 6.0,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.8, a.Personality["independence"])
	assert.Equal(t, 1.0, a.Personality["pace"])
	assert.Equal(t, "Leadership / management", a.CareerPath)
	assert.Equal(t, []string{"Engineering"}, a.Domains)
	assert.True(t, a.Avoid["sales"])
	assert.Equal(t, 6, a.TimeInvestmentMonths)

	_, err = DecodeAnswers(map[string]any{"carreer-path": "Expert"})
	assert.Error(t, err)

	empty, err := DecodeAnswers(nil)
	require.NoError(t, err)
	assert.Equal(t, Answers{}, empty)
}
