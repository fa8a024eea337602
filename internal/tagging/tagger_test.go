package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainsAndCredentialsFromEducationText(t *testing.T) {
	tagger := Default()
	text := "BSc Civil Engineering, PMP"

	domains := tagger.Domains(text)
	assert.Contains(t, domains, DomainConstruction)
	assert.Contains(t, domains, DomainEngineering)

	credentials := tagger.Credentials(text)
	assert.Contains(t, credentials, "Bachelor's")
	assert.Contains(t, credentials, "PMP")
	assert.NotContains(t, credentials, "Master's")
}

func TestTagIsCaseInsensitiveAndTotal(t *testing.T) {
	tagger := Default()

	assert.Equal(t, tagger.Domains("bsc civil engineering"), tagger.Domains("BSC CIVIL ENGINEERING"))
	assert.Empty(t, tagger.Domains(""))
	assert.Empty(t, tagger.Domains("   "))
	assert.Empty(t, tagger.Credentials("nothing relevant here"))
}

func TestTagSuppressesDuplicatesInRuleOrder(t *testing.T) {
	table := MustTable("test", []RuleSpec{
		{Tag: "b", Patterns: []string{`beta`}},
		{Tag: "a", Patterns: []string{`alpha`, `al`}},
		{Tag: "b", Patterns: []string{`alpha`}},
	})

	assert.Equal(t, []string{"b", "a"}, table.Tag("alpha beta"))
	assert.Equal(t, []string{"a", "b"}, table.Tag("ALPHA"))
}

func TestNewTableRejectsBadPattern(t *testing.T) {
	_, err := NewTable("broken", []RuleSpec{{Tag: "x", Patterns: []string{`(`}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestNewRejectsBoostBelowOne(t *testing.T) {
	empty := MustTable("empty", nil)
	_, err := New(empty, empty, empty, []SkillSpec{{Skill: "x", Boost: 0.9}})
	require.Error(t, err)
}

func TestJobDomains(t *testing.T) {
	tagger := Default()

	tests := []struct {
		name   string
		family string
		title  string
		expect []string
	}{
		{"civil engineer", "Architecture and Engineering", "Civil Engineers", []string{DomainConstruction, DomainEngineering}},
		{"software", "Computer and Mathematical", "Software Developers", []string{DomainIT}},
		{"nurse", "Healthcare Practitioners", "Registered Nurses", []string{DomainHealthcare}},
		{"nothing", "", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.JobDomains(tt.family, tt.title)
			for _, tag := range tt.expect {
				assert.Contains(t, got, tag)
			}
			if len(tt.expect) == 0 {
				assert.Empty(t, got)
			}
		})
	}
}

func TestMatchSkills(t *testing.T) {
	tagger := Default()

	matched := tagger.MatchSkills([]string{"project management", SkillAnalysis, "Unknown", SkillAnalysis}, "IT Project Manager")
	require.Len(t, matched, 1)
	assert.Equal(t, SkillProjectManage, matched[0].Tag)
	assert.InDelta(t, 1.08, matched[0].Boost, 1e-9)

	assert.Empty(t, tagger.MatchSkills(nil, "Data Analyst"))
	assert.Len(t, tagger.MatchSkills([]string{SkillAnalysis}, "Data Analyst"), 1)
}

func TestSkillLookup(t *testing.T) {
	tagger := Default()

	rule, ok := tagger.Skill("  analysis   /   data ")
	require.True(t, ok)
	assert.Equal(t, SkillAnalysis, rule.Tag)

	_, ok = tagger.Skill("juggling")
	assert.False(t, ok)
	assert.Contains(t, tagger.SkillNames(), SkillProjectManage)
	assert.Contains(t, tagger.DomainTags(), DomainHealthcare)
}

func TestIntersectsAndDedupe(t *testing.T) {
	assert.True(t, Intersects([]string{"a", "b"}, []string{"c", "b"}))
	assert.False(t, Intersects([]string{"a"}, []string{"c"}))
	assert.False(t, Intersects(nil, []string{"c"}))

	assert.Equal(t, []string{"a", "b"}, Dedupe([]string{"a", " ", "b", "a"}))
}
