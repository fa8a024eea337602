// Package tagging turns free text into canonical domain, credential and
// skill tags using ordered regular expression tables.
package tagging

import (
	"fmt"
	"regexp"
	"strings"
)

// RuleSpec is the uncompiled form of a rule.
type RuleSpec struct {
	Tag      string
	Patterns []string
}

// Rule maps a canonical tag to the patterns that produce it.
type Rule struct {
	Tag      string
	Patterns []*regexp.Regexp
}

// Matches reports whether any pattern matches anywhere in the lower-cased text.
func (r Rule) Matches(text string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Table is an ordered list of rules. Tag order in the output follows rule order.
type Table struct {
	name  string
	rules []Rule
}

// NewTable compiles specs into a table.
func NewTable(name string, specs []RuleSpec) (*Table, error) {
	t := &Table{name: name, rules: make([]Rule, 0, len(specs))}
	for _, spec := range specs {
		patterns, err := compile(spec.Patterns)
		if err != nil {
			return nil, fmt.Errorf("%s table, tag %q: %w", name, spec.Tag, err)
		}
		t.rules = append(t.rules, Rule{Tag: spec.Tag, Patterns: patterns})
	}
	return t, nil
}

// MustTable is like NewTable but panics on an invalid pattern.
func MustTable(name string, specs []RuleSpec) *Table {
	t, err := NewTable(name, specs)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Tags lists every tag the table can emit.
func (t *Table) Tags() []string {
	tags := make([]string, 0, len(t.rules))
	for _, r := range t.rules {
		tags = append(tags, r.Tag)
	}
	return tags
}

// Tag returns the set of tags whose patterns match text. Empty text yields
// an empty set.
func (t *Table) Tag(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	tags := make([]string, 0)
	if text == "" {
		return tags
	}

	seen := make(map[string]bool, len(t.rules))
	for _, r := range t.rules {
		if seen[r.Tag] || !r.Matches(text) {
			continue
		}
		seen[r.Tag] = true
		tags = append(tags, r.Tag)
	}
	return tags
}

// SkillSpec is the uncompiled form of a skill rule.
type SkillSpec struct {
	Skill    string
	Boost    float64
	Patterns []string
}

// SkillRule describes which job titles a selected skill applies to and the
// multiplicative boost it earns there.
type SkillRule struct {
	Rule
	Boost float64
}

// Tagger bundles the background, credential, job domain and skill tables.
type Tagger struct {
	background  *Table
	credentials *Table
	jobDomains  *Table
	skills      []SkillRule
	skillIndex  map[string]int
}

// New builds a tagger from compiled tables and skill specs.
func New(background, credentials, jobDomains *Table, skills []SkillSpec) (*Tagger, error) {
	t := &Tagger{
		background:  background,
		credentials: credentials,
		jobDomains:  jobDomains,
		skillIndex:  make(map[string]int, len(skills)),
	}
	for _, spec := range skills {
		patterns, err := compile(spec.Patterns)
		if err != nil {
			return nil, fmt.Errorf("skill %q: %w", spec.Skill, err)
		}
		if spec.Boost < 1 {
			return nil, fmt.Errorf("skill %q: boost %v must be >= 1", spec.Skill, spec.Boost)
		}
		t.skillIndex[normalizeTag(spec.Skill)] = len(t.skills)
		t.skills = append(t.skills, SkillRule{Rule: Rule{Tag: spec.Skill, Patterns: patterns}, Boost: spec.Boost})
	}
	return t, nil
}

// Domains infers background domain tags from education/training free text.
func (t *Tagger) Domains(text string) []string { return t.background.Tag(text) }

// Credentials infers degree and certification tags from free text.
func (t *Tagger) Credentials(text string) []string { return t.credentials.Tag(text) }

// JobDomains infers a job's domain tags from its family and title.
func (t *Tagger) JobDomains(family, title string) []string {
	return t.jobDomains.Tag(family + " " + title)
}

// DomainTags lists every background domain tag the tagger knows.
func (t *Tagger) DomainTags() []string { return t.background.Tags() }

// SkillNames lists the canonical skill tags in table order.
func (t *Tagger) SkillNames() []string {
	names := make([]string, 0, len(t.skills))
	for _, s := range t.skills {
		names = append(names, s.Tag)
	}
	return names
}

// Skill looks up a skill rule by name, ignoring case.
func (t *Tagger) Skill(name string) (SkillRule, bool) {
	idx, ok := t.skillIndex[normalizeTag(name)]
	if !ok {
		return SkillRule{}, false
	}
	return t.skills[idx], true
}

// MatchSkills returns the rules of the selected skills whose keywords match
// text. Unknown and repeated skill names are ignored.
func (t *Tagger) MatchSkills(selected []string, text string) []SkillRule {
	text = strings.ToLower(text)
	matched := make([]SkillRule, 0)
	seen := make(map[string]bool, len(selected))
	for _, name := range selected {
		rule, ok := t.Skill(name)
		if !ok || seen[rule.Tag] {
			continue
		}
		seen[rule.Tag] = true
		if rule.Matches(text) {
			matched = append(matched, rule)
		}
	}
	return matched
}

// Intersects reports whether a and b share at least one tag.
func Intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, tag := range a {
		set[tag] = struct{}{}
	}
	for _, tag := range b {
		if _, ok := set[tag]; ok {
			return true
		}
	}
	return false
}

// Dedupe removes empty and repeated tags, keeping first occurrence order.
func Dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.Join(strings.Fields(tag), " "))
}
