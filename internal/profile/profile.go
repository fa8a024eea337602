// Package profile holds the user side of a match: normalized vectors,
// exclusions and background tags, and the survey answers they come from.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// UserProfile is the validated input of a scoring pass.
type UserProfile struct {
	Personality Vector     `json:"personality"`
	Aspirations Vector     `json:"aspirations"`
	Capability  Vector     `json:"capability"`
	Exclusions  Exclusions `json:"exclusions"`
	Domains     []string   `json:"domains"`
	Skills      []string   `json:"skills"`
}

// Background is what the tagger understood from the free-text education entry.
type Background struct {
	Text        string   `json:"text,omitempty"`
	Domains     []string `json:"domains"`
	Credentials []string `json:"credentials"`
	// Inferred is true when Domains came from the text rather than an explicit list.
	Inferred bool `json:"inferred"`
}

// Tagger infers tags from free text.
type Tagger interface {
	Domains(text string) []string
	Credentials(text string) []string
}

// Answers is the raw survey form as filled by the user.
type Answers struct {
	Personality          map[string]float64 `mapstructure:"personality" json:"personality,omitempty"`
	Aspirations          map[string]float64 `mapstructure:"aspirations" json:"aspirations,omitempty"`
	CareerPath           string             `mapstructure:"career-path" json:"career-path,omitempty"`
	WorkLocation         string             `mapstructure:"work-location" json:"work-location,omitempty"`
	EducationLevel       string             `mapstructure:"education-level" json:"education-level,omitempty"`
	Experience           string             `mapstructure:"experience" json:"experience,omitempty"`
	LearningAppetite     string             `mapstructure:"learning-appetite" json:"learning-appetite,omitempty"`
	EducationText        string             `mapstructure:"education-text" json:"education-text,omitempty"`
	Domains              []string           `mapstructure:"domains" json:"domains,omitempty"`
	Skills               []string           `mapstructure:"skills" json:"skills,omitempty"`
	Avoid                map[string]bool    `mapstructure:"avoid" json:"avoid,omitempty"`
	TimeInvestmentMonths int                `mapstructure:"time-investment-months" json:"time-investment-months,omitempty"`
}

// Slider defaults used when an answer leaves a dimension out.
var (
	DefaultPersonality = map[string]float64{
		string(Independence): 0.6,
		string(Ambiguity):    0.6,
		string(Structure):    0.6,
		string(Cognitive):    0.7,
		string(Pace):         0.6,
	}
	DefaultAspirations = map[string]float64{
		string(Income):  0.7,
		string(Purpose): 0.7,
		string(Balance): 0.6,
	}
)

const maxTimeInvestmentMonths = 24

// Build normalizes answers into a profile. Explicit domains replace the
// inferred ones; the edit workflow belongs to the caller.
func Build(a Answers, tagger Tagger) (*UserProfile, *Background, error) {
	var errs []error

	personality, err := NewVector(PersonalityKind, withDefaults(a.Personality, DefaultPersonality))
	if err != nil {
		errs = append(errs, err)
	}

	aspirations := withDefaults(a.Aspirations, DefaultAspirations)
	if _, ok := a.Aspirations[string(Leadership)]; !ok {
		aspirations[string(Leadership)] = NormalizeCareerPath(a.CareerPath)
	}
	if _, ok := a.Aspirations[string(Flexibility)]; !ok {
		aspirations[string(Flexibility)] = NormalizeWorkLocation(a.WorkLocation)
	}
	aspirationVector, err := NewVector(AspirationsKind, aspirations)
	if err != nil {
		errs = append(errs, err)
	}

	exclusions, err := NewExclusions(a.Avoid)
	if err != nil {
		errs = append(errs, err)
	}

	if a.TimeInvestmentMonths < 0 || a.TimeInvestmentMonths > maxTimeInvestmentMonths {
		errs = append(errs, fmt.Errorf("time-investment-months must be within 0..%d, got %d", maxTimeInvestmentMonths, a.TimeInvestmentMonths))
	}

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}

	capability := Vector{
		Education:  NormalizeEducationLevel(a.EducationLevel),
		Experience: NormalizeExperience(a.Experience),
		Learning:   NormalizeLearningAppetite(a.LearningAppetite),
	}

	bg := &Background{
		Text:        strings.TrimSpace(a.EducationText),
		Domains:     []string{},
		Credentials: []string{},
	}
	if tagger != nil && bg.Text != "" {
		bg.Domains = tagger.Domains(bg.Text)
		bg.Credentials = tagger.Credentials(bg.Text)
		bg.Inferred = true
	}

	domains := bg.Domains
	if explicit := cleanTags(a.Domains); len(explicit) > 0 {
		domains = explicit
		bg.Domains = explicit
		bg.Inferred = false
	}

	return &UserProfile{
		Personality: personality,
		Aspirations: aspirationVector,
		Capability:  capability,
		Exclusions:  exclusions,
		Domains:     append([]string{}, domains...),
		Skills:      cleanTags(a.Skills),
	}, bg, nil
}

// WithDomains returns a copy of p with its domain set replaced.
func (p *UserProfile) WithDomains(domains []string) *UserProfile {
	cp := *p
	cp.Domains = cleanTags(domains)
	return &cp
}

// HasDomains reports whether the user declared at least one domain tag.
func (p *UserProfile) HasDomains() bool {
	return p != nil && len(p.Domains) > 0
}

func withDefaults(values, defaults map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(defaults)+len(values))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range values {
		out[k] = v
	}
	return out
}

func cleanTags(tags []string) []string {
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
