package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/career-fit/internal/ai"
	"github.com/spigell/career-fit/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

//go:embed system.md
var systemInstruction string

const defaultMaxLogLength = 200

// Narrator explains ranking results through Gemini.
type Narrator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Narrator = (*Narrator)(nil)

func NewNarrator(generator contentGenerator, log *zap.Logger, maxLogLength int) *Narrator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Narrator{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

type profileSummary struct {
	Personality          map[string]float64 `json:"personality"`
	Aspirations          map[string]float64 `json:"aspirations"`
	Capability           map[string]float64 `json:"capability"`
	Avoids               []string           `json:"avoids"`
	Domains              []string           `json:"domains"`
	Skills               []string           `json:"skills"`
	Credentials          []string           `json:"credentials,omitempty"`
	EducationText        string             `json:"education_text,omitempty"`
	EducationMode        string             `json:"education_mode"`
	StrictAlignment      bool               `json:"strict_alignment"`
	TimeInvestmentMonths int                `json:"time_investment_months"`
}

type resultSummary struct {
	JobID              string   `json:"job_id"`
	Title              string   `json:"title"`
	Family             string   `json:"job_family"`
	FinalScore         float64  `json:"final_score"`
	Category           string   `json:"category"`
	EducationGap       float64  `json:"education_gap"`
	Label              string   `json:"label,omitempty"`
	MatchedSkills      []string `json:"matched_skills,omitempty"`
	ExclusionConflicts []string `json:"exclusion_conflicts,omitempty"`
}

func (n *Narrator) Narrate(ctx context.Context, in ai.NarrationInput) (*ai.Narration, error) {
	if in.Profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if len(in.Results) == 0 {
		return nil, fmt.Errorf("at least one result is required")
	}

	profileJSON, err := json.MarshalIndent(summarizeProfile(in), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile payload: %w", err)
	}

	resultsJSON, err := json.MarshalIndent(summarizeResults(in), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal results payload: %w", err)
	}

	prompt := buildPrompt(string(profileJSON), string(resultsJSON))

	n.logger.Debug("gemini generate content request",
		zap.Int("results", len(in.Results)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, n.maxLogLen)),
	)

	raw, err := n.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	n.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, n.maxLogLen)),
	)

	narration, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	narration.Raw = raw
	return narration, nil
}

func summarizeProfile(in ai.NarrationInput) profileSummary {
	p := in.Profile
	s := profileSummary{
		Personality:          make(map[string]float64, len(p.Personality)),
		Aspirations:          make(map[string]float64, len(p.Aspirations)),
		Capability:           make(map[string]float64, len(p.Capability)),
		Avoids:               p.Exclusions.Active(),
		Domains:              p.Domains,
		Skills:               p.Skills,
		EducationMode:        string(in.Options.Mode),
		StrictAlignment:      in.Options.StrictAlignment,
		TimeInvestmentMonths: in.TimeInvestmentMonths,
	}
	for d, v := range p.Personality {
		s.Personality[string(d)] = v
	}
	for d, v := range p.Aspirations {
		s.Aspirations[string(d)] = v
	}
	for d, v := range p.Capability {
		s.Capability[string(d)] = v
	}
	if in.Background != nil {
		s.Credentials = in.Background.Credentials
		s.EducationText = in.Background.Text
	}
	return s
}

func summarizeResults(in ai.NarrationInput) []resultSummary {
	out := make([]resultSummary, 0, len(in.Results))
	for _, r := range in.Results {
		out = append(out, resultSummary{
			JobID:              r.JobID,
			Title:              r.Title,
			Family:             r.Family,
			FinalScore:         r.FinalScore,
			Category:           r.Category,
			EducationGap:       r.EducationGap,
			Label:              r.Label,
			MatchedSkills:      r.Breakdown.Adjustment.MatchedSkills,
			ExclusionConflicts: r.Breakdown.Base.ExclusionConflicts,
		})
	}
	return out
}

func buildPrompt(profileJSON, resultsJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Profile:\n{{PROFILE_JSON}}\n\nResults:\n{{RESULTS_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{PROFILE_JSON}}", profileJSON)
	prompt = strings.ReplaceAll(prompt, "{{RESULTS_JSON}}", resultsJSON)
	return prompt
}

func parseResponse(raw string) (*ai.Narration, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	narration := &ai.Narration{
		Summary:    coerceString(data["summary"]),
		Highlights: []ai.Highlight{},
		NextSteps:  []string{},
	}

	if items, ok := data["highlights"].([]any); ok {
		for _, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			h := ai.Highlight{JobID: coerceString(entry["job_id"]), Note: coerceString(entry["note"])}
			if h.Note == "" {
				continue
			}
			narration.Highlights = append(narration.Highlights, h)
		}
	}

	if items, ok := data["next_steps"].([]any); ok {
		for _, item := range items {
			if step := coerceString(item); step != "" {
				narration.NextSteps = append(narration.NextSteps, step)
			}
		}
	}

	if narration.Summary == "" {
		return nil, fmt.Errorf("parse gemini response: summary is missing")
	}
	return narration, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
