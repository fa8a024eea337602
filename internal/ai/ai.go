// Package ai describes optional narrative summaries of a ranking report.
// Narration never changes scores or ordering.
package ai

import (
	"context"
	"errors"

	"github.com/spigell/career-fit/internal/profile"
	"github.com/spigell/career-fit/internal/ranking"
)

var ErrDisabled = errors.New("ai narration is disabled")

// NarrationInput is what a narrator may see about one ranking pass.
type NarrationInput struct {
	Profile              *profile.UserProfile
	Background           *profile.Background
	Options              ranking.Options
	TimeInvestmentMonths int
	// Results are the top results in ranked order.
	Results []ranking.ScoredResult
}

// Highlight is a comment about one recommended job.
type Highlight struct {
	JobID string `json:"job_id"`
	Note  string `json:"note"`
}

// Narration is a plain language explanation of the top results.
type Narration struct {
	Summary    string      `json:"summary"`
	Highlights []Highlight `json:"highlights"`
	NextSteps  []string    `json:"next_steps"`
	Raw        string      `json:"-"`
}

type Narrator interface {
	Narrate(ctx context.Context, in NarrationInput) (*Narration, error)
}

// Disabled is the narrator used when AI is switched off.
type Disabled struct{}

func (Disabled) Narrate(context.Context, NarrationInput) (*Narration, error) {
	return nil, ErrDisabled
}
