package ai

import (
	"context"
	"errors"
	"testing"
)

func TestDisabledNarrator(t *testing.T) {
	var n Narrator = Disabled{}

	narration, err := n.Narrate(context.Background(), NarrationInput{})
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if narration != nil {
		t.Fatalf("expected no narration, got %+v", narration)
	}
}
