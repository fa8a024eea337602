package profile

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeAnswers decodes a loosely typed survey form, as it arrives from
// config files or JSON bodies, into Answers. Unknown keys are rejected.
func DecodeAnswers(raw map[string]any) (Answers, error) {
	var a Answers
	if len(raw) == 0 {
		return a, nil
	}

	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           &a,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return a, err
	}
	if err := decoder.Decode(raw); err != nil {
		return a, fmt.Errorf("decoding profile answers: %w", err)
	}
	return a, nil
}
