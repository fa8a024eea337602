package profile

import "fmt"

// Exclusion names a job attribute the user may want to avoid.
type Exclusion string

const (
	Sales     Exclusion = "sales"
	Political Exclusion = "political"
	Travel    Exclusion = "travel"
)

// KnownExclusions lists the exclusion flags in display order.
var KnownExclusions = []Exclusion{Sales, Political, Travel}

// Exclusions maps flags to booleans. For a user true means "avoid", for a
// job it means "this job involves it". Absent keys read as false.
type Exclusions map[Exclusion]bool

// NewExclusions validates raw flag names.
func NewExclusions(raw map[string]bool) (Exclusions, error) {
	x := make(Exclusions, len(raw))
	for _, name := range sortedKeys(raw) {
		e := Exclusion(name)
		if !isKnownExclusion(e) {
			return nil, fmt.Errorf("exclusions.%s: %w", name, ErrUnknownDimension)
		}
		x[e] = raw[name]
	}
	return x, nil
}

// KnownExclusionsOf drops unknown flag names.
func KnownExclusionsOf(raw map[string]bool) Exclusions {
	x := make(Exclusions, len(raw))
	for name, value := range raw {
		e := Exclusion(name)
		if isKnownExclusion(e) {
			x[e] = value
		}
	}
	return x
}

// Active returns the flags set to true in display order.
func (x Exclusions) Active() []string {
	active := make([]string, 0, len(x))
	for _, e := range KnownExclusions {
		if x[e] {
			active = append(active, string(e))
		}
	}
	return active
}

func isKnownExclusion(e Exclusion) bool {
	for _, known := range KnownExclusions {
		if known == e {
			return true
		}
	}
	return false
}
