package profile

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrOutOfRange       = errors.New("value out of range [0,1]")
)

// Dimension names a single axis of a profile or job vector.
type Dimension string

const (
	Independence Dimension = "independence"
	Ambiguity    Dimension = "ambiguity"
	Structure    Dimension = "structure"
	Cognitive    Dimension = "cognitive"
	Pace         Dimension = "pace"

	Income      Dimension = "income"
	Purpose     Dimension = "purpose"
	Leadership  Dimension = "leadership"
	Flexibility Dimension = "flexibility"
	Balance     Dimension = "balance"

	Education  Dimension = "education"
	Experience Dimension = "experience"
	Learning   Dimension = "learning"
)

// Kind is a closed set of dimensions that may appear together in one vector.
type Kind struct {
	Name       string
	Dimensions []Dimension
}

var (
	PersonalityKind = Kind{Name: "personality", Dimensions: []Dimension{Independence, Ambiguity, Structure, Cognitive, Pace}}
	AspirationsKind = Kind{Name: "aspirations", Dimensions: []Dimension{Income, Purpose, Leadership, Flexibility, Balance}}
	CapabilityKind  = Kind{Name: "capability", Dimensions: []Dimension{Education, Experience, Learning}}
)

// Has reports whether d belongs to the kind.
func (k Kind) Has(d Dimension) bool {
	for _, known := range k.Dimensions {
		if known == d {
			return true
		}
	}
	return false
}

// Vector maps dimensions to values in [0,1]. A missing key means the
// dimension is not stated.
type Vector map[Dimension]float64

// NewVector validates raw against kind. Unknown names and values outside
// [0,1] are rejected; every problem is reported.
func NewVector(kind Kind, raw map[string]float64) (Vector, error) {
	v := make(Vector, len(raw))
	var errs []error

	for _, name := range sortedKeys(raw) {
		value := raw[name]
		d := Dimension(name)
		if !kind.Has(d) {
			errs = append(errs, fmt.Errorf("%s.%s: %w", kind.Name, name, ErrUnknownDimension))
			continue
		}
		if value < 0 || value > 1 {
			errs = append(errs, fmt.Errorf("%s.%s=%v: %w", kind.Name, name, value, ErrOutOfRange))
			continue
		}
		v[d] = value
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return v, nil
}

// KnownVector keeps only the dimensions of kind and clamps values into
// [0,1]. It is used for externally supplied job records where unknown keys
// carry no meaning.
func KnownVector(kind Kind, raw map[string]float64) Vector {
	v := make(Vector, len(raw))
	for name, value := range raw {
		d := Dimension(name)
		if !kind.Has(d) {
			continue
		}
		v[d] = Clamp01(value)
	}
	return v
}

// Get returns the value for d and whether it is present.
func (v Vector) Get(d Dimension) (float64, bool) {
	value, ok := v[d]
	return value, ok
}

// Value returns the value for d, or 0 when absent.
func (v Vector) Value(d Dimension) float64 {
	return v[d]
}

// Dimensions returns the stated dimensions in a stable order so that sums
// over a vector do not depend on map iteration.
func (v Vector) Dimensions() []Dimension {
	dims := make([]Dimension, 0, len(v))
	for d := range v {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
	return dims
}

// Clamp01 bounds x to [0,1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
