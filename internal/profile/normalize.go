package profile

import "strings"

// Select-box labels offered to the user. Lookups are tolerant to case,
// apostrophe style and dash style.
const (
	EducationHighSchool = "High school"
	EducationAssociate  = "Associate / Diploma"
	EducationBachelor   = "Bachelor’s"
	EducationMaster     = "Master’s"
	EducationPhD        = "PhD / Doctorate"
	EducationOther      = "Other / Prefer not to say"

	Experience0to2   = "0–2"
	Experience3to5   = "3–5"
	Experience6to10  = "6–10"
	Experience10Plus = "10+"

	LearningMastery = "Prefer mastery of what I know"
	LearningGradual = "Comfortable learning gradually"
	LearningSteep   = "Actively seek steep learning curves"

	PathExpert     = "Expert / specialist"
	PathLeadership = "Leadership / management"
	PathHybrid     = "Hybrid / undecided"

	LocationRemote   = "Fully remote"
	LocationHybrid   = "Hybrid"
	LocationOnSite   = "Mostly on-site"
	LocationAnywhere = "No preference"
)

// Defaults returned for labels outside the tables.
const (
	DefaultEducation   = 0.50
	DefaultExperience  = 0.40
	DefaultLearning    = 0.60
	DefaultLeadership  = 0.50
	DefaultFlexibility = 0.60
)

type lookup struct {
	labels   []string
	values   map[string]float64
	fallback float64
}

func newLookup(fallback float64, pairs ...any) lookup {
	l := lookup{values: make(map[string]float64, len(pairs)/2), fallback: fallback}
	for i := 0; i+1 < len(pairs); i += 2 {
		label := pairs[i].(string)
		l.labels = append(l.labels, label)
		l.values[canonicalLabel(label)] = pairs[i+1].(float64)
	}
	return l
}

func (l lookup) value(label string) float64 {
	if v, ok := l.values[canonicalLabel(label)]; ok {
		return v
	}
	return l.fallback
}

var (
	educationLevels = newLookup(DefaultEducation,
		EducationHighSchool, 0.25,
		EducationAssociate, 0.40,
		EducationBachelor, 0.55,
		EducationMaster, 0.70,
		EducationPhD, 0.90,
		EducationOther, 0.50,
	)
	experienceBuckets = newLookup(DefaultExperience,
		Experience0to2, 0.20,
		Experience3to5, 0.40,
		Experience6to10, 0.60,
		Experience10Plus, 0.80,
	)
	learningAppetites = newLookup(DefaultLearning,
		LearningMastery, 0.30,
		LearningGradual, 0.60,
		LearningSteep, 0.90,
	)
	careerPaths = newLookup(DefaultLeadership,
		PathExpert, 0.3,
		PathLeadership, 0.8,
		PathHybrid, 0.5,
	)
	workLocations = newLookup(DefaultFlexibility,
		LocationRemote, 0.9,
		LocationHybrid, 0.7,
		LocationOnSite, 0.3,
		LocationAnywhere, 0.6,
	)
)

// NormalizeEducationLevel maps the highest completed education level to [0,1].
func NormalizeEducationLevel(level string) float64 { return educationLevels.value(level) }

// NormalizeExperience maps a years-of-experience bucket to [0,1].
func NormalizeExperience(bucket string) float64 { return experienceBuckets.value(bucket) }

// NormalizeLearningAppetite maps the learning appetite choice to [0,1].
func NormalizeLearningAppetite(choice string) float64 { return learningAppetites.value(choice) }

// NormalizeCareerPath maps the career path preference to the leadership aspiration.
func NormalizeCareerPath(choice string) float64 { return careerPaths.value(choice) }

// NormalizeWorkLocation maps the work location preference to the flexibility aspiration.
func NormalizeWorkLocation(choice string) float64 { return workLocations.value(choice) }

// EducationLevels returns the education select-box labels in order.
func EducationLevels() []string { return append([]string(nil), educationLevels.labels...) }

// ExperienceBuckets returns the experience select-box labels in order.
func ExperienceBuckets() []string { return append([]string(nil), experienceBuckets.labels...) }

// LearningAppetites returns the learning appetite labels in order.
func LearningAppetites() []string { return append([]string(nil), learningAppetites.labels...) }

var labelReplacer = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"–", "-",
	"—", "-",
)

func canonicalLabel(label string) string {
	label = labelReplacer.Replace(strings.ToLower(label))
	return strings.Join(strings.Fields(label), " ")
}
