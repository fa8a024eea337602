package tagging

import "sync"

// Canonical domain tags shared by the background and job domain tables.
const (
	DomainConstruction = "Construction / Infrastructure"
	DomainEngineering  = "Engineering"
	DomainIT           = "Information Technology"
	DomainData         = "Data / Analytics"
	DomainBusiness     = "Business / Management"
	DomainFinance      = "Finance / Accounting"
	DomainHealthcare   = "Healthcare"
	DomainEducation    = "Education / Training"
	DomainLawPolicy    = "Law / Policy"
	DomainDesign       = "Design / Creative"
	DomainOperations   = "Operations / Supply Chain"
	DomainScience      = "Science / Research"
	DomainSales        = "Sales / Marketing"
)

// Skill cluster tags offered for selection.
const (
	SkillAnalysis      = "Analysis / Data"
	SkillStrategy      = "Strategy / Planning"
	SkillTechnology    = "Technology / Digital"
	SkillDesign        = "Design / Creative"
	SkillOperations    = "Operations / Delivery"
	SkillFinance       = "Finance / Economics"
	SkillPolicy        = "Policy / Research"
	SkillPeople        = "People / Facilitation"
	SkillProjectManage = "Project Management"
)

// BackgroundSpecs infer domains from education and training free text.
var BackgroundSpecs = []RuleSpec{
	{Tag: DomainConstruction, Patterns: []string{`\bcivil\b`, `construct`, `infrastructure`, `structural`, `survey(ing|or)`, `\bhvac\b`, `plumb`, `electrician`, `carpent`, `architectur`}},
	{Tag: DomainEngineering, Patterns: []string{`engineer`, `\bb\.?eng\b`, `\bm\.?eng\b`, `mechanical`, `electrical`, `mechatronic`, `\bhvac\b`}},
	{Tag: DomainIT, Patterns: []string{`computer science`, `software`, `information technology`, `\bict\b`, `programming`, `\bccna\b`, `aws certified`, `cyber ?security`, `web develop`}},
	{Tag: DomainData, Patterns: []string{`data scien`, `data analy`, `statistic`, `machine learning`, `analytics`, `econometric`}},
	{Tag: DomainBusiness, Patterns: []string{`\bmba\b`, `\bbba\b`, `business`, `management`, `commerce`, `entrepreneur`}},
	{Tag: DomainFinance, Patterns: []string{`financ`, `accounting`, `accountan`, `\bcfa\b`, `\bacca\b`, `\bcpa\b`, `economics`, `banking`, `actuar`}},
	{Tag: DomainHealthcare, Patterns: []string{`nurs`, `medic`, `pharma`, `health`, `clinical`, `physiotherap`, `dental`}},
	{Tag: DomainEducation, Patterns: []string{`teach`, `pedagog`, `\bpgce\b`, `\bb\.?ed\b`, `early childhood`}},
	{Tag: DomainLawPolicy, Patterns: []string{`\bllb\b`, `\blaw\b`, `legal`, `paralegal`, `public policy`, `political science`, `public administration`, `international relations`}},
	{Tag: DomainDesign, Patterns: []string{`design`, `\bux\b`, `\bui\b`, `fine art`, `animation`, `fashion`}},
	{Tag: DomainOperations, Patterns: []string{`\blean\b`, `six sigma`, `logistic`, `supply chain`, `procurement`, `operations`, `\bitil\b`}},
	{Tag: DomainScience, Patterns: []string{`physics`, `chemistry`, `biolog`, `research`, `laborator`, `environmental science`}},
	{Tag: DomainSales, Patterns: []string{`marketing`, `\bsales\b`, `advertising`, `public relations`, `\bretail\b`}},
}

// CredentialSpecs recognise degrees and certifications.
var CredentialSpecs = []RuleSpec{
	{Tag: "PhD", Patterns: []string{`\bph\.?d\b`, `doctorate`, `doctoral`}},
	{Tag: "Master's", Patterns: []string{`\bm\.?sc\b`, `\bmba\b`, `\bma\b`, `master`, `\bm\.?eng\b`, `\bllm\b`}},
	{Tag: "Bachelor's", Patterns: []string{`\bb\.?sc\b`, `\bba\b`, `\bb\.?eng\b`, `bachelor`, `\bbba\b`, `\bllb\b`, `\bb\.?ed\b`, `\bbcom\b`}},
	{Tag: "Associate / Diploma", Patterns: []string{`associate degree`, `diploma`, `\bhnd\b`, `\bhnc\b`}},
	{Tag: "PMP", Patterns: []string{`\bpmp\b`}},
	{Tag: "PRINCE2", Patterns: []string{`prince ?2`}},
	{Tag: "Lean Six Sigma", Patterns: []string{`six sigma`, `\blean\b`}},
	{Tag: "CFA", Patterns: []string{`\bcfa\b`}},
	{Tag: "ACCA / CPA", Patterns: []string{`\bacca\b`, `\bcpa\b`}},
	{Tag: "Cloud Certification", Patterns: []string{`aws certified`, `azure (fundamentals|administrator|certified)`, `google cloud certified`}},
	{Tag: "Apprenticeship", Patterns: []string{`apprentic`}},
	{Tag: "Bootcamp", Patterns: []string{`bootcamp`, `boot camp`}},
	{Tag: "Teaching Certificate", Patterns: []string{`\bpgce\b`, `teaching (certificate|licen[cs]e)`}},
}

// JobDomainSpecs infer domains from a job's family and title.
var JobDomainSpecs = []RuleSpec{
	{Tag: DomainConstruction, Patterns: []string{`construct`, `\bcivil\b`, `building`, `infrastructure`, `survey(or|ing)`, `\bhvac\b`, `electrician`, `plumb`, `carpent`, `architectur`}},
	{Tag: DomainEngineering, Patterns: []string{`engineer`, `drafter`, `technician`}},
	{Tag: DomainIT, Patterns: []string{`software`, `developer`, `programmer`, `computer`, `network`, `information technology`, `\bit\b`, `systems admin`, `cyber`, `\bweb\b`, `devops`, `database`}},
	{Tag: DomainData, Patterns: []string{`\bdata\b`, `analyst`, `statistic`, `machine learning`, `analytics`}},
	{Tag: DomainBusiness, Patterns: []string{`manager`, `management`, `business`, `executive`, `consult`, `administrat`, `project`}},
	{Tag: DomainFinance, Patterns: []string{`financ`, `account`, `audit`, `budget`, `\btax`, `actuar`, `\bbank`, `econom`, `credit`, `invest`}},
	{Tag: DomainHealthcare, Patterns: []string{`health`, `nurs`, `medic`, `clinic`, `pharm`, `therap`, `dental`, `physician`}},
	{Tag: DomainEducation, Patterns: []string{`teach`, `education`, `instruct`, `trainer`, `tutor`, `curriculum`}},
	{Tag: DomainLawPolicy, Patterns: []string{`legal`, `\blaw\b`, `lawyer`, `paralegal`, `policy`, `government`, `public administration`, `compliance`, `political`}},
	{Tag: DomainDesign, Patterns: []string{`design`, `creative`, `artist`, `\bux\b`, `graphic`, `\barts?\b`}},
	{Tag: DomainOperations, Patterns: []string{`operations`, `logistic`, `supply chain`, `procurement`, `quality`, `production`, `warehouse`, `purchas`}},
	{Tag: DomainScience, Patterns: []string{`scien`, `research`, `laborator`, `chemist`, `biolog`, `physicist`}},
	{Tag: DomainSales, Patterns: []string{`\bsales\b`, `marketing`, `advertis`, `public relations`, `retail`}},
}

// SkillSpecs map selectable skills to job title keywords and their boost.
var SkillSpecs = []SkillSpec{
	{Skill: SkillAnalysis, Boost: 1.06, Patterns: []string{`analy`, `\bdata\b`, `statistic`, `research`}},
	{Skill: SkillStrategy, Boost: 1.05, Patterns: []string{`strateg`, `planner`, `planning`, `consult`}},
	{Skill: SkillTechnology, Boost: 1.06, Patterns: []string{`software`, `developer`, `computer`, `digital`, `\bweb\b`, `systems`, `network`}},
	{Skill: SkillDesign, Boost: 1.05, Patterns: []string{`design`, `creative`, `artist`, `graphic`, `\bux\b`}},
	{Skill: SkillOperations, Boost: 1.05, Patterns: []string{`operations`, `logistic`, `supply chain`, `coordinator`, `delivery`, `production`}},
	{Skill: SkillFinance, Boost: 1.06, Patterns: []string{`financ`, `econom`, `account`, `budget`, `audit`}},
	{Skill: SkillPolicy, Boost: 1.05, Patterns: []string{`policy`, `research`, `regulat`, `government`}},
	{Skill: SkillPeople, Boost: 1.04, Patterns: []string{`human resources`, `training`, `trainer`, `recruit`, `counsel`, `facilitat`, `teacher`}},
	{Skill: SkillProjectManage, Boost: 1.08, Patterns: []string{`project`, `program(me)? manager`, `scrum`, `delivery manager`, `\bpmo\b`}},
}

var (
	defaultOnce   sync.Once
	defaultTagger *Tagger
)

// Default returns the tagger built from the package tables. It is shared
// and safe for concurrent use.
func Default() *Tagger {
	defaultOnce.Do(func() {
		t, err := New(
			MustTable("background", BackgroundSpecs),
			MustTable("credentials", CredentialSpecs),
			MustTable("job_domains", JobDomainSpecs),
			SkillSpecs,
		)
		if err != nil {
			panic(err)
		}
		defaultTagger = t
	})
	return defaultTagger
}
