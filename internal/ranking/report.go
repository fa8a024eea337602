package ranking

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Report is the outcome of one ranking pass.
type Report struct {
	Options Options `json:"options"`
	// Results holds every job in ranked order.
	Results []ScoredResult `json:"results"`
	// Confidence is a proxy for overall fit: the top final score.
	Confidence float64  `json:"confidence"`
	Buckets    []Bucket `json:"buckets"`
	Statuses   []Status `json:"statuses"`
}

// Bucket returns the bucket with the given name.
func (r *Report) Bucket(name string) (Bucket, bool) {
	for _, b := range r.Buckets {
		if b.Name == name {
			return b, true
		}
	}
	return Bucket{}, false
}

// Top returns up to n results in ranked order.
func (r *Report) Top(n int) []ScoredResult {
	if n <= 0 || len(r.Results) <= n {
		return r.Results
	}
	return r.Results[:n]
}

// DumpToTmpFile writes the report as indented JSON into a new temp file and
// returns its path.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "career-fit_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

var bucketTitles = map[string]string{
	BucketReadyNow:      "Ready Now",
	BucketBestPotential: "Best Potential (if you are open to learning)",
	BucketStrengths:     "Uses Your Strengths",
	BucketUnrelated:     "Outside Your Domains",
}

var emptyBucketHints = map[string]string{
	BucketReadyNow:      "No strong matches under your current education. Consider Flexible or Transform mode.",
	BucketBestPotential: "No additional roles identified beyond Ready Now.",
	BucketStrengths:     "No roles match your selected skills.",
	BucketUnrelated:     "Every role shares a domain with your background.",
}

// Render prints the report as plain text tables.
func Render(w io.Writer, report *Report) error {
	fmt.Fprintf(w, "Overall fit confidence (proxy): %.0f%%\n", report.Confidence)
	fmt.Fprintf(w, "Education mode: %s | Strict alignment: %t\n", report.Options.Mode, report.Options.StrictAlignment)

	for _, b := range report.Buckets {
		title := bucketTitles[b.Name]
		if title == "" {
			title = b.Name
		}
		fmt.Fprintf(w, "\n== %s ==\n", title)

		if !b.Enabled {
			fmt.Fprintf(w, "Hidden: %s.\n", b.Reason)
			continue
		}
		if len(b.Items) == 0 {
			fmt.Fprintln(w, emptyBucketHints[b.Name])
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tSCORE\tFIT\tTITLE\tFAMILY\tZONE\tNOTE")
		for i, item := range b.Items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
				i+1, formatScore(item), item.Category, item.Title, item.Family, item.JobZone, note(item))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if b.Total > len(b.Items) {
			fmt.Fprintf(w, "... %d more\n", b.Total-len(b.Items))
		}
	}
	return nil
}

func formatScore(e Entry) string {
	if e.ViewScore != e.FinalScore {
		return fmt.Sprintf("%.1f%% (+%.0f)", e.FinalScore, e.ViewScore-e.FinalScore)
	}
	return fmt.Sprintf("%.1f%%", e.FinalScore)
}

func note(e Entry) string {
	parts := make([]string, 0, 3)
	if e.Label != "" {
		parts = append(parts, fmt.Sprintf("%s, gap %.2f", e.Label, e.EducationGap))
	}
	if skills := e.Breakdown.Adjustment.MatchedSkills; len(skills) > 0 {
		parts = append(parts, "skills: "+strings.Join(skills, ", "))
	}
	if conflicts := e.Breakdown.Base.ExclusionConflicts; len(conflicts) > 0 {
		parts = append(parts, "involves: "+strings.Join(conflicts, ", "))
	}
	return strings.Join(parts, "; ")
}
