package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/career-fit/internal/tagging"
)

var tagCmd = &cobra.Command{
	Use:   "tag [text]",
	Short: "Print the domain, credential and skill tags found in free text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := cmd.Flags().GetBool("job")
		if err != nil {
			return err
		}
		return printTags(cmd.OutOrStdout(), tagging.Default(), strings.Join(args, " "), job)
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)

	tagCmd.Flags().Bool("job", false, "treat the text as a job family and title")
}

func printTags(w io.Writer, t *tagging.Tagger, text string, job bool) error {
	if job {
		_, err := fmt.Fprintf(w, "Job domains: %s\n", list(t.JobDomains("", text)))
		return err
	}

	skills := make([]string, 0)
	for _, rule := range t.MatchSkills(t.SkillNames(), text) {
		skills = append(skills, rule.Tag)
	}

	_, err := fmt.Fprintf(w, "Domains: %s\nCredentials: %s\nSkill keywords: %s\n",
		list(t.Domains(text)), list(t.Credentials(text)), list(skills))
	return err
}

func list(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}
