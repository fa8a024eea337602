package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-fit/internal/ai"
	"github.com/spigell/career-fit/internal/ai/gemini"
	"github.com/spigell/career-fit/internal/profile"
	"github.com/spigell/career-fit/internal/ranking"
	"github.com/spigell/career-fit/internal/secrets"
	"github.com/spigell/career-fit/internal/tagging"
)

const (
	PromptShowResults   = "Show results"
	PromptDumpToFile    = "Dump results to file"
	PromptExplainWithAI = "Explain with AI"
	PromptExit          = "Exit"

	PromptAcceptDomains = "Accept"
	PromptToggleDomain  = "Toggle a domain"
	PromptClearDomains  = "Clear domains"
	PromptBack          = "back"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Rank the catalog against the profile from the config file",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation, print the report and exit")
	runCmd.Flags().Bool("dump", false, "dump the report to a temp file")
	runCmd.Flags().String("education-mode", "", "education mode: Strict, Flexible or Transform")
	runCmd.Flags().Bool("strict-alignment", false, "penalize roles outside your background domains")

	viper.BindPFlag("matching.education-mode", runCmd.Flags().Lookup("education-mode"))
	viper.BindPFlag("matching.strict-alignment", runCmd.Flags().Lookup("strict-alignment"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the career-fit", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	opts, err := config.rankingOptions()
	if err != nil {
		logger.Fatal("invalid matching configuration", zap.Error(err))
	}

	answers, err := profile.DecodeAnswers(config.Profile)
	if err != nil {
		logger.Fatal("invalid profile section", zap.Error(err))
	}

	engine := ranking.NewEngine(tagging.Default(), logger)

	user, bg, err := profile.Build(answers, engine.Tagger())
	if err != nil {
		logger.Fatal("building a profile", zap.Error(err))
	}

	cache, err := openCatalog(config, logger)
	if err != nil {
		logger.Fatal("opening the catalog", zap.Error(err))
	}

	cat, err := cache.Get(ctx)
	if err != nil {
		logger.Fatal("loading the catalog", zap.Error(err))
	}

	autoApprove := cmd.Flag("auto-approve").Value.String() == "true"

	logger.Info("background understood",
		zap.Strings("domains", bg.Domains),
		zap.Strings("credentials", bg.Credentials),
		zap.Bool("inferred", bg.Inferred),
	)

	if !autoApprove {
		domains, err := confirmDomains(user.Domains, engine.Tagger().DomainTags())
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		user = user.WithDomains(domains)
	}

	report, err := engine.Rank(ctx, user, cat, opts)
	if err != nil {
		logger.Fatal("ranking failed", zap.Error(err))
	}

	if cmd.Flag("dump").Value.String() == "true" {
		if err := dump(report, logger); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	if autoApprove {
		if err := ranking.Render(os.Stdout, report); err != nil {
			logger.Fatal("rendering the report", zap.Error(err))
		}
		return
	}

	narrator := prepareNarrator(ctx, config.AI, logger)
	in := ai.NarrationInput{
		Profile:              user,
		Background:           bg,
		Options:              report.Options,
		TimeInvestmentMonths: answers.TimeInvestmentMonths,
		Results:              report.Top(opts.PreviewSize),
	}

	items := []string{PromptShowResults, PromptDumpToFile}
	if _, disabled := narrator.(ai.Disabled); !disabled {
		items = append(items, PromptExplainWithAI)
	}
	prompt := promptui.Select{
		Label: "What next?",
		Items: append(items, PromptExit),
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, logger, report, narrator, in); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, logger *zap.Logger, report *ranking.Report, narrator ai.Narrator, in ai.NarrationInput) error {
	switch action {
	case PromptShowResults:
		return ranking.Render(os.Stdout, report)
	case PromptDumpToFile:
		return dump(report, logger)
	case PromptExplainWithAI:
		narration, err := narrator.Narrate(ctx, in)
		if err != nil {
			// A failed narration leaves the ranking usable.
			logger.Warn("ai narration failed", zap.Error(err))
			return nil
		}
		printNarration(narration)
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func dump(report *ranking.Report, logger *zap.Logger) error {
	filename, err := report.DumpToTmpFile()
	if err != nil {
		return fmt.Errorf("dump results to file: %w", err)
	}
	logger.Info("dumping result to file", zap.String("filename", filename))
	return nil
}

func printNarration(n *ai.Narration) {
	fmt.Printf("\n%s\n", n.Summary)
	for _, h := range n.Highlights {
		fmt.Printf("  * %s: %s\n", h.JobID, h.Note)
	}
	if len(n.NextSteps) > 0 {
		fmt.Println("\nNext steps:")
		for i, step := range n.NextSteps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}
}

// confirmDomains lets the user accept, toggle or clear the background
// domains before ranking.
func confirmDomains(current, known []string) ([]string, error) {
	domains := slices.Clone(current)
	for {
		label := "none"
		if len(domains) > 0 {
			label = strings.Join(domains, ", ")
		}

		menu := promptui.Select{
			Label: fmt.Sprintf("Your background domains: %s", label),
			Items: []string{PromptAcceptDomains, PromptToggleDomain, PromptClearDomains},
		}
		_, choice, err := menu.Run()
		if err != nil {
			return nil, err
		}

		switch choice {
		case PromptAcceptDomains:
			return domains, nil
		case PromptClearDomains:
			domains = domains[:0]
		case PromptToggleDomain:
			domain, err := pickDomain(domains, known)
			if err != nil {
				return nil, err
			}
			domains = toggle(domains, domain)
		}
	}
}

func pickDomain(selected, known []string) (string, error) {
	items := make([]string, 0, len(known)+1)
	for _, d := range known {
		mark := "[ ]"
		if slices.Contains(selected, d) {
			mark = "[x]"
		}
		items = append(items, mark+" "+d)
	}

	picker := promptui.Select{
		Label: "Choose a domain and press ENTER",
		Items: append(items, PromptBack),
		Size:  len(items) + 1,
	}
	idx, choice, err := picker.Run()
	if err != nil {
		return "", err
	}
	if choice == PromptBack {
		return "", nil
	}
	return known[idx], nil
}

func toggle(domains []string, domain string) []string {
	if domain == "" {
		return domains
	}
	if idx := slices.Index(domains, domain); idx >= 0 {
		return slices.Delete(domains, idx, idx+1)
	}
	return append(domains, domain)
}

// prepareNarrator falls back to a disabled narrator so that ranking works
// without AI.
func prepareNarrator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) ai.Narrator {
	if cfg == nil || !cfg.Enabled {
		return ai.Disabled{}
	}

	narrator, err := newNarrator(ctx, cfg, logger)
	if err != nil {
		logger.Warn("skipping AI narration", zap.Error(err))
		return ai.Disabled{}
	}
	return narrator
}

func newNarrator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Narrator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (or set ai.gemini.api-key-file / GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:     apiKey,
		Model:      cfg.Gemini.Model,
		MaxRetries: cfg.Gemini.MaxRetries,
	}, logger)
	if err != nil {
		return nil, err
	}

	return gemini.NewNarrator(generator, logger, cfg.Gemini.MaxLogLength), nil
}
