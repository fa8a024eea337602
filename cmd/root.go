package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-fit/internal/adjustment"
	"github.com/spigell/career-fit/internal/catalog"
	"github.com/spigell/career-fit/internal/logger"
	"github.com/spigell/career-fit/internal/ranking"
)

const (
	app       = "career-fit"
	envPrefix = "CAREER_FIT"
)

type Config struct {
	Catalog  *CatalogConfig  `mapstructure:"catalog"`
	Matching *MatchingConfig `mapstructure:"matching"`
	Profile  map[string]any  `mapstructure:"profile"`
	AI       *AIConfig       `mapstructure:"ai"`
	Server   *ServerConfig   `mapstructure:"server"`
}

type CatalogConfig struct {
	Path     string `mapstructure:"path"`
	Validate bool   `mapstructure:"validate"`
}

type MatchingConfig struct {
	EducationMode        string  `mapstructure:"education-mode"`
	StrictAlignment      bool    `mapstructure:"strict-alignment"`
	PreviewSize          int     `mapstructure:"preview-size"`
	UnrelatedPreviewSize int     `mapstructure:"unrelated-preview-size"`
	StrengthsBonus       float64 `mapstructure:"strengths-bonus"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-fit ranks occupations against a personality, aspiration and capability profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-fit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("catalog", "", "path to the job catalog (.json, .yaml or .db)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))
}

func setDefaults() {
	viper.SetDefault("catalog.path", "jobs.json")
	viper.SetDefault("catalog.validate", true)
	viper.SetDefault("matching.education-mode", string(adjustment.Flexible))
	viper.SetDefault("matching.strict-alignment", false)
	viper.SetDefault("matching.preview-size", ranking.DefaultPreviewSize)
	viper.SetDefault("matching.unrelated-preview-size", ranking.DefaultUnrelatedPreviewSize)
	viper.SetDefault("matching.strengths-bonus", ranking.DefaultStrengthsBonus)
	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.max-log-length", 200)
	viper.SetDefault("server.listen", ":8080")
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		// An explicit config file must be readable.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Catalog == nil {
		config.Catalog = &CatalogConfig{}
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// rankingOptions maps the matching section onto engine options.
func (c *Config) rankingOptions() (ranking.Options, error) {
	m := c.Matching
	opts := ranking.Options{
		Options: adjustment.Options{
			Mode:            adjustment.Mode(m.EducationMode),
			StrictAlignment: m.StrictAlignment,
		},
		PreviewSize:          m.PreviewSize,
		UnrelatedPreviewSize: m.UnrelatedPreviewSize,
		StrengthsBonus:       m.StrengthsBonus,
	}
	return opts.Normalize()
}

func openCatalog(c *Config, log *zap.Logger) (*catalog.Cache, error) {
	src, err := catalog.Open(c.Catalog.Path, c.Catalog.Validate)
	if err != nil {
		return nil, err
	}
	return catalog.NewCache(src, log), nil
}
