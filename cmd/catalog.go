package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-fit/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the job catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [source] [database]",
	Short: "Import a JSON or YAML catalog into a SQLite database",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()

		novalidate, _ := cmd.Flags().GetBool("no-validate")
		count, err := importCatalog(cmd.Context(), args[0], args[1], !novalidate)
		if err != nil {
			logger.Fatal("importing the catalog", zap.Error(err))
		}

		logger.Info("catalog imported",
			zap.String("source", args[0]),
			zap.String("database", args[1]),
			zap.Int("jobs", count),
		)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd)

	catalogImportCmd.Flags().Bool("no-validate", false, "skip the JSON schema check of the source")
}

func importCatalog(ctx context.Context, source, database string, validate bool) (int, error) {
	switch strings.ToLower(filepath.Ext(database)) {
	case ".db", ".sqlite", ".sqlite3":
	default:
		return 0, fmt.Errorf("%w: database %q must end with .db, .sqlite or .sqlite3", catalog.ErrUnsupportedFormat, database)
	}

	src, err := catalog.Open(source, validate)
	if err != nil {
		return 0, err
	}
	if _, ok := src.(*catalog.FileSource); !ok {
		return 0, fmt.Errorf("%w: source %q must be a JSON or YAML file", catalog.ErrUnsupportedFormat, source)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	jobs, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}

	// New rejects empty catalogs and duplicate ids before anything is written.
	cat, err := catalog.New(jobs)
	if err != nil {
		return 0, err
	}

	if err := catalog.WriteSQLite(ctx, database, cat.Jobs()); err != nil {
		return 0, err
	}
	return cat.Len(), nil
}
