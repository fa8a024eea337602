package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.schema.json
var schemaJSON string

// Source produces the jobs of a catalog.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Job, error)
}

// FileSource reads a JSON array or YAML list of job records.
type FileSource struct {
	Path     string
	Validate bool
}

// Open picks a source by file extension.
func Open(path string, validate bool) (Source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("catalog path is required")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return &FileSource{Path: path, Validate: validate}, nil
	case ".db", ".sqlite", ".sqlite3":
		return &SQLiteSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) Load(_ context.Context) ([]Job, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return decodeYAML(data, s.Validate)
	default:
		return decodeJSON(data, s.Validate)
	}
}

func decodeJSON(data []byte, validate bool) ([]Job, error) {
	if validate {
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		if err := validateDocument(doc); err != nil {
			return nil, err
		}
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return toJobs(records), nil
}

func decodeYAML(data []byte, validate bool) ([]Job, error) {
	if validate {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		if err := validateDocument(doc); err != nil {
			return nil, err
		}
	}

	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return toJobs(records), nil
}

// validateDocument checks a decoded catalog against the embedded schema.
func validateDocument(doc any) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: schema validation: %w", ErrInvalidCatalog, err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
	}

	return nil
}

func toJobs(records []record) []Job {
	jobs := make([]Job, 0, len(records))
	for _, r := range records {
		jobs = append(jobs, r.job())
	}
	return jobs
}
