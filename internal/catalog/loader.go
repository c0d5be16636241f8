// Package catalog loads and serves the CMS-authored BusinessSimulation
// configs. Configs are schema-validated on load and read-only afterwards;
// the game core never mutates them.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/playventures/bizlab/internal/domain"
)

//go:embed business.schema.json
var businessSchemaJSON []byte

const businessSchemaURL = "bizlab://business.schema.json"

// compileSchema compiles the embedded business config schema
func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(businessSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(businessSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(businessSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}

// LoadDir reads every *.json business config in dir, validates each against
// the schema, and returns a catalog. One invalid file fails the whole load;
// configs are deploy-time artifacts and a bad one should stop startup.
func LoadDir(dir string) (*Catalog, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory %s: %w", dir, err)
	}

	businesses := make(map[string]domain.BusinessSimulation)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		biz, err := loadFile(path, schema)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, entry.Name(), err)
		}

		if _, dup := businesses[biz.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate business id %q in %s", domain.ErrInvalidConfig, biz.ID, entry.Name())
		}
		businesses[biz.ID] = *biz
	}

	slog.Info("Business catalog loaded", "dir", dir, "count", len(businesses))
	return newCatalog(businesses), nil
}

func loadFile(path string, schema *jsonschema.Schema) (*domain.BusinessSimulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, formatValidationError(err)
	}

	var biz domain.BusinessSimulation
	if err := json.Unmarshal(data, &biz); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &biz, nil
}

// formatValidationError flattens a jsonschema validation error into a
// single readable message
func formatValidationError(err error) error {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validation error: %w", err)
	}

	var msgs []string
	collectErrors(validationErr, &msgs)
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

func collectErrors(err *jsonschema.ValidationError, msgs *[]string) {
	location := strings.Join(err.InstanceLocation, "/")
	if location == "" {
		location = "(root)"
	} else {
		location = "/" + location
	}

	if err.ErrorKind != nil {
		keywordPath := err.ErrorKind.KeywordPath()
		if len(keywordPath) > 0 {
			*msgs = append(*msgs, fmt.Sprintf("at %s: %s failed", location, strings.Join(keywordPath, ".")))
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, msgs)
	}
}
