package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var schemaFS embed.FS

// Validate checks instance against the embedded config schema, the same
// santhosh-tekuri/jsonschema/v5 compile-then-validate pattern the
// teacher uses for its own config and job-meta schemas.
func Validate(r io.Reader) error {
	raw, err := schemaFS.ReadFile("config.schema.json")
	if err != nil {
		return fmt.Errorf("config: read embedded schema: %w", err)
	}
	sch, err := jsonschema.CompileString("config.schema.json", string(raw))
	if err != nil {
		return fmt.Errorf("config: compile schema: %w", err)
	}

	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return fmt.Errorf("config: decode instance: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}
	return nil
}
