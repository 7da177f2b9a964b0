// Where: cli/internal/infra/config/schema.go
// What: JSON schema validation for stackctl.yml.
// Why: Reject typos and wrong shapes before any command runs.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

const settingsSchemaURL = "https://stackctl.local/settings.schema.json"

//go:embed schema/settings.schema.json
var settingsSchema []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func validateSettings(content []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return sch.Validate(document)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(settingsSchemaURL, bytes.NewReader(settingsSchema)); err != nil {
			schemaErr = fmt.Errorf("load settings schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(settingsSchemaURL)
	})
	return compiledSchema, schemaErr
}
