package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// compileSchema compiles an inline schema block into a validator.
func compileSchema(name string, block map[string]any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(block)
	if err != nil {
		return nil, fmt.Errorf("schema is not serializable: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	id := name + ".schema.json"
	if err := compiler.AddResource(id, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return compiler.Compile(id)
}
