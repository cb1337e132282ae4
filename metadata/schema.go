package metadata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "metadata.schema.json"

//go:embed metadata.schema.json
var schemaData []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal metadata schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add metadata schema resource: %w", err)
			return
		}

		compiledSchema, err = compiler.Compile(schemaURL)
		if err != nil {
			compileErr = fmt.Errorf("compile metadata schema: %w", err)
		}
	})

	return compileErr
}

// Validate checks a decoded metadata document against the embedded schema.
// The document is round-tripped through JSON so YAML scalar types match the schema's view.
func Validate(document any) error {
	if err := compileSchema(); err != nil {
		return err
	}

	data, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("metadata is not JSON compatible: %w", err)
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid metadata JSON: %w", err)
	}

	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("metadata validation failed: %w", err)
	}

	return nil
}
