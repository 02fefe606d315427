package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas by Schema.Name. Grading reuses a
// handful of fixed schemas, so compilation happens once per process.
var compiledSchemas sync.Map

// ValidateAgainstSchema checks raw model output against the given Schema. A
// nil schema always passes; every failure mode comes back as an
// *ErrInvalidResponse wrapping the cause.
func ValidateAgainstSchema(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	compiled, err := compiledFor(schema)
	if err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	if err := compiled.Validate(inst); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}
	return nil
}

func compiledFor(schema *Schema) (*jsonschema.Schema, error) {
	if hit, ok := compiledSchemas.Load(schema.Name); ok {
		return hit.(*jsonschema.Schema), nil
	}

	// Round-trip the definition map through JSON so the compiler sees the
	// value shapes it expects from a decoded schema document.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	resource := schema.Name + ".json"
	if err := compiler.AddResource(resource, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, err
	}

	compiledSchemas.Store(schema.Name, compiled)
	return compiled, nil
}
