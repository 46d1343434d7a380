package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed plan.schema.json
var planSchemaJSON []byte

const planSchemaURL = "schema://plan.json"

var planSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal(planSchemaJSON, &def); err != nil {
		return nil, fmt.Errorf("parse plan schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(planSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(planSchemaURL)
})

// validateSchema checks the plan's JSON form against the embedded schema.
func validateSchema(pf *PlanFile) error {
	compiled, err := planSchema()
	if err != nil {
		return fmt.Errorf("compile plan schema: %w", err)
	}

	// The validator expects a decoded JSON value, not a Go struct.
	raw, err := json.Marshal(pf)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse plan: %w", err)
	}

	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("plan schema validation failed: %w", err)
	}
	return nil
}
