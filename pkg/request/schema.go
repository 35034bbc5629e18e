package request

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// JSON Schemas for the two structured payloads. They pin structure and
// leaf types only; tuple arity and value domains are checked in the
// contracts package so the canonical diagnostics come from one place.
const (
	streamsSchemaJSON = `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "array",
		"items": {
			"type": "array",
			"items": {"type": ["string", "number", "boolean"]}
		}
	}`

	eventsSchemaJSON = `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "array",
		"items": {
			"type": "array",
			"items": {"type": ["string", "number"]}
		}
	}`
)

var (
	streamsSchema = mustCompile("streams", streamsSchemaJSON)
	eventsSchema  = mustCompile("events", eventsSchemaJSON)
)

func mustCompile(name, schema string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	url := fmt.Sprintf("https://webdc3.schemas.local/%s.schema.json", name)
	if err := c.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("load %s schema: %v", name, err))
	}
	return c.MustCompile(url)
}

// checkShape validates a raw JSON payload against its schema, mapping
// both decode and shape failures onto the malformed-input class.
func checkShape(schema *jsonschema.Schema, name, raw string) error {
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fmt.Errorf("invalid %s: %w", name, contracts.ErrInvalidInput)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("invalid %s: %s: %w", name, err, contracts.ErrInvalidInput)
	}
	return nil
}
