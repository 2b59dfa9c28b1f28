package screen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Per-kind JSON Schemas for screen config documents. Free-text fields are
// allowed arbitrary content (they are entity-escaped at render time); color
// fields are restricted to #RRGGBB tokens so config can never inject markup.
var configSchemas = map[Kind]json.RawMessage{
	KindClock: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"format": {"type": "string", "enum": ["12h", "24h"]}
		},
		"additionalProperties": false
	}`),
	KindWeather: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"location": {"type": "string", "maxLength": 120},
			"temperature": {"type": "string", "maxLength": 16},
			"condition": {"type": "string", "maxLength": 64}
		},
		"additionalProperties": false
	}`),
	KindQuote: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"quote": {"type": "string", "maxLength": 1000},
			"author": {"type": "string", "maxLength": 120}
		},
		"additionalProperties": false
	}`),
	KindCustom: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"title": {"type": "string", "maxLength": 200},
			"content": {"type": "string", "maxLength": 2000},
			"backgroundColor": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"},
			"textColor": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
		},
		"additionalProperties": false
	}`),
	KindCalendarWeek: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"refresh_rate": {"type": "number", "minimum": 60}
		},
		"additionalProperties": false
	}`),
	KindYearProgress: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"refresh_rate": {"type": "number", "minimum": 60}
		},
		"additionalProperties": false
	}`),
	KindDefault: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"additionalProperties": false
	}`),
}

// Validator validates screen config documents against their kind's schema.
// Compiled schemas are cached per kind.
type Validator struct {
	mu    sync.RWMutex
	cache map[Kind]*jsonschema.Schema
}

// NewValidator creates a Validator with an empty cache.
func NewValidator() *Validator {
	return &Validator{cache: make(map[Kind]*jsonschema.Schema)}
}

// Validate checks config against the schema for kind. An unknown kind is
// an error; a nil config validates as an empty document.
func (v *Validator) Validate(kind Kind, config map[string]any) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown screen type %q", kind)
	}
	compiled, err := v.compile(kind)
	if err != nil {
		return fmt.Errorf("failed to compile %s config schema: %w", kind, err)
	}
	if config == nil {
		config = map[string]any{}
	}
	return compiled.Validate(config)
}

func (v *Validator) compile(kind Kind) (*jsonschema.Schema, error) {
	v.mu.RLock()
	if s, ok := v.cache[kind]; ok {
		v.mu.RUnlock()
		return s, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.cache[kind]; ok {
		return s, nil
	}

	var schemaMap any
	if err := json.Unmarshal(configSchemas[kind], &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaMap); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}

	v.cache[kind] = compiled
	return compiled, nil
}
