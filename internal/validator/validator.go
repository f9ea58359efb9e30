// Package validator is the contract guard between the construction engine
// and whatever consumes its exported tables. The exported shape is the
// interface other tools build against; when the Go structs drift from the
// schema we want an immediate, loud failure here, not a consumer silently
// reading zero values. When validation fails, fix the schema or the export
// code; never suppress the error.
package validator

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaFS embed.FS

// Validator validates exported netlist tables against the embedded CUE
// schema contract.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{ctx: ctx, schema: schema}, nil
}

// Validate checks that data conforms to the #Tables contract. Returns nil
// when valid, or a detailed error explaining what failed.
func (v *Validator) Validate(data any) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling data to JSON: %w", err)
	}
	return v.ValidateJSON(jsonBytes)
}

// ValidateJSON validates raw JSON bytes against the #Tables contract.
func (v *Validator) ValidateJSON(jsonBytes []byte) error {
	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling data as CUE: %w", dataValue.Err())
	}

	tablesDef := v.schema.LookupPath(cue.ParsePath("#Tables"))
	if tablesDef.Err() != nil {
		return fmt.Errorf("looking up #Tables definition: %w", tablesDef.Err())
	}

	unified := tablesDef.Unify(dataValue)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidationErrors returns one message per individual schema violation,
// or nil when the data is valid.
func (v *Validator) ValidationErrors(data any) []string {
	err := v.Validate(data)
	if err == nil {
		return nil
	}
	var out []string
	for _, e := range cueerrors.Errors(err) {
		out = append(out, e.Error())
	}
	return out
}
