package cue

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/dotcommander/pwgrade/internal/types"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Validator handles CUE validation
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// LoadSchemas compiles every embedded schema file.
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("reading embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}

		content, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return fmt.Errorf("compiling schema %s: %w", entry.Name(), instErr)
		}

		// request.cue -> request
		schemaName := strings.TrimSuffix(entry.Name(), ".cue")
		v.schemas[schemaName] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas loaded")
	}

	return nil
}

// ValidateRequest checks decoded request data against #Request.
// A nil result means the data conforms.
func (v *Validator) ValidateRequest(data map[string]any) ([]types.ValidationError, error) {
	schema, ok := v.schemas["request"]
	if !ok {
		return nil, fmt.Errorf("request schema not loaded")
	}
	return v.validateAgainstSchema(schema, data, "#Request")
}

func (v *Validator) validateAgainstSchema(schema cue.Value, data map[string]any, definition string) ([]types.ValidationError, error) {
	dataValue := v.ctx.Encode(data)
	if encErr := dataValue.Err(); encErr != nil {
		return nil, fmt.Errorf("encoding data: %w", encErr)
	}

	def := schema.LookupPath(cue.ParsePath(definition))
	if !def.Exists() {
		return nil, fmt.Errorf("schema definition %s not found", definition)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return extractErrorsFromCUE(err), nil
	}

	// Concreteness catches missing required fields.
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return extractErrorsFromCUE(err), nil
	}

	return nil, nil
}

// extractErrorsFromCUE splits a CUE error into one record per failing path.
func extractErrorsFromCUE(err error) []types.ValidationError {
	var out []types.ValidationError
	seen := make(map[string]bool)

	var cueErr cueerrors.Error
	if !cueerrors.As(err, &cueErr) {
		return []types.ValidationError{{
			Message:  fmt.Sprintf("schema validation failed: %v", err),
			Severity: types.SeverityError,
			Source:   types.SourceSchema,
		}}
	}

	for _, e := range cueerrors.Errors(err) {
		path := strings.Join(e.Path(), ".")
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if msg == "" {
			msg = e.Error()
		}

		key := path + "\x00" + msg
		if seen[key] {
			continue
		}
		seen[key] = true

		if path != "" {
			msg = path + ": " + msg
		}
		out = append(out, types.ValidationError{
			Message:  msg,
			Severity: types.SeverityError,
			Source:   types.SourceSchema,
			Path:     path,
		})
	}

	if len(out) == 0 {
		out = append(out, types.ValidationError{
			Message:  fmt.Sprintf("schema validation failed: %v", err),
			Severity: types.SeverityError,
			Source:   types.SourceSchema,
		})
	}

	return out
}
