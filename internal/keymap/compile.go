package keymap

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError represents a profile compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileProfile parses a CUE value into a Keymap.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The profile struct has an optional name and a required bindings
// struct mapping key tokens to action names:
//
//	name: "vim"
//	bindings: {
//	  "x": "multiply"
//	  "q": "square"
//	}
//
// Profile bindings overlay the builtin Default() table.
func CompileProfile(v cue.Value) (*Keymap, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	m := Default()

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		m.name = name
	}

	bindingsVal := v.LookupPath(cue.ParsePath("bindings"))
	if !bindingsVal.Exists() {
		return nil, &CompileError{
			Field:   "bindings",
			Message: "bindings struct is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := bindingsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		tok := iter.Label()
		action, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}

		ev, err := eventForAction(tok, action)
		if err != nil {
			return nil, &CompileError{
				Field:   "bindings." + tok,
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}

		m.bind(tok, ev, action)
	}

	return m, nil
}

// LoadProfile reads and compiles a CUE keymap profile from a file.
func LoadProfile(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap profile: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	return CompileProfile(v)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
