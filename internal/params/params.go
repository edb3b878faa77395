// Package params loads the inputs of the binding lessons from CUE.
//
// The schema carries the defaults of the canonical program, so an empty
// override yields the same values as the source:
//
//	bounds:     { seq: [1, 2, 3], index: 10, fixed_index: 2 }
//	mutability: { initial: 1, increment: 15 }
//	ownership:  { vec: [1, 2, 3] }
//	init:       { value: 10 }
//
// Override files are unified with the closed #Params definition, so unknown
// fields and type mismatches are rejected with CUE positions. An override
// must keep fixed_index inside seq and index outside it.
package params

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

// Schema is the CUE definition every parameter file is unified with.
const Schema = `
#Params: {
	bounds: {
		seq:         *[1, 2, 3] | [int, ...int]
		index:       *10 | int & >=0
		fixed_index: *2 | int & >=0
	}
	mutability: {
		initial:   *1 | int
		increment: *15 | int
	}
	ownership: {
		vec: *[1, 2, 3] | [...int]
	}
	init: {
		value: *10 | int
	}
}
`

// Bounds holds the bounds-check lesson inputs.
type Bounds struct {
	Seq        []int `json:"seq"`
	Index      int   `json:"index"`
	FixedIndex int   `json:"fixed_index"`
}

// Mutability holds the mutability lesson inputs.
type Mutability struct {
	Initial   int `json:"initial"`
	Increment int `json:"increment"`
}

// Ownership holds the ownership lesson inputs.
type Ownership struct {
	Vec []int `json:"vec"`
}

// Init holds the definite-assignment lesson inputs.
type Init struct {
	Value int `json:"value"`
}

// Params is the decoded #Params value.
type Params struct {
	Bounds     Bounds     `json:"bounds"`
	Mutability Mutability `json:"mutability"`
	Ownership  Ownership  `json:"ownership"`
	Init       Init       `json:"init"`
}

// Default returns the schema defaults.
func Default() (Params, error) {
	return Compile("", nil)
}

// Load reads a CUE override file and unifies it with the schema.
// An empty path yields the defaults.
func Load(path string) (Params, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read params file: %w", err)
	}
	return Compile(path, data)
}

// Compile unifies CUE source with the schema and decodes the result.
// filename is used only for error positions.
func Compile(filename string, src []byte) (Params, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(Schema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Params{}, fmt.Errorf("invalid params schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Params"))

	v := def
	if len(src) > 0 {
		override := ctx.CompileBytes(src, cue.Filename(filename))
		if err := override.Err(); err != nil {
			return Params{}, fmt.Errorf("failed to parse params: %s", errors.Details(err, nil))
		}
		v = def.Unify(override)
	}

	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Params{}, fmt.Errorf("invalid params: %s", errors.Details(err, nil))
	}

	var p Params
	if err := v.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("failed to decode params: %w", err)
	}
	if err := p.validate(); err != nil {
		return Params{}, fmt.Errorf("invalid params: %w", err)
	}
	return p, nil
}

// validate checks the cross-field constraints CUE defaults make awkward to express.
func (p Params) validate() error {
	if p.Bounds.FixedIndex >= len(p.Bounds.Seq) {
		return fmt.Errorf("bounds.fixed_index %d must be below len(bounds.seq) %d",
			p.Bounds.FixedIndex, len(p.Bounds.Seq))
	}
	// The broken variant must always read past the end.
	if p.Bounds.Index < len(p.Bounds.Seq) {
		return fmt.Errorf("bounds.index %d must be outside len(bounds.seq) %d",
			p.Bounds.Index, len(p.Bounds.Seq))
	}
	return nil
}
