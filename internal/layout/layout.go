// Package layout carries the published structure of each supported SPED
// file variant: its declared column count, end-marker register, nesting
// policy, and the positional field indices the extractors read. Indices are
// 0-based with the register code at position 0, matching the tokenizer's
// output after the leading delimiter is dropped.
package layout

import (
	"fmt"
	"strings"

	"spedetl/internal/sped"
)

// Variant describes one SPED file type.
type Variant struct {
	// Name is the canonical lowercase variant name.
	Name string

	// Columns is the fixed per-line field count the layout declares.
	Columns int

	// EndMarker is the register code that closes the file.
	EndMarker string

	// Policy is the variant's register nesting map.
	Policy sped.Policy
}

// Options returns parser options preloaded with the variant's structure.
// Callers adjust mode, batch size and hooks on the result.
func (v Variant) Options() sped.Options {
	return sped.Options{
		Columns:   v.Columns,
		EndMarker: v.EndMarker,
		Policy:    v.Policy,
	}
}

// ByName resolves a variant by its canonical name: "fiscal",
// "contribuicoes", or "ecd".
func ByName(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fiscal":
		return Fiscal, nil
	case "contribuicoes":
		return Contribuicoes, nil
	case "ecd":
		return ECD, nil
	}
	return Variant{}, fmt.Errorf("unknown SPED variant %q (want fiscal, contribuicoes or ecd)", name)
}

// Names lists the supported variant names in a stable order.
func Names() []string {
	return []string{Fiscal.Name, Contribuicoes.Name, ECD.Name}
}
