package extract

import (
	"fmt"

	"spedetl/internal/sped"
)

// ForVariant runs the extractor matching a layout variant name.
func ForVariant(name string, t *sped.Table) (*Data, error) {
	switch name {
	case "fiscal":
		return Fiscal(t)
	case "contribuicoes":
		return Contribuicoes(t)
	case "ecd":
		return ECD(t)
	}
	return nil, fmt.Errorf("no extractor for variant %q", name)
}
