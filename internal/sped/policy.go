package sped

// Policy maps a register code to its declared parent register code. A code
// that is absent, or mapped to the empty string, is a root-level register.
//
// One Policy exists per supported file variant (see internal/layout); the
// parser treats it as immutable input and never writes to it.
type Policy map[string]string

// Parent returns the declared parent register for code and whether one is
// declared at all.
func (p Policy) Parent(code string) (string, bool) {
	parent, ok := p[code]
	if !ok || parent == "" {
		return "", false
	}
	return parent, true
}
