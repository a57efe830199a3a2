package render

import (
	"fmt"

	"docdrift/internal/ports"
)

// Renderer names accepted by New
const (
	KindTemplate = "template"
	KindPHP      = "php"
)

// New returns the renderer called kind. ref is the template reference used
// by the template renderer and ignored otherwise.
func New(kind, ref string) (ports.Renderer, error) {
	switch kind {
	case KindTemplate, "":
		if ref == "" {
			ref = BuiltinPrefix + "arangosh"
		}
		return NewTemplate(ref), nil
	case KindPHP:
		return NewPHP(), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q (expected %s or %s)", kind, KindTemplate, KindPHP)
	}
}
