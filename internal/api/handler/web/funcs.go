// internal/api/handler/web/funcs.go
package web

import (
	"html/template"

	"github.com/newthinker/quanthub/internal/catalog"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"toneClass": toneClass,
		"iconGlyph": iconGlyph,
	}
}

// toneClass maps a metric tone to its text color class.
func toneClass(t catalog.Tone) string {
	switch t {
	case catalog.TonePositive:
		return "text-green"
	case catalog.ToneNegative:
		return "text-red"
	default:
		return "text-white"
	}
}

func iconGlyph(icon string) string {
	switch icon {
	case "trending-up":
		return "↗"
	case "activity":
		return "∿"
	case "zap":
		return "⚡"
	case "layers":
		return "≋"
	default:
		return "•"
	}
}
