// Package route holds the page route table helpers: identifier validation,
// display labels and the paths navigation actions lead to.
package route

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/newthinker/quanthub/internal/core"
)

// MaxIdentifierLength bounds identifiers taken from a path segment.
const MaxIdentifierLength = 128

var identifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Identifier is a validated path segment naming a strategy or an edit session.
type Identifier string

// Parse validates a raw path segment.
func Parse(raw string) (Identifier, error) {
	if raw == "" {
		return "", core.WrapError(core.ErrInvalidIdentifier, fmt.Errorf("empty identifier"))
	}
	if len(raw) > MaxIdentifierLength {
		return "", core.WrapError(core.ErrInvalidIdentifier,
			fmt.Errorf("identifier longer than %d characters", MaxIdentifierLength))
	}
	if !identifierRegex.MatchString(raw) {
		return "", core.WrapError(core.ErrInvalidIdentifier,
			fmt.Errorf("identifier %q contains characters outside [a-zA-Z0-9_-]", raw))
	}
	return Identifier(raw), nil
}

func (id Identifier) String() string {
	return string(id)
}

// Label turns an identifier into a page heading: the first '-' becomes a space
// and every space-separated word is capitalized ("dual-ma" -> "Dual Ma").
func Label(id Identifier) string {
	words := strings.Split(strings.Replace(string(id), "-", " ", 1), " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// HomePath is the listing page.
func HomePath() string { return "/" }

// StrategyPath is the detail page for id.
func StrategyPath(id Identifier) string { return "/strategy/" + url.PathEscape(string(id)) }

// EditorPath is the editor page for id.
func EditorPath(id Identifier) string { return "/editor/" + url.PathEscape(string(id)) }

// ResultPath is the result page for id.
func ResultPath(id Identifier) string { return "/result/" + url.PathEscape(string(id)) }

// ForkIdentifier derives the edit-session identifier for a fork of id made at t.
// Two forks of the same id within one millisecond yield the same identifier.
func ForkIdentifier(id Identifier, t time.Time) (Identifier, error) {
	return Parse(fmt.Sprintf("%s-fork-%d", id, t.UnixMilli()))
}
