package route

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/newthinker/quanthub/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"simple", "dual-ma", false},
		{"underscore and digits", "pairs_v2", false},
		{"fork id", "dual-ma-fork-1700000000000", false},
		{"empty", "", true},
		{"space", "dual ma", true},
		{"script", "<script>", true},
		{"dot segment", "..", true},
		{"slash", "a/b", true},
		{"too long", strings.Repeat("a", MaxIdentifierLength+1), true},
		{"max length", strings.Repeat("a", MaxIdentifierLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, core.ErrInvalidIdentifier))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, id.String())
		})
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		id   Identifier
		want string
	}{
		{"dual-ma", "Dual Ma"},
		{"bitcoin", "Bitcoin"},
		{"pairs", "Pairs"},
		// only the first separator is replaced
		{"dual-ma-fork-1", "Dual Ma-fork-1"},
		{"my_strategy", "My_strategy"},
		{"9lives", "9lives"},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.id))
		})
	}
}

func TestPaths(t *testing.T) {
	id := Identifier("dual-ma")
	assert.Equal(t, "/", HomePath())
	assert.Equal(t, "/strategy/dual-ma", StrategyPath(id))
	assert.Equal(t, "/editor/dual-ma", EditorPath(id))
	assert.Equal(t, "/result/dual-ma", ResultPath(id))
}

func TestForkIdentifier(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	forkID, err := ForkIdentifier("dual-ma", at)
	require.NoError(t, err)
	assert.Equal(t, Identifier("dual-ma-fork-1700000000123"), forkID)
	assert.Regexp(t, regexp.MustCompile(`^/editor/dual-ma-fork-\d+$`), EditorPath(forkID))
}

func TestForkIdentifier_TooLong(t *testing.T) {
	id := Identifier(strings.Repeat("a", MaxIdentifierLength))
	_, err := ForkIdentifier(id, time.Now())
	assert.True(t, errors.Is(err, core.ErrInvalidIdentifier))
}
