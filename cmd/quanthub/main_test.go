package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		cfgFile = ""
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "QuantHub dev")
	assert.Contains(t, out, "Git commit: unknown")
}

func TestRoutesCommand(t *testing.T) {
	out := execute(t, "routes")
	assert.Contains(t, out, "METHOD")
	assert.Contains(t, out, "/strategy/{id}/fork")
	assert.Contains(t, out, "/result/{id}/live")
	assert.Contains(t, out, "/metrics")
}
