package printer

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	SetOutput(out, errOut)

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		SetOutput(os.Stdout, os.Stderr)
		color.NoColor = noColor
	})
	return out, errOut
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Equal(t, "Test Error\n\nThis is a test error\n", errOut.String())
	})

	t.Run("single suggestion printed bare", func(t *testing.T) {
		_, errOut := capture(t)
		err := Error("Test Error", "Explanation", []string{"Try this fix"})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, errOut.String(), "\nTry this fix\n")
		assert.NotContains(t, errOut.String(), "Either:")
	})

	t.Run("multiple suggestions numbered", func(t *testing.T) {
		_, errOut := capture(t)
		Error("Test Error", "Explanation", []string{"First option", "Second option"})
		assert.Contains(t, errOut.String(), "Either:\n  1. First option\n  2. Second option\n")
	})
}

func TestErrorWithContext(t *testing.T) {
	_, errOut := capture(t)
	context := map[string]string{
		"Instance": "team-board",
		"Config":   "/path/to/slate.yml",
	}
	err := ErrorWithContext("Test Error", "Explanation", context, nil)
	require.Equal(t, "Test Error", err.Error())
	assert.Contains(t, errOut.String(), "  Config: /path/to/slate.yml\n  Instance: team-board\n")
}

func TestOutputHelpers(t *testing.T) {
	out, _ := capture(t)

	Success("saved\n")
	Success("✓ already marked\n")
	Warning("careful\n")
	Step("working\n")
	Field("theme", "dark")
	Println("plain")

	assert.Equal(t,
		"✓ saved\n✓ already marked\n⚠️  careful\n→ working\ntheme:       dark\nplain\n",
		out.String())
}
