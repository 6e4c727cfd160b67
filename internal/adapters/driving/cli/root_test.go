package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func execute(t *testing.T, args ...string) (int, string) {
	t.Helper()

	var errOut bytes.Buffer
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags()
	})

	return Execute(context.Background()), errOut.String()
}

func TestExecute_Success(t *testing.T) {
	code, errOut := execute(t, "version")
	assert.Equal(t, 0, code)
	assert.Empty(t, errOut)
}

func TestExecute_PrintsUnreportedError(t *testing.T) {
	SetWiring(nil)

	code, errOut := execute(t, "config", "path")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: "+ErrNotWired.Error()+"\n", errOut)
}

func TestExecute_SkipsReportedError(t *testing.T) {
	env := useTestServices(t)
	env.graph.meErr = errors.New("network down")

	code, errOut := execute(t, "fetch", "--token", "tok", "--fields", "id")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Failed API request: network down")
	assert.NotContains(t, errOut, "Error: ")
}

func TestReported(t *testing.T) {
	cause := errors.New("boom")

	assert.Nil(t, reported(nil))
	assert.True(t, isReported(reported(cause)))
	assert.ErrorIs(t, reported(cause), cause)
	assert.False(t, isReported(cause))
}

func TestVerboseFlag(t *testing.T) {
	useTestServices(t)

	_, _, err := run(t, "", "--verbose", "config", "path")
	assert.NoError(t, err)
	assert.True(t, verbose)
}
