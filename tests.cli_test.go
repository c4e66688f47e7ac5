package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	GitCommit, GitTag, BuildTime = "abc123", "v1.0.0", "2023-07-02"
	defer func() { GitCommit, GitTag, BuildTime = "", "", "" }()

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "commit: abc123\ntag: v1.0.0\nbuilt: 2023-07-02\n", out.String())
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "--config", filepath.Join(t.TempDir(), "missing.yml")})
	assert.Error(t, cmd.Execute())
}
