package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommandLocal(t *testing.T) {
	s := New("", "")
	assert.True(t, s.Local())
	assert.Equal(t, "whoami", s.buildCommand("whoami"))

	s = New("localhost", "ignored")
	assert.True(t, s.Local())
}

func TestBuildCommandRemote(t *testing.T) {
	s := New("condor.example.org", "alice")
	assert.False(t, s.Local())
	assert.Equal(t, "ssh alice@condor.example.org whoami", s.buildCommand("whoami"))
}

func TestRemoteUserDefaultsToCurrentUser(t *testing.T) {
	s := New("condor.example.org", "")
	assert.NotEmpty(t, s.remoteUser)
}

func TestExecuteLocal(t *testing.T) {
	s := New("", "")
	code, out, err := s.Execute(context.Background(), "echo hello", "")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello", out)
}

func TestExecuteFeedsInput(t *testing.T) {
	s := New("", "")
	code, out, err := s.Execute(context.Background(), "cat", "Hellow Orld from your machine!")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Hellow Orld from your machine!", out)
}

func TestExecuteReportsExitCode(t *testing.T) {
	s := New("", "")
	code, _, err := s.Execute(context.Background(), "exit 7", "")
	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestExecuteBytesKeepsRawOutput(t *testing.T) {
	s := New("", "")
	code, out, err := s.ExecuteBytes(context.Background(), "echo raw", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []byte("raw\n"), out)
}
