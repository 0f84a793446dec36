package mailmap_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hpcfactory/condor-api/mailmap"
	"github.com/hpcfactory/condor-api/mocks"
)

const sample = `default: admin@example.org
users:
  alice: alice@example.org
  bob: bob@example.org
`

func TestLookup(t *testing.T) {
	m, err := mailmap.Parse([]byte(sample))
	require.NoError(t, err)

	addr, ok := m.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "alice@example.org", addr)

	// Unknown users fall back to the default entry.
	addr, ok = m.Lookup("mallory")
	assert.True(t, ok)
	assert.Equal(t, "admin@example.org", addr)
}

func TestLookupWithoutDefault(t *testing.T) {
	m, err := mailmap.Parse([]byte("users:\n  alice: alice@example.org\n"))
	require.NoError(t, err)

	_, ok := m.Lookup("mallory")
	assert.False(t, ok)
}

func TestFetchThroughRunner(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.On("ExecuteBytes", mock.Anything, "cat /etc/mail_map.yaml", mock.Anything).
		Return(0, []byte(sample), nil).Once()

	m, err := mailmap.Fetch(context.Background(), runner, "/etc/mail_map.yaml")
	require.NoError(t, err)

	addr, ok := m.Lookup("bob")
	assert.True(t, ok)
	assert.Equal(t, "bob@example.org", addr)
}

func TestFetchNonzeroExit(t *testing.T) {
	runner := mocks.NewRunner(t)
	runner.On("ExecuteBytes", mock.Anything, "cat /nope.yaml", mock.Anything).
		Return(1, []byte("cat: /nope.yaml: No such file or directory"), nil).Once()

	_, err := mailmap.Fetch(context.Background(), runner, "/nope.yaml")
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail_map.yaml")

	m := &mailmap.Map{Default: "admin@example.org"}
	m.Set("alice", "alice@example.org")
	require.NoError(t, m.Save(path))

	loaded, err := mailmap.Load(path)
	require.NoError(t, err)

	addr, ok := loaded.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "alice@example.org", addr)
	assert.Equal(t, "admin@example.org", loaded.Default)

	loaded.Delete("alice")
	addr, ok = loaded.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "admin@example.org", addr)
}
