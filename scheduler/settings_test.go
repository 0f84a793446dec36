package scheduler_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcfactory/condor-api/scheduler"
)

func TestUniverseValidation(t *testing.T) {
	s := scheduler.NewSettings()
	for _, u := range []string{"vanilla", "standard", "java", "scheduler", "local", "grid", "vm"} {
		assert.NoError(t, s.SetUniverse(u), u)
	}

	err := s.SetUniverse("windows")
	var invalid *scheduler.InvalidUniverseError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "windows", invalid.Universe)
}

func TestRequiredAndOptionalGetters(t *testing.T) {
	s := scheduler.NewSettings()

	_, err := s.Executable()
	var req *scheduler.RequiredSettingError
	require.True(t, errors.As(err, &req))
	assert.Equal(t, "Executable", req.Setting)

	_, err = s.Output()
	var empty *scheduler.EmptySettingError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "Output", empty.Setting)

	s.SetExecutable("/bin/echo")
	got, err := s.Executable()
	require.NoError(t, err)
	assert.Equal(t, "/bin/echo", got)
}

func TestArgumentsAreQuoted(t *testing.T) {
	s := scheduler.NewSettings()
	s.SetArguments("a b c")
	got, err := s.Arguments()
	require.NoError(t, err)
	assert.Equal(t, `"a b c"`, got)
}

func TestFlushKeepsInsertionOrder(t *testing.T) {
	s := scheduler.NewSettings()
	require.NoError(t, s.SetUniverse("vanilla"))
	s.SetExecutable("/bin/echo")
	s.SetCPUs(2)

	text := s.Flush(false)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.Equal(t, []string{
		"Universe = vanilla",
		"Executable = /bin/echo",
		"request_cpus = 2",
	}, lines)
}

func TestFlushConsumesTheStanza(t *testing.T) {
	s := scheduler.NewSettings()
	require.NoError(t, s.SetUniverse("vanilla"))

	first := s.Flush(true)
	assert.Contains(t, first, "Universe = vanilla")

	// Nothing set since the flush: the next stanza is empty.
	second := s.Flush(true)
	assert.Equal(t, first, second)

	s.AppendQueue(1)
	assert.Equal(t, first+"Queue\n", s.Flush(false))
}

func TestFlushWithoutClearKeepsAttributes(t *testing.T) {
	s := scheduler.NewSettings()
	s.SetExecutable("/bin/true")

	first := s.Flush(false)
	second := s.Flush(false)
	assert.Equal(t, first, second)

	got, err := s.Executable()
	require.NoError(t, err)
	assert.Equal(t, "/bin/true", got)
}

func TestAppendQueueRepeatCount(t *testing.T) {
	s := scheduler.NewSettings()
	s.AppendQueue(5)
	assert.Equal(t, "Queue 5\n", s.Flush(false))
}

func TestMatlabLock(t *testing.T) {
	s := scheduler.NewSettings()

	_, err := s.MatlabLock()
	var empty *scheduler.EmptySettingError
	require.True(t, errors.As(err, &empty))

	s.SetMatlabLock(true)
	locked, err := s.MatlabLock()
	require.NoError(t, err)
	assert.True(t, locked)
	assert.Contains(t, s.Flush(false), "concurrency_limits = MATLAB")

	s.SetMatlabLock(false)
	_, err = s.MatlabLock()
	assert.True(t, errors.As(err, &empty))
}

func TestTransferExecutable(t *testing.T) {
	s := scheduler.NewSettings()
	s.SetTransferExecutable(false)
	transfer, err := s.TransferExecutable()
	require.NoError(t, err)
	assert.False(t, transfer)
	assert.Contains(t, s.Flush(false), "transfer_executable = false")
}

func TestResourceRequests(t *testing.T) {
	s := scheduler.NewSettings()
	s.SetCPUs(4)
	s.SetMemoryMB(2048)
	s.SetDiskMB(64)

	text := s.Flush(false)
	assert.Contains(t, text, "request_cpus = 4")
	assert.Contains(t, text, "request_memory = 2048")
	assert.Contains(t, text, "request_disk = 64")
}
