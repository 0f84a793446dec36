package scheduler

import "context"

// Runner executes one command on the submit host and returns its exit code
// and combined output. shell.Shell is the real implementation; tests
// substitute a mock.
type Runner interface {
	Execute(ctx context.Context, command string, input string) (int, string, error)
	ExecuteBytes(ctx context.Context, command string, input []byte) (int, []byte, error)
}
