// Package scheduler builds submission descriptions for an HTCondor cluster,
// submits them through the configured shell and tracks the resulting cluster.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/user"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/hpcfactory/condor-api/mailmap"
	"github.com/hpcfactory/condor-api/shell"
)

const (
	submitBin = "condor_submit"
	queryBin  = "condor_q"

	// DefaultMaxPollInterval caps the linearly growing sleep between Wait
	// polls.
	DefaultMaxPollInterval = 30 * time.Second

	mailLookupTimeout = 5 * time.Second
)

var clusterRe = regexp.MustCompile(`cluster (\d+)`)

// Job accumulates submission attributes, serializes them into a submission
// description, submits it and polls or waits on the resulting cluster.
// A Job is not safe for concurrent use.
type Job struct {
	settings        *Settings
	runner          Runner
	username        string
	server          string
	executablePath  string
	cluster         int
	maxPollInterval time.Duration
	mailMapPath     string
}

// New builds a Job for the given universe, submitting as username to the
// scheduler on server. An empty username defaults to the current OS user.
// Default resource requests are 1 CPU, 1024 MB memory and 32 MB disk, and
// the notification address is resolved from the cluster's mail map when one
// is reachable. A nil runner picks a local shell when the submit binary is
// on PATH and username is the current user, otherwise a remote shell to
// server.
func New(universe, username, server string, runner Runner) (*Job, error) {
	local := localUsername()
	if username == "" {
		username = local
	}
	j := &Job{
		settings:        NewSettings(),
		username:        username,
		server:          server,
		maxPollInterval: DefaultMaxPollInterval,
		mailMapPath:     mailmap.DefaultPath,
	}
	if err := j.settings.SetUniverse(universe); err != nil {
		return nil, err
	}
	j.settings.SetCPUs(1)
	j.settings.SetMemoryMB(1024)
	j.settings.SetDiskMB(32)

	if runner == nil {
		if _, err := exec.LookPath(submitBin); err == nil && username == local {
			runner = shell.New("", "")
		} else {
			runner = shell.New(server, username)
		}
	}
	j.runner = runner

	j.SetEmail("")
	return j, nil
}

func (j *Job) String() string {
	return fmt.Sprintf("<Job: %s@%s\n%s>",
		j.username, j.server, strings.TrimSpace(j.settings.Flush(false)))
}

// Settings exposes the pending attribute map for accessors not mirrored on
// Job.
func (j *Job) Settings() *Settings {
	return j.settings
}

// Username returns the identity used to submit.
func (j *Job) Username() string {
	return j.username
}

// Server returns the scheduler host submissions are sent to.
func (j *Job) Server() string {
	return j.server
}

// Cluster returns the scheduler's identifier for the submitted batch, or 0
// before a successful Submit.
func (j *Job) Cluster() int {
	return j.cluster
}

// SetMaxPollInterval caps the sleep between Wait polls.
func (j *Job) SetMaxPollInterval(d time.Duration) {
	j.maxPollInterval = d
}

// SetMailMapPath overrides where SetEmail looks for the notification map.
func (j *Job) SetMailMapPath(path string) {
	j.mailMapPath = path
}

func (j *Job) SetUniverse(universe string) error { return j.settings.SetUniverse(universe) }
func (j *Job) SetOutput(path string)             { j.settings.SetOutput(path) }
func (j *Job) SetErrorFile(path string)          { j.settings.SetErrorFile(path) }
func (j *Job) SetLog(path string)                { j.settings.SetLog(path) }
func (j *Job) SetInput(path string)              { j.settings.SetInput(path) }
func (j *Job) SetInitialDir(dir string)          { j.settings.SetInitialDir(dir) }
func (j *Job) SetRequirements(expr string)       { j.settings.SetRequirements(expr) }
func (j *Job) SetMatlabLock(locked bool)         { j.settings.SetMatlabLock(locked) }
func (j *Job) SetCPUs(n int)                     { j.settings.SetCPUs(n) }
func (j *Job) SetMemoryMB(megabytes int)         { j.settings.SetMemoryMB(megabytes) }
func (j *Job) SetDiskMB(megabytes int)           { j.settings.SetDiskMB(megabytes) }

// SetEmail sets the notification address. An empty address consults the mail
// map on the submit host, falling back to its default entry; lookup failures
// leave the attribute unset.
func (j *Job) SetEmail(address string) {
	if address != "" {
		j.settings.SetNotifyUser(address)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mailLookupTimeout)
	defer cancel()
	m, err := mailmap.Fetch(ctx, j.runner, j.mailMapPath)
	if err != nil {
		return
	}
	if addr, ok := m.Lookup(j.username); ok {
		j.settings.SetNotifyUser(addr)
	} else {
		log.Printf("note: %s not in the mail map and no default entry is set", j.username)
	}
}

// ResolveExecutable finds the path the scheduler should run for name: a path
// reachable from the current directory wins, then a PATH lookup via which,
// otherwise the literal name is kept with a warning.
func (j *Job) ResolveExecutable(ctx context.Context, name string) string {
	if code, _, err := j.runner.Execute(ctx, "ls "+name, ""); err == nil && code == 0 {
		return name
	}
	code, out, err := j.runner.Execute(ctx, "which "+name, "")
	if err == nil && code == 0 {
		return strings.TrimSpace(out)
	}
	log.Printf("warning: could not find executable %q", name)
	return name
}

// SetExecutable resolves name and records it. A path separator in the
// resolved path marks the executable as already present on the execution
// host, so it is not transferred. One executable per submission is the rule;
// changing it is only warned about.
func (j *Job) SetExecutable(ctx context.Context, name string) {
	path := j.ResolveExecutable(ctx, name)
	if strings.Contains(strings.ReplaceAll(path, `\/`, ""), "/") {
		j.settings.SetTransferExecutable(false)
	}
	if j.executablePath == "" {
		j.settings.SetExecutable(path)
		j.executablePath = path
		return
	}
	if j.executablePath != path {
		log.Printf("warning: generally speaking, only one executable should be used per submission")
		j.settings.SetExecutable(path)
		j.executablePath = path
	}
}

// Queue flushes the attributes set so far into the submission description
// and enqueues commandLine, times copies. Flushing consumes the per-stanza
// attributes, so resource requests must be set again if the next stanza
// should differ. Double quotes must be escaped by doubling; arguments with
// spaces belong in single quotes.
func (j *Job) Queue(ctx context.Context, commandLine string, times int) error {
	commandLine = strings.TrimSpace(commandLine)
	if err := checkQuotes(commandLine); err != nil {
		return err
	}
	tokens, err := shlex.Split(commandLine)
	if err != nil {
		return &BadQuotesError{Char: "'"}
	}
	if len(tokens) == 0 {
		return &RequiredSettingError{Setting: "Executable"}
	}
	j.SetExecutable(ctx, tokens[0])

	args := strings.Split(commandLine, " ")
	executable := args[0]
	args = args[1:]
	// A trailing backslash continues the executable path across an escaped
	// space.
	for strings.HasSuffix(executable, `\`) && len(args) > 0 {
		executable += args[0]
		args = args[1:]
	}
	if argStr := strings.Join(args, " "); argStr != "" {
		j.settings.SetArguments(argStr)
	}
	j.settings.Flush(true)
	j.settings.AppendQueue(times)
	return nil
}

// checkQuotes rejects a bare double quote outside single-quoted regions.
// A doubled quote ("") is the scheduler's escape and is allowed.
func checkQuotes(s string) error {
	inSingle := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			inSingle = !inSingle
		case '"':
			if inSingle {
				continue
			}
			if i+1 < len(s) && s[i+1] == '"' {
				i++
				continue
			}
			return &BadQuotesError{Char: `"`}
		}
	}
	return nil
}

// Submit sends the accumulated description to the submit binary targeted at
// the configured server and records the cluster id parsed from its reply.
// A nonzero exit from the submit binary is reported and yields cluster 0
// with a nil error: the scheduler-side state of a failed submission is
// unknown, so callers must check the returned id. The cluster id is
// immutable once assigned.
func (j *Job) Submit(ctx context.Context) (int, error) {
	code, out, err := j.runner.Execute(ctx, submitBin+" -remote "+j.server, j.settings.Flush(true))
	if err != nil {
		return 0, err
	}
	if code != 0 {
		log.Printf("%s exited with %d: %s", submitBin, code, out)
		log.Printf("warning: the job was probably not submitted; if it was after all, this object cannot monitor it")
		return 0, nil
	}
	m := clusterRe.FindStringSubmatch(out)
	if m == nil {
		return 0, &BadFormatError{Tool: submitBin}
	}
	cluster, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, &BadFormatError{Tool: submitBin}
	}
	if j.cluster == 0 {
		j.cluster = cluster
	}
	return j.cluster, nil
}

// Attach adopts an already submitted cluster so it can be polled and waited
// on. It fails if a cluster id is already assigned.
func (j *Job) Attach(cluster int) error {
	if j.cluster != 0 {
		return fmt.Errorf("cluster %d is already assigned to this job", j.cluster)
	}
	j.cluster = cluster
	return nil
}

func (j *Job) checkQueue(ctx context.Context) (int, string, error) {
	cmd := fmt.Sprintf(`%s %d -format "%%d." ClusterId -format "%%d\n" ProcId`, queryBin, j.cluster)
	return j.runner.Execute(ctx, cmd, "")
}

// Poll returns the number of processes of the submitted cluster still in the
// queue. It requires a prior successful Submit.
func (j *Job) Poll(ctx context.Context) (int, error) {
	if j.cluster == 0 {
		return 0, &SubmissionError{Op: "Poll"}
	}
	code, out, err := j.checkQueue(ctx)
	if err != nil {
		return 0, err
	}
	if code != 0 {
		log.Printf("%s exited with %d: %s", queryBin, code, out)
		return 0, &BadFormatError{Tool: queryBin}
	}
	return strings.Count(out, strconv.Itoa(j.cluster)+"."), nil
}

// Wait blocks until every process of the submitted cluster has left the
// queue. The sleep between polls grows linearly from one second in steps of
// half a second, capped at the configured maximum; growth is deliberately
// not exponential so short-lived jobs are not missed.
func (j *Job) Wait(ctx context.Context) error {
	if j.cluster == 0 {
		return &SubmissionError{Op: "Wait"}
	}
	code, out, err := j.checkQueue(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) != "" {
		log.Printf("waiting for cluster %d to finish", j.cluster)
	}
	interval := time.Second
	needle := strconv.Itoa(j.cluster)
	for strings.Contains(strings.TrimSpace(out), needle) {
		if code != 0 {
			log.Printf("%s exited with %d: %s", queryBin, code, out)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		time.Sleep(minDuration(interval, j.maxPollInterval))
		interval += 500 * time.Millisecond
		code, out, err = j.checkQueue(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// Status fetches the human-readable queue listing for the submitted cluster
// and passes it through format. A nil format prints the listing and returns
// it unchanged.
func (j *Job) Status(ctx context.Context, format func(string) string) (string, error) {
	if j.cluster == 0 {
		return "", &SubmissionError{Op: "Status"}
	}
	code, out, err := j.runner.Execute(ctx, fmt.Sprintf("%s %d", queryBin, j.cluster), "")
	if err != nil {
		return "", err
	}
	if code != 0 {
		log.Printf("%s exited with %d: %s", queryBin, code, out)
		return "", &BadFormatError{Tool: queryBin}
	}
	if format == nil {
		fmt.Println(out)
		return out, nil
	}
	return format(out), nil
}

// SaveSubmitFile writes the current submission description to filename so it
// can be inspected or submitted manually. Pending attributes are serialized
// but not consumed, and the job can still be submitted afterwards.
func (j *Job) SaveSubmitFile(filename string) error {
	return os.WriteFile(filename, []byte(j.settings.Flush(false)), 0o644)
}

func localUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
