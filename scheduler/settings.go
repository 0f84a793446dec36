package scheduler

import (
	"strconv"
	"strings"
)

// Attribute keys as written into the submit description.
const (
	keyUniverse           = "Universe"
	keyExecutable         = "Executable"
	keyArguments          = "Arguments"
	keyTransferExecutable = "transfer_executable"
	keyInitialDir         = "initialdir"
	keyInput              = "Input"
	keyOutput             = "Output"
	keyError              = "Error"
	keyLog                = "Log"
	keyRequirements       = "Requirements"
	keyConcurrency        = "concurrency_limits"
	keyCPUs               = "request_cpus"
	keyMemory             = "request_memory"
	keyDisk               = "request_disk"
	keyTransferFiles      = "should_transfer_files"
	keyWhenTransferOutput = "when_to_transfer_output"
	keyNotification       = "notification"
	keyNotifyUser         = "notify_user"
)

var validUniverses = []string{
	"vanilla", "standard", "java", "scheduler", "local", "grid", "vm",
}

// Settings is the attribute map for one pending stanza plus the accumulated
// text of stanzas already flushed. Attributes keep insertion order. Flush
// consumes the per-stanza map: attributes set before one stanza do not carry
// to the next unless set again.
type Settings struct {
	keys        []string
	values      map[string]string
	accumulated string
}

func NewSettings() *Settings {
	return &Settings{values: make(map[string]string)}
}

func (s *Settings) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s *Settings) unset(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

func (s *Settings) required(key, name string) (string, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return "", &RequiredSettingError{Setting: name}
}

func (s *Settings) optional(key, name string) (string, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return "", &EmptySettingError{Setting: name}
}

// SetUniverse fails with InvalidUniverseError for anything outside the
// supported enumeration.
func (s *Settings) SetUniverse(universe string) error {
	for _, u := range validUniverses {
		if universe == u {
			s.set(keyUniverse, universe)
			return nil
		}
	}
	return &InvalidUniverseError{Universe: universe}
}

func (s *Settings) Universe() (string, error) {
	return s.required(keyUniverse, "Universe")
}

func (s *Settings) SetExecutable(path string) {
	s.set(keyExecutable, path)
}

func (s *Settings) Executable() (string, error) {
	return s.required(keyExecutable, "Executable")
}

// SetArguments wraps the value in the double quotes the scheduler's new
// argument syntax requires.
func (s *Settings) SetArguments(args string) {
	s.set(keyArguments, `"`+args+`"`)
}

func (s *Settings) Arguments() (string, error) {
	return s.required(keyArguments, "Arguments")
}

func (s *Settings) SetTransferExecutable(transfer bool) {
	s.set(keyTransferExecutable, strconv.FormatBool(transfer))
}

func (s *Settings) TransferExecutable() (bool, error) {
	v, err := s.optional(keyTransferExecutable, "TransferExecutable")
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(v)
}

func (s *Settings) SetInitialDir(dir string) {
	s.set(keyInitialDir, dir)
}

func (s *Settings) InitialDir() (string, error) {
	return s.optional(keyInitialDir, "InitialDir")
}

func (s *Settings) SetInput(path string) {
	s.set(keyInput, path)
}

func (s *Settings) Input() (string, error) {
	return s.optional(keyInput, "Input")
}

func (s *Settings) SetOutput(path string) {
	s.set(keyOutput, path)
}

func (s *Settings) Output() (string, error) {
	return s.optional(keyOutput, "Output")
}

func (s *Settings) SetErrorFile(path string) {
	s.set(keyError, path)
}

func (s *Settings) ErrorFile() (string, error) {
	return s.optional(keyError, "Error")
}

func (s *Settings) SetLog(path string) {
	s.set(keyLog, path)
}

func (s *Settings) Log() (string, error) {
	return s.optional(keyLog, "Log")
}

func (s *Settings) SetRequirements(expr string) {
	s.set(keyRequirements, expr)
}

func (s *Settings) Requirements() (string, error) {
	return s.optional(keyRequirements, "Requirements")
}

// SetMatlabLock toggles the MATLAB concurrency limit, which throttles jobs
// competing for the site's MATLAB licenses.
func (s *Settings) SetMatlabLock(locked bool) {
	if locked {
		s.set(keyConcurrency, "MATLAB")
	} else {
		s.unset(keyConcurrency)
	}
}

func (s *Settings) MatlabLock() (bool, error) {
	v, err := s.optional(keyConcurrency, "MatlabLock")
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(v), "matlab"), nil
}

func (s *Settings) SetCPUs(n int) {
	s.set(keyCPUs, strconv.Itoa(n))
}

func (s *Settings) CPUs() (int, error) {
	v, err := s.optional(keyCPUs, "CPUs")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

func (s *Settings) SetMemoryMB(megabytes int) {
	s.set(keyMemory, strconv.Itoa(megabytes))
}

func (s *Settings) MemoryMB() (int, error) {
	v, err := s.optional(keyMemory, "MemoryMB")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

func (s *Settings) SetDiskMB(megabytes int) {
	s.set(keyDisk, strconv.Itoa(megabytes))
}

func (s *Settings) DiskMB() (int, error) {
	v, err := s.optional(keyDisk, "DiskMB")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

func (s *Settings) SetTransferFiles(when string) {
	s.set(keyTransferFiles, when)
}

func (s *Settings) TransferFiles() (string, error) {
	return s.optional(keyTransferFiles, "TransferFiles")
}

func (s *Settings) SetWhenTransferOutput(when string) {
	s.set(keyWhenTransferOutput, when)
}

func (s *Settings) WhenTransferOutput() (string, error) {
	return s.optional(keyWhenTransferOutput, "WhenTransferOutput")
}

func (s *Settings) SetNotification(when string) {
	s.set(keyNotification, when)
}

func (s *Settings) Notification() (string, error) {
	return s.optional(keyNotification, "Notification")
}

func (s *Settings) SetNotifyUser(address string) {
	s.set(keyNotifyUser, address)
}

func (s *Settings) NotifyUser() (string, error) {
	return s.optional(keyNotifyUser, "NotifyUser")
}

// Flush serializes every currently set attribute as one "key = value" line,
// appends the stanza to the accumulated description and returns the whole
// description. When clear is true the per-stanza map is consumed, so the
// next stanza starts blank while the accumulated text keeps growing.
func (s *Settings) Flush(clear bool) string {
	var b strings.Builder
	b.WriteString(s.accumulated)
	for _, k := range s.keys {
		b.WriteString(k)
		b.WriteString(" = ")
		b.WriteString(s.values[k])
		b.WriteString("\n")
	}
	all := b.String()
	if clear {
		s.keys = nil
		s.values = make(map[string]string)
		s.accumulated = all
	}
	return all
}

// AppendQueue terminates the current stanza with a Queue directive, with a
// repeat count when times is not 1.
func (s *Settings) AppendQueue(times int) {
	if times != 1 {
		s.accumulated += "Queue " + strconv.Itoa(times) + "\n"
	} else {
		s.accumulated += "Queue\n"
	}
}
