package scheduler

import "fmt"

// InvalidUniverseError reports a universe outside the supported set.
type InvalidUniverseError struct {
	Universe string
}

func (e *InvalidUniverseError) Error() string {
	return fmt.Sprintf("%s is not a valid universe", e.Universe)
}

// BadFormatError reports that an external tool's output did not match its
// expected contract.
type BadFormatError struct {
	Tool string
}

func (e *BadFormatError) Error() string {
	return fmt.Sprintf("unable to parse invalid output from process %q", e.Tool)
}

// SubmissionError reports an operation that needs a submitted job being
// called before Submit succeeded.
type SubmissionError struct {
	Op string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("cannot call %s because the job has not been submitted yet", e.Op)
}

// RequiredSettingError reports a mandatory attribute read before being set.
type RequiredSettingError struct {
	Setting string
}

func (e *RequiredSettingError) Error() string {
	return fmt.Sprintf("the setting %s should have been set before doing this", e.Setting)
}

// EmptySettingError reports an optional attribute read before being set.
// Unlike RequiredSettingError this usually means "not applicable".
type EmptySettingError struct {
	Setting string
}

func (e *EmptySettingError) Error() string {
	return fmt.Sprintf("the optional setting %s has not been set yet", e.Setting)
}

// BadQuotesError reports a command line whose quoting would corrupt the
// submission description.
type BadQuotesError struct {
	Char string
}

func (e *BadQuotesError) Error() string {
	if e.Char == `"` {
		return `the supplied string contains a double quote (") that is not escaped properly; ` +
			`surround the whole argument with single quotes instead, or double the quote ("")`
	}
	return fmt.Sprintf("the supplied string contains an invalid %s character", e.Char)
}
