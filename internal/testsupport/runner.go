package testsupport

import (
	"context"
	"strings"
	"time"

	"cherryctl/internal/execx"
)

// Call records a single command invocation seen by the fake runner.
type Call struct {
	Argv    []string
	Dir     string
	Timeout time.Duration
}

// Line renders the invocation as a single string for easy matching.
func (c Call) Line() string {
	return strings.Join(c.Argv, " ")
}

// FakeRunner is a scripted execx.Runner. Handle decides the result for each
// invocation; when nil every command succeeds with exit code 0.
type FakeRunner struct {
	Calls  []Call
	Handle func(call Call) execx.Result
	Err    error
}

var _ execx.Runner = (*FakeRunner)(nil)

// Run records the call and returns the scripted exit code.
func (f *FakeRunner) Run(_ context.Context, argv []string, dir string, _ []string) (int, error) {
	result := f.record(Call{Argv: argv, Dir: dir})
	return result.ExitCode, f.Err
}

// RunCapture records the call and returns the scripted result.
func (f *FakeRunner) RunCapture(_ context.Context, argv []string, dir string, timeout time.Duration) (execx.Result, error) {
	result := f.record(Call{Argv: argv, Dir: dir, Timeout: timeout})
	return result, f.Err
}

func (f *FakeRunner) record(call Call) execx.Result {
	f.Calls = append(f.Calls, call)
	if f.Handle == nil {
		return execx.Result{}
	}
	return f.Handle(call)
}

// Lines returns every recorded invocation as joined command lines.
func (f *FakeRunner) Lines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, call := range f.Calls {
		lines = append(lines, call.Line())
	}
	return lines
}
