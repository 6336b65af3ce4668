// Package sandbox runs candidate-submitted Python code in a separate OS
// process with a wall-clock timeout. The safety gate is a textual deny-list,
// the minimum bar for rejecting obviously dangerous submissions; it is not a
// semantic isolation boundary.
package sandbox

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"mockmate/internal/model"
)

// TimeoutMessage is the stderr text reported when a run exceeds its wall
// clock limit.
const TimeoutMessage = "Execution timeout (possible infinite loop)"

// dangerousPatterns rejects module imports, process/network/serialization
// primitives and reflection hooks. Matched case-insensitively as substrings.
var dangerousPatterns = []string{
	"import os",
	"import sys",
	"__import__",
	"eval(",
	"exec(",
	"open(",
	"subprocess",
	"system(",
	"shutil",
	"socket",
	"requests",
	"urllib",
	"pickle",
	"yaml",
	"json.loads",
	"compile",
	"globals",
	"locals",
}

// Result is the captured outcome of one sandboxed run.
type Result struct {
	Stdout  string
	Stderr  string
	Success bool
}

// Sandbox executes Python submissions in isolated child processes.
type Sandbox struct {
	pythonBin string
	timeout   time.Duration
}

// New creates a sandbox. pythonBin is the interpreter to invoke; timeout is
// the default wall-clock limit per execution.
func New(pythonBin string, timeout time.Duration) *Sandbox {
	if pythonBin == "" {
		pythonBin = "python3"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Sandbox{pythonBin: pythonBin, timeout: timeout}
}

// IsSafe reports whether the submission passes the deny-list gate. A false
// result is a policy rejection, decided before any execution.
func IsSafe(code string) bool {
	lower := strings.ToLower(code)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}

// Execute writes the submission to a fresh temporary file and runs it as a
// child process. The temporary file is removed on every exit path. On
// timeout the process is killed and the result carries TimeoutMessage with
// Success=false; a timeout is a normal failure, not an error.
func (s *Sandbox) Execute(ctx context.Context, code string) Result {
	tmp, err := os.CreateTemp("", "submission-*.py")
	if err != nil {
		return Result{Stderr: fmt.Sprintf("Execution error: %v", err)}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(code); err != nil {
		tmp.Close()
		return Result{Stderr: fmt.Sprintf("Execution error: %v", err)}
	}
	if err := tmp.Close(); err != nil {
		return Result{Stderr: fmt.Sprintf("Execution error: %v", err)}
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.pythonBin, tmpName)
	// Clear the import search path to shrink the available stdlib surface.
	cmd.Env = append(os.Environ(), "PYTHONPATH=")

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return Result{Stderr: TimeoutMessage}
	}
	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			// Interpreter missing or process could not start.
			return Result{Stderr: fmt.Sprintf("Execution error: %v", runErr)}
		}
	}

	return Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Success: runErr == nil,
	}
}

// RunTestCases appends a guarded comparison block per test case to the
// submission and executes the combined program, producing one PASS/FAIL/ERROR
// line per case. The safety gate is re-applied to each combined program.
func (s *Sandbox) RunTestCases(ctx context.Context, code string, cases []model.TestCase) []string {
	results := make([]string, 0, len(cases))
	for i, tc := range cases {
		harness := fmt.Sprintf(`%s

# Test case %d
try:
    result = %s
    expected = %s
    if result == expected:
        print("Test %d: PASS")
    else:
        print(f"Test %d: FAIL - Got {result}, Expected {expected}")
except Exception as e:
    print(f"Test %d: ERROR - {str(e)}")
`, code, i, tc.FunctionCall, tc.Expected, i, i, i)

		if !IsSafe(harness) {
			results = append(results, fmt.Sprintf("Test %d: REJECTED - Unsafe code detected", i))
			continue
		}

		res := s.Execute(ctx, harness)
		if res.Stderr != "" {
			msg := res.Stderr
			if len(msg) > 100 {
				msg = msg[:100]
			}
			results = append(results, fmt.Sprintf("Test %d: ERROR - %s", i, msg))
			continue
		}
		results = append(results, strings.TrimSpace(res.Stdout))
	}
	return results
}

// SampleTestCases covers the problems the default generator falls back to.
var SampleTestCases = map[string][]model.TestCase{
	"find_max": {
		{FunctionCall: "find_max([1, 5, 3, 9, 2])", Expected: "9"},
		{FunctionCall: "find_max([-1, -5, -3])", Expected: "-1"},
		{FunctionCall: "find_max([42])", Expected: "42"},
	},
	"reverse_string": {
		{FunctionCall: "reverse_string('hello')", Expected: "'olleh'"},
		{FunctionCall: "reverse_string('python')", Expected: "'nohtyp'"},
		{FunctionCall: "reverse_string('')", Expected: "''"},
	},
	"factorial": {
		{FunctionCall: "factorial(5)", Expected: "120"},
		{FunctionCall: "factorial(0)", Expected: "1"},
		{FunctionCall: "factorial(1)", Expected: "1"},
	},
}
