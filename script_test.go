package stepwise_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stepwise-sh/stepwise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wizardBinary string

func TestMain(m *testing.M) {
	// Build the wizard fixture binary.
	dir, err := os.MkdirTemp("", "stepwise-wizardbin-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	binPath := filepath.Join(dir, "wizardbin")
	cmd := exec.Command("go", "build", "-o", binPath, "./internal/wizardbin")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build wizardbin: %v\n", err)
		os.Exit(1)
	}

	wizardBinary = binPath
	os.Exit(m.Run())
}

// recordReporter captures RunScript progress for assertions.
type recordReporter struct {
	mu      sync.Mutex
	starts  []int
	matches []int
	drained bool
}

func (r *recordReporter) StepStart(i, total int, step stepwise.Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, i)
}

func (r *recordReporter) StepMatched(i, total int, step stepwise.Step, matched string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = append(r.matches, i)
}

func (r *recordReporter) Draining() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drained = true
}

func (r *recordReporter) state() (starts, matches []int, drained bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.starts...), append([]int(nil), r.matches...), r.drained
}

func TestRunScriptCompletes(t *testing.T) {
	reporter := &recordReporter{}
	sess := startSession(t, wizardBinary, stepwise.WithReporter(reporter))

	code, err := stepwise.RunScript(sess, stepwise.Onboard(), stepwise.WithinTimeout(10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	starts, matches, drained := reporter.state()
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, want, starts)
	assert.Equal(t, want, matches)
	assert.True(t, drained)
}

func TestRunScriptReportsChildExitStatus(t *testing.T) {
	sess := startSession(t, wizardBinary+" -exit 5")

	code, err := stepwise.RunScript(sess, stepwise.Onboard(), stepwise.WithinTimeout(10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 5, code)
}

func TestRunScriptAbortsOnStepTimeout(t *testing.T) {
	reporter := &recordReporter{}
	sess := startSession(t, wizardBinary+" -stall 4", stepwise.WithReporter(reporter))

	_, err := stepwise.RunScript(sess, stepwise.Onboard(), stepwise.WithinTimeout(time.Second))

	var stepErr *stepwise.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 4, stepErr.Index)

	var expectErr *stepwise.ExpectError
	require.ErrorAs(t, err, &expectErr)
	assert.Equal(t, stepwise.KindTimeout, expectErr.Kind)

	// No response was sent for the stalled step or any later step.
	starts, matches, drained := reporter.state()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, starts)
	assert.Equal(t, []int{0, 1, 2, 3}, matches)
	assert.False(t, drained)
}

func TestRunScriptAbortsOnEOF(t *testing.T) {
	sess := startSession(t, wizardBinary+" -die 6")

	_, err := stepwise.RunScript(sess, stepwise.Onboard(), stepwise.WithinTimeout(10*time.Second))

	var stepErr *stepwise.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 6, stepErr.Index)

	var expectErr *stepwise.ExpectError
	require.ErrorAs(t, err, &expectErr)
	assert.Equal(t, stepwise.KindEOF, expectErr.Kind)
}

func TestRunScriptDrainTimeout(t *testing.T) {
	sess := startSession(t, wizardBinary+" -linger",
		stepwise.WithDrainTimeout(500*time.Millisecond))

	_, err := stepwise.RunScript(sess, stepwise.Onboard(), stepwise.WithinTimeout(10*time.Second))

	var stepErr *stepwise.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, len(stepwise.Onboard()), stepErr.Index, "drain failures report index len(script)")

	var expectErr *stepwise.ExpectError
	require.ErrorAs(t, err, &expectErr)
	assert.Equal(t, stepwise.KindTimeout, expectErr.Kind)
}

// The fixture verifies every response byte for byte and exits 2 on the first
// divergence, so a clean completion here proves the raw control sequences
// ("\r", "\x1b[B\r", " \r", ...) arrive exactly as scripted.
func TestResponsesArriveByteExact(t *testing.T) {
	sess := startSession(t, wizardBinary)

	code, err := stepwise.RunScript(sess, stepwise.Onboard(), stepwise.WithinTimeout(10*time.Second))
	require.NoError(t, err)
	require.Equal(t, 0, code, "fixture exits 2 on any response byte mismatch")
}

// Walks only the first three steps by hand: continue confirmation, mode
// selection, provider selection.
func TestFirstThreePrompts(t *testing.T) {
	sess := startSession(t, wizardBinary)

	script := stepwise.Onboard()[:3]
	wantMatches := []string{"Continue?", "Onboarding mode", "Model/auth provider"}

	for i, step := range script {
		matched, err := sess.Expect(stepwise.Pattern(step.Expect), stepwise.WithinTimeout(10*time.Second))
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, wantMatches[i], matched)
		require.NoError(t, sess.Send(step.Send))
	}
}

func TestOnboardTranscript(t *testing.T) {
	sess := startSession(t, wizardBinary)

	code, err := stepwise.RunScript(sess, stepwise.Onboard(), stepwise.WithinTimeout(10*time.Second))
	require.NoError(t, err)
	require.Equal(t, 0, code)

	sess.MatchTranscript(t, "onboard")
}

func TestRunScriptAgainstShellChild(t *testing.T) {
	// A script can drive any PTY child, not just the wizard fixture.
	sess := startSession(t, `printf 'Name: '; read -r name; printf 'hello %s\n' "$name"`)

	code, err := stepwise.RunScript(sess, stepwise.Script{
		{Expect: `Name:`, Send: "world" + stepwise.Enter, Desc: "answer the name prompt"},
		{Expect: `hello world`, Send: "", Desc: "greeting printed"},
	}, stepwise.WithinTimeout(10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}
