package e2e_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covscore/covscore/internal/domain"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "covscore-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "covscore")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/covscore")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/reports", name))
	return abs
}

// run executes the binary and returns stdout, stderr and the exit code.
func run(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return stdout.String(), stderr.String(), exitCode
}

// --- Analyze Tests ---

func TestE2E_Analyze(t *testing.T) {
	out, _, code := run(t, "", "analyze", fixturePath("coverage-summary.json"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "covscore")
	assert.Contains(t, out, "Fair Coverage")
}

func TestE2E_AnalyzeJSON(t *testing.T) {
	out, _, code := run(t, "", "analyze", fixturePath("app/coverage/coverage-final.json"), "--format", "json")
	assert.Equal(t, 0, code)

	var a domain.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, domain.FormatDetailed, a.Format)
	assert.Len(t, a.Result.Files, 2)
	assert.Len(t, a.Score.Breakdown, 4)
	assert.True(t, a.Score.OverallPercentage >= 0 && a.Score.OverallPercentage <= 100)
}

func TestE2E_AnalyzeStdinGzip(t *testing.T) {
	data, err := os.ReadFile(fixturePath("coverage-summary.json"))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	out, _, code := run(t, buf.String(), "analyze", "-", "--format", "json")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"format": "summary"`)
}

func TestE2E_AnalyzeCI(t *testing.T) {
	_, stderr, code := run(t, "", "analyze", fixturePath("coverage-summary.json"), "--ci", "--min", "99")
	assert.Equal(t, 1, code, "should exit 1 when below minimum")
	assert.Contains(t, stderr, "coverage gate failed")
}

func TestE2E_AnalyzeInvalidInput(t *testing.T) {
	_, stderr, code := run(t, "{not json", "analyze")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid JSON")

	_, stderr, code = run(t, "{}", "analyze")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no coverage data found")
}

func TestE2E_Version(t *testing.T) {
	out, _, code := run(t, "", "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "covscore")
}
