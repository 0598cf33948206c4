package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writePlanFixture(home))

	stdout, stderr, err := runIPlan(t, binaryPath, home, "version")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.NotEmpty(t, stdout)

	_, stderr, err = runIPlan(t, binaryPath, home, "plan", "import", filepath.Join(home, "plan.json"))
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runIPlan(t, binaryPath, home, "plan", "done", "--chapter", "1", "--topic", "1")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runIPlan(t, binaryPath, home, "plan", "show", "--details")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Smoke plan")
	assert.Contains(t, stdout, "[x] Closures")

	info, err := os.Stat(filepath.Join(home, ".iplan", "plan.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "iplan-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/iplan")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build iplan binary: %s", string(output))
	return binaryPath
}

func runIPlan(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(), "HOME="+home, "OPENAI_API_KEY=")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writePlanFixture(home string) error {
	plan := `{
  "name": "Smoke plan",
  "chapters": [
    {
      "id": 1,
      "name": "1. Functions",
      "done": false,
      "topics": [
        {"id": 0, "title": "Basics", "path": "Basics", "done": false, "children": [
          {"id": 1, "title": "Closures", "path": "Basics > Closures", "parent_id": 0, "done": false}
        ]}
      ]
    }
  ]
}
`

	return os.WriteFile(filepath.Join(home, "plan.json"), []byte(plan), 0o600)
}
