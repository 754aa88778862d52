package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codejudge.net/internal/adapter/crypto"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/domain"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunAccepted(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "builtin")
	file := writeFile(t, "add.js", "return a + b;")

	out, err := executeRoot(t, "run", "--problem", "1", "--file", file)
	require.NoError(t, err)

	var result domain.SubmissionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "1", result.ProblemID)
	assert.Equal(t, domain.StatusAccepted, result.Verdict.Status)
	assert.True(t, result.Report.AllPassed)
}

func TestRunRejected(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "builtin")
	file := writeFile(t, "sub.js", "return a - b;")

	_, err := executeRoot(t, "run", "--problem", "1", "--file", file)
	assert.EqualError(t, err, "Wrong answer on test case 1")

	_, err = executeRoot(t, "run", "--problem", "404", "--file", file)
	assert.EqualError(t, err, "Problem not found.")
}

func TestRunUsesYamlCatalog(t *testing.T) {
	catalog := writeFile(t, "problems.yaml", `
problems:
  - id: "max"
    title: Maximum
    params: [xs]
    testCases:
      - input: [[3, 9, 2]]
        expectedOutput: 9
`)
	t.Setenv("CATALOG_SOURCE", "yaml")
	t.Setenv("CATALOG_FILE", catalog)
	file := writeFile(t, "max.js", "return Math.max.apply(null, xs);")

	out, err := executeRoot(t, "run", "--problem", "max", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ACCEPTED"`)
}

func TestUnknownCatalogSource(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "mongo")
	file := writeFile(t, "add.js", "return a + b;")

	_, err := executeRoot(t, "run", "--problem", "1", "--file", file)
	assert.ErrorContains(t, err, "unknown catalog source")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.env"), []byte("JUDGE_TEST_VALUE=from-file\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() { _ = os.Unsetenv("JUDGE_TEST_VALUE") })

	require.NoError(t, loadEnv("local"))
	assert.Equal(t, "from-file", os.Getenv("JUDGE_TEST_VALUE"))
	assert.NoError(t, loadEnv(""))
	assert.Error(t, loadEnv("missing"))
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	out, err := executeRoot(t, "token", "--subject", "ci", "--ttl", "5m")
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	subject, err := crypto.NewJWTService(&config.JwtConfig{Secret: "s3cret"}).VerifyTokenHMAC(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "ci", subject)
}
