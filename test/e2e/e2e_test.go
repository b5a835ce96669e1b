package e2e_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEndToEnd_FileInputOutput renders a nested document from a file
func TestEndToEnd_FileInputOutput(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "canonjson-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	jsonContent := `{
		"id": 12345,
		"created_at": "2023-05-20T14:56:23Z",
		"updated_at": null,
		"stats": {
			"success_rate": 0.9999,
			"requests": 1234567
		},
		"users": [
			{"name": "Alice", "last_login": "2023-05-19T10:30:00"},
			{"name": "Bob", "birthday": "1990-01-31"}
		]
	}`

	jsonFile := filepath.Join(tempDir, "complex.json")
	err = os.WriteFile(jsonFile, []byte(jsonContent), 0644)
	require.NoError(t, err)

	outputFile := filepath.Join(tempDir, "complex_output.json")

	cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", outputFile, "--parse-dates")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	rendered, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	want := `{"created_at":"2023-05-20T14:56:23+00:00","id":12345,` +
		`"stats":{"requests":1234567,"success_rate":"0.9999"},"updated_at":null,` +
		`"users":[{"last_login":"2023-05-19T10:30:00","name":"Alice"},{"birthday":"1990-01-31","name":"Bob"}]}`
	assert.Equal(t, want, strings.TrimSpace(string(rendered)))
}

// TestEndToEnd_StdinPathEnvelope reads stdin, selects a path and wraps it
func TestEndToEnd_StdinPathEnvelope(t *testing.T) {
	jsonContent := `{"orders": [{"total": 10.00000001, "items": ["a", "b"]}]}`

	cmd := exec.Command("go", "run", "../../main.go", "-p", "orders.0", "-e")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	assert.Equal(t,
		`{"data":{"items":["a","b"],"total":"10.00000001"},"type":"json"}`,
		strings.TrimSpace(stdout.String()),
	)
}

// TestEndToEnd_InvalidJSON reports a parsing error and exits non-zero
func TestEndToEnd_InvalidJSON(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(`{"broken": }`)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "JSON parsing error")
}

// TestEndToEnd_ConfigFile picks up options from a config file
func TestEndToEnd_ConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "canonjson.yml")
	err := os.WriteFile(configFile, []byte("decode:\n  parse_dates: true\nenvelope:\n  enabled: true\n  type: \"event\"\n"), 0644)
	require.NoError(t, err)

	cmd := exec.Command("go", "run", "../../main.go", "-c", configFile)
	cmd.Stdin = strings.NewReader(`{"2024-03-05T10:00:00.5": 1}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err = cmd.Run()
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"2024-03-05T10:00:00.500000":1},"type":"event"}`, strings.TrimSpace(stdout.String()))
}
