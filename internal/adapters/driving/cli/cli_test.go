package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hedwig/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores flag variables between executions of the shared rootCmd.
func resetFlags() {
	verboseFlag = false
	logFormatFlag = "text"
	envFileFlag = ""

	monitorRepositories = file.DefaultProjectsFile
	monitorKeywords = ""
	monitorMode = string(domain.AggregationGroupCount)
	monitorPagination = ""
	monitorCaseSensitive = false
	monitorSinceDays = 0
	monitorFormat = formatSummary
	monitorMetricsFile = ""
	monitorThrottle = 0
	monitorRetries = 0
	monitorToken = ""
	monitorUsername = ""
	monitorPassword = ""

	keywordsFile = ""

	mcpRepositories = file.DefaultProjectsFile
	mcpKeywords = ""
	mcpPort = 0
	progressFlag = false
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
