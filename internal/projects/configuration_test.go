package projects

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigurationValues(t *testing.T) {
	require.Equal(t, map[string]any{
		"workspace.directory": "~/projects",
		"workspace.source":    "",
		"workspace.editor":    "",
	}, DefaultConfigurationValues("workspace"))

	require.Equal(t, map[string]any{
		"directory": "~/projects",
		"source":    "",
		"editor":    "",
	}, DefaultConfigurationValues(""))
}

func TestConfigurationSanitize(t *testing.T) {
	sanitized := CommandConfiguration{WorkspaceDirectory: "  ", SourceURL: " git@github.com:owner ", Editor: " code\n"}.Sanitize()
	require.Equal(t, CommandConfiguration{WorkspaceDirectory: "~/projects", SourceURL: "git@github.com:owner", Editor: "code"}, sanitized)
}

func TestBuildSourceURL(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		expected string
	}{
		{name: "scp_style", source: "git@github.com:owner", expected: "git@github.com:owner/demo.git"},
		{name: "trailing_slashes", source: "https://example.com/team//", expected: "https://example.com/team/demo.git"},
		{name: "local_path", source: "/srv/git", expected: "/srv/git/demo.git"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, BuildSourceURL(testCase.source, "demo"))
		})
	}
}
