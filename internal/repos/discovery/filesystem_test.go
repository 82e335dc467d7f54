package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/workon/internal/repos/discovery"
)

const (
	apiProjectDirectoryName       = "api"
	webProjectDirectoryName       = "web"
	nestedDirectoryName           = "nested"
	strayNotesFileName            = "notes.txt"
	strayArchiveFileName          = "backup.tar"
	linkedProjectName             = "linked"
	danglingLinkName              = "dangling"
	projectDirectoryPermissions   = 0o755
	strayFilePermissions          = 0o644
	missingWorkspaceDirectoryName = "missing"
)

func TestDiscoverWorkspacePartitionsEntries(testInstance *testing.T) {
	workspaceRoot := testInstance.TempDir()

	require.NoError(testInstance, os.MkdirAll(filepath.Join(workspaceRoot, webProjectDirectoryName, nestedDirectoryName), projectDirectoryPermissions))
	require.NoError(testInstance, os.MkdirAll(filepath.Join(workspaceRoot, apiProjectDirectoryName), projectDirectoryPermissions))
	require.NoError(testInstance, os.WriteFile(filepath.Join(workspaceRoot, strayNotesFileName), []byte("todo"), strayFilePermissions))
	require.NoError(testInstance, os.WriteFile(filepath.Join(workspaceRoot, strayArchiveFileName), nil, strayFilePermissions))

	discoverer := discovery.NewWorkspaceEntryDiscoverer(nil)
	entries, discoveryError := discoverer.DiscoverWorkspace(workspaceRoot)
	require.NoError(testInstance, discoveryError)

	require.Equal(testInstance, []string{apiProjectDirectoryName, webProjectDirectoryName}, entries.ProjectNames)
	require.Equal(testInstance, []string{strayArchiveFileName, strayNotesFileName}, entries.StrayFiles)
}

func TestDiscoverWorkspaceFollowsSymlinks(testInstance *testing.T) {
	workspaceRoot := testInstance.TempDir()
	externalProject := testInstance.TempDir()

	if linkError := os.Symlink(externalProject, filepath.Join(workspaceRoot, linkedProjectName)); linkError != nil {
		testInstance.Skipf("symlinks unavailable: %v", linkError)
	}
	require.NoError(testInstance, os.Symlink(filepath.Join(workspaceRoot, "absent"), filepath.Join(workspaceRoot, danglingLinkName)))

	entries, discoveryError := discovery.NewWorkspaceEntryDiscoverer(nil).DiscoverWorkspace(workspaceRoot)
	require.NoError(testInstance, discoveryError)

	require.Equal(testInstance, []string{linkedProjectName}, entries.ProjectNames)
	require.Equal(testInstance, []string{danglingLinkName}, entries.StrayFiles)
}

func TestDiscoverWorkspaceReportsUnreadableRoot(testInstance *testing.T) {
	workspaceRoot := filepath.Join(testInstance.TempDir(), missingWorkspaceDirectoryName)

	_, discoveryError := discovery.NewWorkspaceEntryDiscoverer(nil).DiscoverWorkspace(workspaceRoot)
	require.ErrorIs(testInstance, discoveryError, os.ErrNotExist)
}

func TestDiscoverWorkspaceEmptyRoot(testInstance *testing.T) {
	entries, discoveryError := discovery.NewWorkspaceEntryDiscoverer(nil).DiscoverWorkspace(testInstance.TempDir())
	require.NoError(testInstance, discoveryError)
	require.Empty(testInstance, entries.ProjectNames)
	require.Empty(testInstance, entries.StrayFiles)
}
