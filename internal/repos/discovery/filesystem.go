package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/samber/lo"

	"github.com/temirov/workon/internal/repos/filesystem"
	"github.com/temirov/workon/internal/repos/shared"
)

// WorkspaceEntryDiscoverer classifies the immediate children of a workspace root.
type WorkspaceEntryDiscoverer struct {
	fileSystem shared.FileSystem
}

type classifiedEntry struct {
	name        string
	isDirectory bool
}

// NewWorkspaceEntryDiscoverer constructs a discoverer backed by the provided filesystem.
// A nil filesystem falls back to the operating system.
func NewWorkspaceEntryDiscoverer(fileSystem shared.FileSystem) *WorkspaceEntryDiscoverer {
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	return &WorkspaceEntryDiscoverer{fileSystem: fileSystem}
}

// DiscoverWorkspace lists the workspace root without descending into it.
// Directories (including symlinks resolving to directories) become projects;
// everything else, dangling symlinks included, is reported as a stray file.
// Listing failures are returned unchanged.
func (discoverer *WorkspaceEntryDiscoverer) DiscoverWorkspace(workspaceRoot string) (shared.WorkspaceEntries, error) {
	directoryEntries, readError := discoverer.fileSystem.ReadDir(workspaceRoot)
	if readError != nil {
		return shared.WorkspaceEntries{}, readError
	}

	classified := lo.Map(directoryEntries, func(directoryEntry fs.DirEntry, _ int) classifiedEntry {
		return classifiedEntry{
			name:        directoryEntry.Name(),
			isDirectory: discoverer.resolvesToDirectory(workspaceRoot, directoryEntry),
		}
	})
	isProject := func(entry classifiedEntry, _ int) bool { return entry.isDirectory }
	projects := lo.Filter(classified, isProject)
	strays := lo.Reject(classified, isProject)

	entries := shared.WorkspaceEntries{
		ProjectNames: lo.Map(projects, func(entry classifiedEntry, _ int) string { return entry.name }),
		StrayFiles:   lo.Map(strays, func(entry classifiedEntry, _ int) string { return entry.name }),
	}
	sort.Strings(entries.ProjectNames)
	sort.Strings(entries.StrayFiles)
	return entries, nil
}

func (discoverer *WorkspaceEntryDiscoverer) resolvesToDirectory(workspaceRoot string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return directoryEntry.IsDir()
	}
	targetInfo, statError := discoverer.fileSystem.Stat(filepath.Join(workspaceRoot, directoryEntry.Name()))
	if statError != nil {
		return false
	}
	return targetInfo.IsDir()
}
