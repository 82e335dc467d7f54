// Package gitrepo inspects local working copies through the git binary.
//
// RepositoryInspector answers whether a project directory still holds stashes,
// unpushed commits or unstaged changes, and clones new working copies. The
// inspection methods never fail: a directory that is not a repository, or a
// git invocation that errors, reads as "nothing to lose". Clone failures are
// classified from git's standard error by TranslateCloneFailure.
package gitrepo
