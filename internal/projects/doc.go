// Package projects implements the project lifecycle: start clones a project
// into the workspace and optionally opens it, open launches an editor on an
// existing project, and done removes finished projects once the git safety
// checks pass.
package projects
