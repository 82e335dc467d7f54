package projects

import (
	"strings"

	"github.com/temirov/workon/internal/repos/shared"
)

const (
	sourcePathSeparatorConstant = "/"
	gitRepositorySuffixConstant = ".git"
)

// BuildSourceURL joins the base source location, the project name and the
// ".git" suffix. Trailing slashes on the base are ignored.
func BuildSourceURL(baseSource string, project shared.ProjectName) string {
	trimmedBase := strings.TrimRight(strings.TrimSpace(baseSource), sourcePathSeparatorConstant)
	return trimmedBase + sourcePathSeparatorConstant + project.String() + gitRepositorySuffixConstant
}
