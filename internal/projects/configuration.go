package projects

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const (
	defaultWorkspaceDirectoryConstant = "~/projects"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration captures the workspace settings shared by start, open and done.
type CommandConfiguration struct {
	WorkspaceDirectory string `mapstructure:"directory" yaml:"directory"`
	SourceURL          string `mapstructure:"source" yaml:"source"`
	Editor             string `mapstructure:"editor" yaml:"editor"`
}

// DefaultCommandConfiguration provides baseline workspace settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		WorkspaceDirectory: defaultWorkspaceDirectoryConstant,
		SourceURL:          "",
		Editor:             "",
	}
}

// DefaultConfigurationValues flattens DefaultCommandConfiguration into viper
// default keys below the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	decoded := map[string]any{}
	if decodeError := mapstructure.Decode(DefaultCommandConfiguration(), &decoded); decodeError != nil {
		return map[string]any{}
	}

	trimmedPrefix := strings.Trim(strings.TrimSpace(prefix), configurationKeySeparatorConstant)
	if len(trimmedPrefix) == 0 {
		return decoded
	}

	prefixed := make(map[string]any, len(decoded))
	for key, value := range decoded {
		prefixed[trimmedPrefix+configurationKeySeparatorConstant+key] = value
	}
	return prefixed
}

// Sanitize trims configuration values and restores the default workspace directory when it is blank.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.WorkspaceDirectory = strings.TrimSpace(configuration.WorkspaceDirectory)
	if len(sanitized.WorkspaceDirectory) == 0 {
		sanitized.WorkspaceDirectory = defaultWorkspaceDirectoryConstant
	}
	sanitized.SourceURL = strings.TrimSpace(configuration.SourceURL)
	sanitized.Editor = strings.TrimSpace(configuration.Editor)

	return sanitized
}
