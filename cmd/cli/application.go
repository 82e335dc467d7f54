package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/workon/internal/projects"
	"github.com/temirov/workon/internal/utils"
	pathutils "github.com/temirov/workon/internal/utils/path"
)

const (
	applicationNameConstant                 = "workon"
	applicationShortDescriptionConstant     = "Start, open and finish project working copies"
	applicationLongDescriptionConstant      = "workon clones projects into a workspace directory, opens them in your editor, and removes them once no stashes, unpushed commits or unstaged changes are left behind."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	logFileFlagNameConstant                 = "log-file"
	logFileFlagUsageConstant                = "Additionally write logs to this file, rotated by size."
	printConfigFlagNameConstant             = "print-config"
	printConfigFlagUsageConstant            = "Print the effective configuration as YAML and exit."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	commonLogFileConfigKeyConstant          = commonConfigurationKeyConstant + ".log_file"
	commonLogMaxSizeConfigKeyConstant       = commonConfigurationKeyConstant + ".log_max_size_mb"
	commonLogMaxBackupsConfigKeyConstant    = commonConfigurationKeyConstant + ".log_max_backups"
	commonLogMaxAgeConfigKeyConstant        = commonConfigurationKeyConstant + ".log_max_age_days"
	workspaceConfigurationKeyConstant       = "workspace"
	environmentPrefixConstant               = "WORKON"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationWorkspaceFieldConstant     = "workspace_directory"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	configurationPrintErrorTemplateConstant = "unable to print configuration: %w"
	configurationSourceCommentTemplate      = "# configuration file: %s\n"
	environmentOverridesCommentTemplate     = "# environment overrides: %s\n"
	environmentOverridesSeparatorConstant   = ", "
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	subcommandBuildErrorTemplateConstant    = "unable to build command: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationDirectoryConstant      = ".config"
	defaultLogMaxSizeMegabytesConstant      = 10
	defaultLogMaxBackupsConstant            = 3
	defaultLogMaxAgeDaysConstant            = 28
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common    ApplicationCommonConfiguration `mapstructure:"common" yaml:"common"`
	Workspace projects.CommandConfiguration  `mapstructure:"workspace" yaml:"workspace"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel            string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat           string `mapstructure:"log_format" yaml:"log_format"`
	LogFile             string `mapstructure:"log_file" yaml:"log_file"`
	LogMaxSizeMegabytes int    `mapstructure:"log_max_size_mb" yaml:"log_max_size_mb"`
	LogMaxBackups       int    `mapstructure:"log_max_backups" yaml:"log_max_backups"`
	LogMaxAgeDays       int    `mapstructure:"log_max_age_days" yaml:"log_max_age_days"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	homeExpander           *pathutils.HomeExpander
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	logFileFlagValue       string
	printConfiguration     bool
	commandContextAccessor utils.CommandContextAccessor
	subcommandBuildErrors  []error
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		homeExpander:           pathutils.NewHomeExpander(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFileFlagValue, logFileFlagNameConstant, "", logFileFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.printConfiguration, printConfigFlagNameConstant, false, printConfigFlagUsageConstant)

	projectsBuilder := projects.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() projects.CommandConfiguration {
			return application.configuration.Workspace
		},
		HomeExpander: application.homeExpander,
	}
	application.rootCommand = cobraCommand
	application.registerSubcommands(
		projectsBuilder.BuildStartCommand,
		projectsBuilder.BuildOpenCommand,
		projectsBuilder.BuildDoneCommand,
	)

	return application
}

type subcommandBuilder func() (*cobra.Command, error)

func (application *Application) registerSubcommands(builders ...subcommandBuilder) {
	for _, build := range builders {
		subcommand, buildError := build()
		if buildError != nil {
			application.subcommandBuildErrors = append(application.subcommandBuildErrors, buildError)
			continue
		}
		application.rootCommand.AddCommand(subcommand)
	}
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
// A subcommand that failed to build aborts execution.
func (application *Application) Execute() error {
	if len(application.subcommandBuildErrors) > 0 {
		return fmt.Errorf(subcommandBuildErrorTemplateConstant, errors.Join(application.subcommandBuildErrors...))
	}

	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if homeDirectory, homeDirectoryError := os.UserHomeDir(); homeDirectoryError == nil && len(homeDirectory) > 0 {
		searchPaths = append(searchPaths, filepath.Join(homeDirectory, userConfigurationDirectoryConstant, applicationNameConstant))
	}
	return searchPaths
}

func defaultConfigurationValues() map[string]any {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:      string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant:     string(utils.LogFormatStructured),
		commonLogFileConfigKeyConstant:       "",
		commonLogMaxSizeConfigKeyConstant:    defaultLogMaxSizeMegabytesConstant,
		commonLogMaxBackupsConfigKeyConstant: defaultLogMaxBackupsConstant,
		commonLogMaxAgeConfigKeyConstant:     defaultLogMaxAgeDaysConstant,
	}
	for configurationKey, configurationValue := range projects.DefaultConfigurationValues(workspaceConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	return defaultValues
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if application.persistentFlagChanged(command, logFileFlagNameConstant) {
		application.configuration.Common.LogFile = application.logFileFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(strings.TrimSpace(application.configuration.Common.LogLevel)),
		utils.LogFormat(strings.TrimSpace(application.configuration.Common.LogFormat)),
		utils.LogFileOptions{
			Path:             application.homeExpander.Expand(strings.TrimSpace(application.configuration.Common.LogFile)),
			MaxSizeMegabytes: application.configuration.Common.LogMaxSizeMegabytes,
			MaxBackups:       application.configuration.Common.LogMaxBackups,
			MaxAgeDays:       application.configuration.Common.LogMaxAgeDays,
		},
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(configurationWorkspaceFieldConstant, application.configuration.Workspace.WorkspaceDirectory),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	if !application.printConfiguration {
		return command.Help()
	}

	if printError := application.writeConfiguration(command.Context(), command.OutOrStdout()); printError != nil {
		return fmt.Errorf(configurationPrintErrorTemplateConstant, printError)
	}
	return nil
}

func (application *Application) writeConfiguration(executionContext context.Context, output io.Writer) error {
	if configurationFilePath, available := application.commandContextAccessor.ConfigurationFilePath(executionContext); available {
		if _, writeError := fmt.Fprintf(output, configurationSourceCommentTemplate, configurationFilePath); writeError != nil {
			return writeError
		}
	}

	if overrides := application.configurationMetadata.EnvironmentOverrides; len(overrides) > 0 {
		if _, writeError := fmt.Fprintf(output, environmentOverridesCommentTemplate, strings.Join(overrides, environmentOverridesSeparatorConstant)); writeError != nil {
			return writeError
		}
	}

	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(2)
	if encodeError := encoder.Encode(application.configuration); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}
		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
