package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	environmentListSeparatorConstant                = ","
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
)

// ConfigurationLoader resolves layered configuration into a tagged struct.
// Precedence from lowest to highest: defaults, embedded configuration, the first
// configuration file found (or the explicit path), environment variables.
// String values are trimmed while decoding.
type ConfigurationLoader struct {
	configurationName   string
	configurationType   string
	environmentPrefix   string
	searchPaths         []string
	environmentReplacer *strings.Replacer
	embedded            embeddedConfiguration
}

type embeddedConfiguration struct {
	content           []byte
	configurationType string
}

// LoadedConfiguration describes where the resolved values came from.
type LoadedConfiguration struct {
	ConfigFileUsed string
	// EnvironmentOverrides lists the sorted keys whose value came from an environment variable.
	EnvironmentOverrides []string
}

// NewConfigurationLoader creates a loader that searches the given directories and reads
// environment variables named PREFIX_SECTION_KEY.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName:   configurationName,
		configurationType:   configurationType,
		environmentPrefix:   environmentPrefix,
		searchPaths:         slices.Clone(searchPaths),
		environmentReplacer: strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant),
	}
}

// SetEmbeddedConfiguration stores configuration merged beneath any configuration file.
// An empty type falls back to the loader's configuration type.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}
	loader.embedded = embeddedConfiguration{
		content:           slices.Clone(configurationData),
		configurationType: strings.TrimSpace(configurationType),
	}
}

// LoadConfiguration decodes the layered configuration into targetConfiguration.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if mergeError := loader.mergeEmbedded(viperInstance); mergeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
	}
	if readError := loader.mergeConfigurationFile(viperInstance, configurationFilePath); readError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	viperInstance.SetEnvKeyReplacer(loader.environmentReplacer)
	viperInstance.AutomaticEnv()

	if unmarshalError := viperInstance.Unmarshal(targetConfiguration, viper.DecodeHook(decodeHook())); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{
		ConfigFileUsed:       viperInstance.ConfigFileUsed(),
		EnvironmentOverrides: loader.environmentOverrides(viperInstance.AllKeys()),
	}, nil
}

func (loader *ConfigurationLoader) mergeEmbedded(viperInstance *viper.Viper) error {
	if len(loader.embedded.content) == 0 {
		return nil
	}
	configurationType := loader.embedded.configurationType
	if len(configurationType) == 0 {
		configurationType = loader.configurationType
	}
	viperInstance.SetConfigType(configurationType)
	return viperInstance.MergeConfig(bytes.NewReader(loader.embedded.content))
}

func (loader *ConfigurationLoader) mergeConfigurationFile(viperInstance *viper.Viper, configurationFilePath string) error {
	viperInstance.SetConfigType(loader.configurationType)
	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	} else {
		viperInstance.SetConfigName(loader.configurationName)
		for _, searchPath := range loader.searchPaths {
			viperInstance.AddConfigPath(searchPath)
		}
	}

	readError := viperInstance.MergeInConfig()
	var notFoundError viper.ConfigFileNotFoundError
	if readError == nil || errors.As(readError, &notFoundError) {
		return nil
	}
	return readError
}

func (loader *ConfigurationLoader) environmentVariableName(configurationKey string) string {
	variableName := strings.ToUpper(loader.environmentReplacer.Replace(configurationKey))
	if len(loader.environmentPrefix) == 0 {
		return variableName
	}
	return strings.ToUpper(loader.environmentPrefix) + environmentKeySeparatorNewConstant + variableName
}

func (loader *ConfigurationLoader) environmentOverrides(configurationKeys []string) []string {
	overrides := lo.Filter(configurationKeys, func(configurationKey string, _ int) bool {
		return len(os.Getenv(loader.environmentVariableName(configurationKey))) > 0
	})
	slices.Sort(overrides)
	return overrides
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		trimStringsHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(environmentListSeparatorConstant),
	)
}

func trimStringsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.String {
		return data, nil
	}
	return strings.TrimSpace(reflect.ValueOf(data).String()), nil
}
