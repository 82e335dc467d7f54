package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	jsonZapEncodingStringConstant        = "json"
	consoleZapEncodingStringConstant     = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	negativeLogFileLimitTemplateConstant = "log file %s must not be negative: %d"
	logFileMaxSizeLabelConstant          = "max size"
	logFileMaxBackupsLabelConstant       = "max backups"
	logFileMaxAgeLabelConstant           = "max age"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LogFileOptions configures the optional rotating log file. An empty Path
// disables it; zero limits fall back to lumberjack defaults.
type LogFileOptions struct {
	Path             string
	MaxSizeMegabytes int
	MaxBackups       int
	MaxAgeDays       int
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncodingMapping = map[LogFormat]string{
	LogFormatStructured: jsonZapEncodingStringConstant,
	LogFormatConsole:    consoleZapEncodingStringConstant,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger writing to standard error and, when
// configured, to a size-rotated log file in the same encoding.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat, fileOptions LogFileOptions) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoding, formatExists := logFormatEncodingMapping[requestedLogFormat]
	if !formatExists {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	if validationError := fileOptions.validate(); validationError != nil {
		return nil, validationError
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLogLevel)
	configuration.Encoding = encoding

	logger, buildError := configuration.Build()
	if buildError != nil {
		return nil, buildError
	}

	logFilePath := strings.TrimSpace(fileOptions.Path)
	if len(logFilePath) == 0 {
		return logger, nil
	}

	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    fileOptions.MaxSizeMegabytes,
		MaxBackups: fileOptions.MaxBackups,
		MaxAge:     fileOptions.MaxAgeDays,
	})
	fileCore := zapcore.NewCore(newEncoder(encoding, configuration.EncoderConfig), fileSink, configuration.Level)

	return logger.WithOptions(zap.WrapCore(func(standardErrorCore zapcore.Core) zapcore.Core {
		return zapcore.NewTee(standardErrorCore, fileCore)
	})), nil
}

func (fileOptions LogFileOptions) validate() error {
	limits := []struct {
		label string
		value int
	}{
		{label: logFileMaxSizeLabelConstant, value: fileOptions.MaxSizeMegabytes},
		{label: logFileMaxBackupsLabelConstant, value: fileOptions.MaxBackups},
		{label: logFileMaxAgeLabelConstant, value: fileOptions.MaxAgeDays},
	}
	for _, limit := range limits {
		if limit.value < 0 {
			return fmt.Errorf(negativeLogFileLimitTemplateConstant, limit.label, limit.value)
		}
	}
	return nil
}

func newEncoder(encoding string, encoderConfiguration zapcore.EncoderConfig) zapcore.Encoder {
	if encoding == consoleZapEncodingStringConstant {
		return zapcore.NewConsoleEncoder(encoderConfiguration)
	}
	return zapcore.NewJSONEncoder(encoderConfiguration)
}
