// Package utils holds the process-wide plumbing of the workon CLI.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// WORKON_ environment variables through Viper. LoggerFactory builds zap
// loggers with an optional lumberjack-rotated log file.
package utils
