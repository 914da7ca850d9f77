package config

import (
	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels (mapped onto slog levels by the CLI).
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// UnmatchedPolicy selects what an unrecognized navigation token resolves to.
type UnmatchedPolicy string

const (
	UnmatchedNotFound UnmatchedPolicy = "not_found"
	UnmatchedHome     UnmatchedPolicy = "home"
)

var unmatchedPolicyNormalizer = normalization.NewNormalizer(map[string]UnmatchedPolicy{
	"not_found": UnmatchedNotFound,
	"notfound":  UnmatchedNotFound,
	"home":      UnmatchedHome,
}, UnmatchedNotFound)

func NormalizeUnmatchedPolicy(raw string) UnmatchedPolicy {
	return unmatchedPolicyNormalizer.Normalize(raw)
}
