package config

import "imbuesvc/pkg/contracts"

// Application constants
const (
	AppName    = "imbue"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable (IMBUE_SERVER_PORT, ...)
	EnvPrefix = "IMBUE"

	// Imputation limits
	DefaultMaxAxisSpan      = 1_000_000
	DefaultMaxDatasetSize   = 100_000
	DefaultMaxBodyBytes     = 10 << 20 // 10MB
	DefaultMaxBatchSeries   = 64
	DefaultBatchConcurrency = 4
)

// Logging formats and outputs
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
	LogFormatAuto = "auto"

	LogOutputConsole = "console"
	LogOutputFile    = "file"
	LogOutputBoth    = "both"
)
