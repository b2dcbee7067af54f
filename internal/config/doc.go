// Package config provides centralized configuration management for the imbue service.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority), optionally seeded from a .env file
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern IMBUE_<SECTION>_<FIELD>:
//
//	IMBUE_SERVER_PORT=8080
//	IMBUE_LOGGING_LEVEL=debug
//	IMBUE_LOGGING_OUTPUT=both
//	IMBUE_IMBUE_MAX_AXIS_SPAN=500000
//	IMBUE_TELEMETRY_TRACE_EXPORTER=stdout
//
// IMBUE_CONFIG_FILE points at an explicit YAML file; otherwise config.yaml and
// configs/config.yaml are tried.
//
// # Configuration File
//
//	server:
//	  port: 9090
//	imbue:
//	  max_axis_span: 250000
//	  batch_concurrency: 8
//	logging:
//	  format: auto
//
// An environment variable wins over the file only when it differs from the
// built-in default.
package config
