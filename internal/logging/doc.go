// Package logging provides structured logging for the cometblue tool.
//
// This package wraps zap with convenience functions for the logging this
// tool actually does: lifecycle events and raw characteristic byte dumps.
// Logging goes to stderr and is silent unless COMETBLUE_LOG_LEVEL is set,
// because stdout belongs to the output formatters (including the shell-var
// formatter, whose output gets eval'd).
package logging
