// Package format renders device values for the command line in three
// interchangeable styles: human-readable text and tables, JSON documents
// for scripting, and shell variable assignments suitable for eval.
//
// Formatters only present values; they never touch the device or interpret
// wire bytes. Absent values render as "--" or "No information" for people,
// null for JSON, and empty assignments for shells.
package format
