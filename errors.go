// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package sqlitetest

import "fmt"

// ConfigurationError reports missing, conflicting, or nonexistent sources in
// a Config. It is always fatal to construction and is returned before any
// I/O against the ephemeral store.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// CopyError reports a failure copying a source database to its ephemeral
// destination.
type CopyError struct {
	Source string
	Dest   string
	Err    error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s to %s: %v", e.Source, e.Dest, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// SchemaReadError reports a schema script that could not be opened or read.
type SchemaReadError struct {
	Path string
	Err  error
}

func (e *SchemaReadError) Error() string {
	return fmt.Sprintf("read schema %s: %v", e.Path, e.Err)
}

func (e *SchemaReadError) Unwrap() error { return e.Err }

// SchemaExecutionError reports a statement the engine rejected while
// bootstrapping a schema. Statement holds the offending SQL text.
type SchemaExecutionError struct {
	Statement string
	Err       error
}

func (e *SchemaExecutionError) Error() string {
	return fmt.Sprintf("exec schema statement %q: %v", e.Statement, e.Err)
}

func (e *SchemaExecutionError) Unwrap() error { return e.Err }

// ConnectionError reports a failure opening a connection to the
// materialized database.
type ConnectionError struct {
	DSN string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.DSN, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
