// Copyright (c) 2026 Michael D Henderson. All rights reserved.

//go:build !mattn

package sqlitetest

import (
	"fmt"
	"strings"
)

// driverName is the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"

// pragma represents a SQLite pragma setting.
type pragma struct {
	name  string
	value string
}

// defaultPragmas are applied to every connection unless overridden via
// Config.Options.
var defaultPragmas = []pragma{
	{name: "foreign_keys", value: "ON"},
	{name: "busy_timeout", value: "5000"},
}

// buildDSN constructs a DSN for modernc.org/sqlite.
// modernc uses the syntax: file:path?_pragma=name(value)&_pragma=name2(value2)
func buildDSN(path string, pragmas []pragma) string {
	var sb strings.Builder

	if path == MemoryToken {
		sb.WriteString("file::memory:?cache=shared")
	} else {
		sb.WriteString("file:")
		sb.WriteString(path)
	}

	for i, p := range pragmas {
		if path == MemoryToken || i > 0 {
			sb.WriteString("&")
		} else {
			sb.WriteString("?")
		}
		fmt.Fprintf(&sb, "_pragma=%s(%s)", p.name, p.value)
	}

	return sb.String()
}
