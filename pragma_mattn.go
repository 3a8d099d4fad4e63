// Copyright (c) 2026 Michael D Henderson. All rights reserved.

//go:build mattn

package sqlitetest

import (
	"fmt"
	"strings"
)

// driverName is the database/sql driver registered by github.com/mattn/go-sqlite3.
const driverName = "sqlite3"

// pragma represents a SQLite pragma setting.
type pragma struct {
	name  string
	value string
}

// defaultPragmas are applied to every connection unless overridden via
// Config.Options.
var defaultPragmas = []pragma{
	{name: "_foreign_keys", value: "1"},
	{name: "_busy_timeout", value: "5000"},
}

// buildDSN constructs a DSN for github.com/mattn/go-sqlite3.
// mattn uses the syntax: file:path?_foreign_keys=1&_busy_timeout=5000
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
		fmt.Fprintf(&sb, "%s=%s", p.name, p.value)
	}

	return sb.String()
}
