// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package sqlitetest provisions disposable SQLite databases for test suites.
//
// A Provisioner takes exactly one source - an existing database file to
// copy, a SQL schema script to execute, or an in-memory request - and
// lazily materializes a ready-to-use database plus a connection string and
// a live *sql.DB handle. File-backed databases live in uniquely named files
// under the OS temp directory and are removed by Close, or automatically by
// the ForTest helper when the test ends.
//
// # Basic Usage
//
//	func TestAccounts(t *testing.T) {
//	    p := sqlitetest.ForTest(t, sqlitetest.Config{
//	        Schema: "testdata/accounts.sql",
//	    })
//	    db, err := p.Conn(context.Background())
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    // query db ...
//	}
//
// # Driver Support
//
// This package supports two SQLite drivers via build tags:
//   - modernc.org/sqlite (default, pure Go, no CGO)
//   - github.com/mattn/go-sqlite3 (CGO, use -tags mattn)
//
// You must import the appropriate driver in your application:
//
//	import _ "modernc.org/sqlite"           // default
//	import _ "github.com/mattn/go-sqlite3"  // with -tags mattn
//
// # Schema Files
//
// Schema scripts are UTF-8 text read line by line. Blank lines and lines
// whose first non-whitespace characters are "--" are skipped. Remaining
// lines accumulate into a statement buffer; when a line contains ";"
// anywhere, the buffer is executed as one statement and cleared. The whole
// script runs in a single transaction committed after the last line, so a
// failed statement leaves nothing durably committed.
//
// The split is a line heuristic, not a SQL tokenizer. It does not
// understand multi-statement constructs such as CREATE TRIGGER bodies, nor
// ";" inside string literals. This is a known limitation.
//
// # Lifecycle
//
// Accessors are lazy and memoized: Database materializes the store on first
// call, ConnString formats the DSN from it, Conn opens a handle from the
// DSN. Each result is cached for the life of the provisioner. The handle
// returned by Conn belongs to the caller; Close removes the ephemeral file
// (and WAL sidecars) but never closes the handle.
package sqlitetest
