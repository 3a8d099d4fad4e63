// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package sqlitetest

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// runSchema creates an empty database at path and executes the configured
// schema script into it. The bootstrap connection is local to this call and
// closed on every exit path. All statements run in a single transaction
// committed once after the whole script is consumed, so a failing statement
// leaves nothing durably committed.
func (p *Provisioner) runSchema(ctx context.Context, path string) error {
	f, err := os.Open(p.cfg.Schema)
	if err != nil {
		return &SchemaReadError{Path: p.cfg.Schema, Err: err}
	}
	defer f.Close()

	dsn := buildDSN(path, p.cfg.connPragmas())
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return &ConnectionError{DSN: dsn, Err: err}
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &ConnectionError{DSN: dsn, Err: err}
	}
	defer tx.Rollback()

	var buf strings.Builder
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
		// Line-oriented split: a ";" anywhere in the line ends the
		// statement. Trigger bodies and quoted terminators are not
		// understood; see the package documentation.
		if !strings.Contains(line, ";") {
			continue
		}
		stmt := buf.String()
		buf.Reset()
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return &SchemaExecutionError{Statement: stmt, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return &SchemaReadError{Path: p.cfg.Schema, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
