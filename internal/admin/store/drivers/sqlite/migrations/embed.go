package migrations

import "embed"

// Migrations contains the embedded SQLite schema migrations, compiled into
// the binary so deployments never depend on files on disk.
//
//go:embed *.sql
var Migrations embed.FS
