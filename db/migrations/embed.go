// Package migrations ships the archive schema inside the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
