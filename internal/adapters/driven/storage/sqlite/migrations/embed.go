// Package migrations holds the numbered schema files applied by the SQLite
// store: the link index first, then scheduler state.
package migrations

import "embed"

// FS holds the up and down files. The store applies *.up.sql in name order.
//
//go:embed *.sql
var FS embed.FS
