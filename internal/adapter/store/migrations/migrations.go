package migrations

import "embed"

// FS holds the goose SQL migrations for the food request store.
//
//go:embed *.sql
var FS embed.FS
