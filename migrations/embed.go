// Package migrations holds the goose SQL migrations of the resource store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
