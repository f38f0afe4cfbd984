// Package migrations embeds the SQL schema so goose can apply it at startup
// and in integration tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
