// Package migrations embeds the prefs schema migration files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
