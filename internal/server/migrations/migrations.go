// Package migrations embeds the node's goose migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
