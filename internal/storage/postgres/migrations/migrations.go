// Package migrations embeds the SQL migration files for the app
// database. The shared auth database is owned elsewhere and is never
// migrated from here.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
