// Package sql embeds the schema migrations for the fair schema.
package sql

import (
	"embed"
)

//go:embed migrations/*.sql
var Migrations embed.FS
