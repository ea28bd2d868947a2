// Package schemas embeds the SQL migrations of the MySQL storage backend.
package schemas

import "embed"

// Migrations holds migrations/*.sql, applied in lexical order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
