// Package catalog embeds the goose migrations for the postgres catalog gateway.
package catalog

import "embed"

//go:embed *.sql
var FS embed.FS
