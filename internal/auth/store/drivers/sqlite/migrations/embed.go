package migrations

import "embed"

// Migrations holds the ordered golang-migrate files for the sqlite driver.
//
//go:embed *.sql
var Migrations embed.FS
