package db

import "embed"

// EmbedMigrations holds the goose migration files for the group store.
//
//go:embed migrations/*.sql
var EmbedMigrations embed.FS
