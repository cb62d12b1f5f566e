package schema

import "embed"

// Migrations holds the goose migration files, applied in file name order
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files
const MigrationsDir = "migrations"
