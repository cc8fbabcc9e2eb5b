// Package dialect names the SQL dialects supported by genyrator and the
// few syntax differences between them that the write path depends on.
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// Statements are executed by dialect/sql.
package dialect
