// Package database handles catalog database connections and schema inspection.
//
// It wraps GORM to open either a MySQL server or a local sqlite file based on the
// application's configuration. The catalog source of package scan reads file paths
// from a table of this database.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the database
// within the configured timeout. sqlite connections are capped at one so that
// ":memory:" databases keep their schema.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table (SHOW COLUMNS on MySQL, PRAGMA
// table_info on sqlite). The catalog source uses it to tell a missing table or path
// column apart from an empty one.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	columns, err := database.GetTableColumns(db, "files")
//	ok := database.HasColumn(columns, "path")
package database
