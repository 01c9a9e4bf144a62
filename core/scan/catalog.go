package scan

import (
	"context"
	"database/sql"
	"fmt"

	"pscan/core/database"

	"gorm.io/gorm"
)

// CatalogSource reads paths from a column of a SQL table.
// NULL and empty values are skipped; paths are produced in column order.
type CatalogSource struct {
	DB     *gorm.DB
	Table  string
	Column string
}

// Name implements Source.
func (s *CatalogSource) Name() string {
	return s.Table + "." + s.Column
}

// Walk implements Source.
func (s *CatalogSource) Walk(ctx context.Context, fn func(path string) error) error {
	db := s.DB.WithContext(ctx)

	columns, err := database.GetTableColumns(db, s.Table)
	if err != nil {
		return fmt.Errorf("failed to inspect catalog: %w", err)
	}
	if len(columns) == 0 {
		return fmt.Errorf("%w: %s", ErrTableNotFound, s.Table)
	}
	if !database.HasColumn(columns, s.Column) {
		return fmt.Errorf("%w: %s", ErrColumnNotFound, s.Name())
	}

	rows, err := db.Table(s.Table).Select(s.Column).Order(s.Column).Rows()
	if err != nil {
		return fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var path sql.NullString
		if err := rows.Scan(&path); err != nil {
			return fmt.Errorf("failed to read catalog row: %w", err)
		}
		if !path.Valid || path.String == "" {
			continue
		}
		if err := fn(path.String); err != nil {
			return err
		}
	}
	return rows.Err()
}
