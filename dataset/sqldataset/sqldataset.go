package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/feature"
)

/*
LoadTable takes a context, a database, the name of a table and the name of
the class column and returns the frame of the rows in the table and their
labels, or an error. See Load.
*/
func LoadTable(ctx context.Context, db *sql.DB, table string, classColumn string) (*dataset.Frame, []string, error) {
	return Load(ctx, db, fmt.Sprintf("SELECT * FROM %s", quoteIdentifier(table)), classColumn)
}

/*
Load takes a context, a database, a query and the name of the class column
and returns the frame of the rows the query returns and their labels, or an
error.

The columns of the frame are the columns of the result but the class column.
Integer and real cells become numbers and text cells strings, so column
types are detected from the database types. If classColumn is empty, no
labels are returned. NULL cells are rejected.
*/
func Load(ctx context.Context, db *sql.DB, query string, classColumn string) (*dataset.Frame, []string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("querying %q: %w", query, err)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("reading columns: %w", err)
	}
	classIndex := -1
	var names []string
	for i, c := range columns {
		if classColumn != "" && c == classColumn {
			classIndex = i
			continue
		}
		names = append(names, c)
	}
	if classColumn != "" && classIndex < 0 {
		return nil, nil, fmt.Errorf("class column %s not found", classColumn)
	}
	frame := dataset.NewFrame(names, nil)
	var labels []string
	cells := make([]interface{}, len(columns))
	pointers := make([]interface{}, len(columns))
	for i := range cells {
		pointers[i] = &cells[i]
	}
	for rows.Next() {
		err = rows.Scan(pointers...)
		if err != nil {
			return nil, nil, fmt.Errorf("scanning row %d: %w", len(frame.Rows), err)
		}
		row := make([]interface{}, 0, len(names))
		for i, v := range cells {
			v, err = cell(v)
			if err != nil {
				return nil, nil, fmt.Errorf("reading row %d column %s: %w", len(frame.Rows), columns[i], err)
			}
			if i == classIndex {
				labels = append(labels, feature.Level(v))
				continue
			}
			row = append(row, v)
		}
		frame.Rows = append(frame.Rows, row)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading rows: %w", err)
	}
	return frame, labels, nil
}

func cell(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case nil:
		return nil, fmt.Errorf("NULL value")
	case []byte:
		return string(v), nil
	case bool:
		return fmt.Sprint(v), nil
	}
	return v, nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
