package dataset

import (
	"fmt"
)

/*
Frame is a feature matrix: rows of cells, homogeneous per column, with
optional column labels. When Columns is empty, features get positional
names (see ColumnNames).
*/
type Frame struct {
	Columns []string
	Rows    [][]interface{}
}

/*
NewFrame takes a slice of column names and a slice of rows and returns a
frame with them.
*/
func NewFrame(columns []string, rows [][]interface{}) *Frame {
	return &Frame{Columns: columns, Rows: rows}
}

// Width returns the number of columns of the frame rows.
func (f *Frame) Width() int {
	if len(f.Rows) > 0 {
		return len(f.Rows[0])
	}
	return len(f.Columns)
}

/*
ColumnNames returns the names of the frame columns: its Columns if set,
"feature_0", "feature_1", ... otherwise.
*/
func (f *Frame) ColumnNames() []string {
	if len(f.Columns) > 0 {
		return f.Columns
	}
	names := make([]string, f.Width())
	for i := range names {
		names[i] = fmt.Sprintf("feature_%d", i)
	}
	return names
}

/*
Samples returns the rows of the frame as samples that resolve feature values
by column name.
*/
func (f *Frame) Samples() []Sample {
	names := f.ColumnNames()
	result := make([]Sample, len(f.Rows))
	for i, r := range f.Rows {
		result[i] = NewRowSample(names, r)
	}
	return result
}
