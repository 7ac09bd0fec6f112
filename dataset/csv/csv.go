/*
Package csv reads feature matrices and target labels from CSV streams and
writes prediction results as CSV.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/entropic/dataset"
)

/*
ReadFrame takes an io.Reader for a CSV stream and the name of the class
column and returns the frame of feature columns and the labels read from it,
or an error.

The header or first row of the CSV content is expected to consist of the
column names. Columns whose every cell parses as a real number are read as
numerical (float64 cells), the rest as categorical (string cells). If
classColumn is empty, no labels are returned and every column is a feature.
*/
func ReadFrame(reader io.Reader, classColumn string) (*dataset.Frame, []string, error) {
	frame, labels, err := ReadRawFrame(reader, classColumn)
	if err != nil {
		return nil, nil, err
	}
	inferColumnTypes(frame)
	return frame, labels, nil
}

/*
ReadRawFrame behaves like ReadFrame but keeps every cell as read, as a string.
Use it for query rows, whose values are coerced by the tree when routed.
*/
func ReadRawFrame(reader io.Reader, classColumn string) (*dataset.Frame, []string, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %v", err)
	}
	classIndex := -1
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if classColumn != "" && name == classColumn {
			classIndex = i
			continue
		}
		columns = append(columns, name)
	}
	if classColumn != "" && classIndex < 0 {
		return nil, nil, fmt.Errorf("parsing header: class column %s not found", classColumn)
	}
	frame := dataset.NewFrame(columns, nil)
	var labels []string
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading body: %v", err)
		}
		row := make([]interface{}, 0, len(columns))
		for i, v := range record {
			if i == classIndex {
				labels = append(labels, v)
				continue
			}
			row = append(row, v)
		}
		if len(row) != len(columns) {
			return nil, nil, fmt.Errorf("parsing line %d: found %d values for %d columns", l, len(row), len(columns))
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame, labels, nil
}

/*
ReadFrameFromFilePath takes a filepath string and the name of the class column,
opens the file to which the filepath points to and uses ReadFrame to return
the frame and labels in it. If the filepath is "" os.Stdin is used instead.
*/
func ReadFrameFromFilePath(filepath string, classColumn string) (*dataset.Frame, []string, error) {
	f, err := open(filepath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	frame, labels, err := ReadFrame(f, classColumn)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return frame, labels, err
}

/*
ReadRawFrameFromFilePath behaves like ReadFrameFromFilePath but reads with
ReadRawFrame.
*/
func ReadRawFrameFromFilePath(filepath string, classColumn string) (*dataset.Frame, []string, error) {
	f, err := open(filepath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	frame, labels, err := ReadRawFrame(f, classColumn)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return frame, labels, err
}

/*
WriteRecords takes an io.Writer, a header and a slice of records and writes
them in CSV format, returning an error if something went wrong when writing.
*/
func WriteRecords(writer io.Writer, header []string, records [][]string) error {
	w := csv.NewWriter(writer)
	err := w.Write(header)
	if err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	for i, record := range records {
		err = w.Write(record)
		if err != nil {
			return fmt.Errorf("writing CSV row %d: %v", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

func open(filepath string) (*os.File, error) {
	if filepath == "" {
		return os.Stdin, nil
	}
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v", filepath, err)
	}
	return f, nil
}

func inferColumnTypes(frame *dataset.Frame) {
	if len(frame.Rows) == 0 {
		return
	}
	for j := range frame.Columns {
		values := make([]float64, len(frame.Rows))
		numeric := true
		for i, r := range frame.Rows {
			f, err := strconv.ParseFloat(strings.TrimSpace(r[j].(string)), 64)
			if err != nil {
				numeric = false
				break
			}
			values[i] = f
		}
		if !numeric {
			continue
		}
		for i, r := range frame.Rows {
			r[j] = values[i]
		}
	}
}
