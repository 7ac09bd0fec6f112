package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/dataset/csv"
	"github.com/pbanos/entropic/dataset/mongodataset"
	"github.com/pbanos/entropic/dataset/sqldataset"
	mgo "gopkg.in/mgo.v2"
)

// inputConfig holds the flags locating a frame of rows
type inputConfig struct {
	dataInput  string
	table      string
	collection string
}

func isPostgreSQL(input string) bool {
	return strings.HasPrefix(input, "postgres://") || strings.HasPrefix(input, "postgresql://")
}

func isMongoDB(input string) bool {
	return strings.HasPrefix(input, "mongodb://")
}

func (ic *inputConfig) Validate() error {
	if (isPostgreSQL(ic.dataInput) || strings.HasSuffix(ic.dataInput, ".db")) && ic.table == "" {
		return fmt.Errorf("required table flag was not set for SQL input %s", ic.dataInput)
	}
	if isMongoDB(ic.dataInput) && ic.collection == "" {
		return fmt.Errorf("required collection flag was not set for MongoDB input %s", ic.dataInput)
	}
	return nil
}

/*
readFrame reads the frame and labels at the configured input: a CSV file,
STDIN when no input is set, a SQLite3 (.db) file, a PostgreSQL DB or a
MongoDB collection. Raw frames keep CSV cells as strings.
*/
func (ic *inputConfig) readFrame(ctx context.Context, l logger, classColumn string, raw bool) (*dataset.Frame, []string, error) {
	switch {
	case isPostgreSQL(ic.dataInput):
		l.Logf("Reading table %s from PostgreSQL DB at %s...", ic.table, ic.dataInput)
		return ic.sqlFrame(ctx, "postgres", classColumn)
	case strings.HasSuffix(ic.dataInput, ".db"):
		l.Logf("Reading table %s from SQLite3 file %s...", ic.table, ic.dataInput)
		return ic.sqlFrame(ctx, "sqlite3", classColumn)
	case isMongoDB(ic.dataInput):
		l.Logf("Reading collection %s from MongoDB at %s...", ic.collection, ic.dataInput)
		session, err := mgo.Dial(ic.dataInput)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to %s: %w", ic.dataInput, err)
		}
		defer session.Close()
		return mongodataset.Load(ctx, session, ic.collection, nil, classColumn)
	}
	if ic.dataInput == "" {
		l.Logf("Reading CSV from STDIN...")
	} else {
		l.Logf("Reading CSV from %s...", ic.dataInput)
	}
	if raw {
		return csv.ReadRawFrameFromFilePath(ic.dataInput, classColumn)
	}
	return csv.ReadFrameFromFilePath(ic.dataInput, classColumn)
}

func (ic *inputConfig) sqlFrame(ctx context.Context, driver string, classColumn string) (*dataset.Frame, []string, error) {
	db, err := sql.Open(driver, ic.dataInput)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", ic.dataInput, err)
	}
	defer db.Close()
	return sqldataset.LoadTable(ctx, db, ic.table, classColumn)
}
