/*
Package mongodataset reads training and query frames from, and writes them
to, a MongoDB collection where every document is a row.
*/
package mongodataset

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Load takes a context, a MongoDB session, the name of a collection on its
default database, the names of the feature columns and the name of the class
column and returns the frame of the documents in the collection and their
labels, or an error.

If columns is empty, the feature columns are the fields of the first
document but "_id" and the class column, sorted by name. If classColumn is
empty, no labels are returned. Every document must hold a value for every
column.
*/
func Load(ctx context.Context, session *mgo.Session, collection string, columns []string, classColumn string) (*dataset.Frame, []string, error) {
	frame := dataset.NewFrame(columns, nil)
	var labels []string
	docs, errs := Read(ctx, session, collection)
	for doc := range docs {
		if len(frame.Columns) == 0 {
			frame.Columns = fieldsOf(doc, classColumn)
		}
		row := make([]interface{}, len(frame.Columns))
		for i, c := range frame.Columns {
			v, ok := doc[c]
			if !ok {
				drain(docs)
				return nil, nil, fmt.Errorf("reading document %v: no value for %s", doc["_id"], c)
			}
			row[i] = v
		}
		if classColumn != "" {
			l, ok := doc[classColumn]
			if !ok {
				drain(docs)
				return nil, nil, fmt.Errorf("reading document %v: no value for class column %s", doc["_id"], classColumn)
			}
			labels = append(labels, feature.Level(l))
		}
		frame.Rows = append(frame.Rows, row)
	}
	if err := <-errs; err != nil {
		return nil, nil, fmt.Errorf("reading collection %s: %w", collection, err)
	}
	return frame, labels, nil
}

/*
Read takes a context, a MongoDB session and the name of a collection and
returns a channel receiving the documents of the collection and a channel
receiving the error of the read, if any. Both channels are closed when
the read ends.
*/
func Read(ctx context.Context, session *mgo.Session, collection string) (<-chan bson.M, <-chan error) {
	docs := make(chan bson.M)
	errs := make(chan error, 1)
	go func() {
		defer close(docs)
		defer close(errs)
		var err error
		iter := session.DB("").C(collection).Find(nil).Iter()
		doc := bson.M{}
		for err == nil && iter.Next(&doc) {
			select {
			case <-ctx.Done():
				err = ctx.Err()
			case docs <- doc:
			}
			doc = bson.M{}
		}
		if cerr := iter.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			errs <- err
		}
	}()
	return docs, errs
}

/*
Write takes a context, a MongoDB session, the name of a collection, a frame,
the labels of its rows and the name of the class column and inserts every row
of the frame as a document of the collection, with the label of the row under
the class column. Labels may be nil to insert only the features. It returns
the number of inserted documents or an error.
*/
func Write(ctx context.Context, session *mgo.Session, collection string, frame *dataset.Frame, labels []string, classColumn string) (int, error) {
	if labels != nil && len(labels) != len(frame.Rows) {
		return 0, fmt.Errorf("found %d rows but %d labels", len(frame.Rows), len(labels))
	}
	names := frame.ColumnNames()
	for _, n := range names {
		if err := validFieldName(n); err != nil {
			return 0, err
		}
	}
	if err := validFieldName(classColumn); err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, len(frame.Rows))
	for i, r := range frame.Rows {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		doc := make(bson.M, len(r)+1)
		for j, v := range r {
			doc[names[j]] = v
		}
		if labels != nil {
			doc[classColumn] = labels[i]
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	err := session.DB("").C(collection).Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("inserting into collection %s: %w", collection, err)
	}
	return len(docs), nil
}

func fieldsOf(doc bson.M, classColumn string) []string {
	var fields []string
	for k := range doc {
		if k != "_id" && k != classColumn {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	return fields
}

func validFieldName(name string) error {
	if name == "_id" {
		return fmt.Errorf("invalid column name %q: reserved collection field", "_id")
	}
	if strings.ContainsAny(name, ".$") {
		return fmt.Errorf("invalid column name %q: contains reserved characters %q or %q", name, ".", "$")
	}
	return nil
}

func drain(docs <-chan bson.M) {
	go func() {
		for range docs {
		}
	}()
}
