/*
Package badgerstore provides a tree.NodeStore backed by an embedded badger
database, so that trees too large for memory can be grown on disk and
reopened later.
*/
package badgerstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pbanos/entropic/tree"
	treejson "github.com/pbanos/entropic/tree/json"
)

type badgerStore struct {
	db      *badger.DB
	prefix  string
	nencdec treejson.NodeEncodeDecoder
}

/*
Open takes a path and opens a badger database on it. An empty path opens an
in-memory database, with nothing persisted.
*/
func Open(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("opening badger database at %q: %w", path, err)
	}
	return db, nil
}

// New builds a tree.NodeStore backed by the given badger DB. Nodes are
// stored under the "<prefix>:<id>" keys, encoded with the given
// NodeEncodeDecoder. Closing the store closes the DB.
func New(db *badger.DB, prefix string, nencdec treejson.NodeEncodeDecoder) tree.NodeStore {
	return &badgerStore{db, prefix, nencdec}
}

func (bs *badgerStore) Create(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return bs.db.Update(func(txn *badger.Txn) error {
		for {
			n.ID = uuid.NewString()
			_, err := txn.Get(bs.keyFor(n.ID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				break
			}
			if err != nil {
				return fmt.Errorf("creating node: %w", err)
			}
		}
		data, err := bs.nencdec.Encode(n)
		if err != nil {
			return fmt.Errorf("creating node: encoding node: %w", err)
		}
		return txn.Set(bs.keyFor(n.ID), data)
	})
}

func (bs *badgerStore) Get(ctx context.Context, id string) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bs.keyFor(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving node %q: %w", id, err)
	}
	n, err := bs.nencdec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("retrieving node %q: decoding: %w", id, err)
	}
	return n, nil
}

func (bs *badgerStore) Store(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := bs.nencdec.Encode(n)
	if err != nil {
		return fmt.Errorf("storing node %q: encoding node: %w", n.ID, err)
	}
	err = bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(bs.keyFor(n.ID), data)
	})
	if err != nil {
		return fmt.Errorf("storing node %q: %w", n.ID, err)
	}
	return nil
}

func (bs *badgerStore) Delete(ctx context.Context, n *tree.Node) error {
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(bs.keyFor(n.ID))
	})
	if err != nil {
		return fmt.Errorf("deleting node %q: %w", n.ID, err)
	}
	return nil
}

func (bs *badgerStore) Close(ctx context.Context) error {
	return bs.db.Close()
}

func (bs *badgerStore) keyFor(id string) []byte {
	return []byte(bs.prefix + ":" + id)
}
