// Package catalog stores canonical endofunction structures in a badger
// LSM, deduplicating on canonical encoding and keeping per-size counts.
package catalog

import (
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/funcstruct-systems/gofunc/gofunc"
	"github.com/funcstruct-systems/gofunc/libfunc/funcstruct"
)

// CatalogOpts specifies how a Catalog opens its backing store.
type CatalogOpts struct {

	// DbPathName is the db directory; empty means a memory-only catalog.
	DbPathName string

	// ReadOnly opens an existing catalog for reading only.
	ReadOnly bool

	// MaxNodes caps the structure sizes this catalog accepts.
	MaxNodes int
}

// DefaultCatalogOpts returns a memory-only catalog accepting structures of
// up to 255 nodes.
func DefaultCatalogOpts() CatalogOpts {
	return CatalogOpts{
		MaxNodes: 255,
	}
}

var (
	ErrBadCatalogParam = errors.New("invalid catalog parameter")
	ErrCatalogClosed   = errors.New("catalog is closed")
	ErrReadOnly        = errors.New("catalog is read-only")
)

var gStateKey = []byte{0x00, 0x00, 0x01}

// Catalog is a db wrapper holding one entry per distinct Funcstruct.
// Entry keys are the node count followed by the canonical encoding, so a
// prefix scan walks all structures of a given size.
type Catalog struct {
	opts       CatalogOpts
	db         *badger.DB
	mu         sync.Mutex
	counts     []uint64
	stateDirty bool
}

// OpenCatalog opens (or creates) the catalog named by opts.
func OpenCatalog(opts CatalogOpts) (*Catalog, error) {
	if opts.MaxNodes <= 0 || opts.MaxNodes > 255 {
		return nil, errors.Wrap(ErrBadCatalogParam, "MaxNodes must be in [1,255]")
	}
	if len(opts.DbPathName) == 0 && opts.ReadOnly {
		return nil, errors.Wrap(ErrBadCatalogParam, "DbPathName must be specified for a read-only catalog")
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // single writer
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false
	if len(opts.DbPathName) == 0 {
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		opts:   opts,
		db:     db,
		counts: make([]uint64, opts.MaxNodes+1),
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
	}
	if err != nil {
		db.Close()
		return nil, err
	}

	klog.V(1).Infof("opened funcstruct catalog %q (max %d nodes)", opts.DbPathName, opts.MaxNodes)
	return cat, nil
}

func (cat *Catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			count, val, err := gofunc.ReadUvarint(val)
			if err != nil {
				return err
			}
			if int(count) > len(cat.counts) {
				return errors.Wrap(ErrBadCatalogParam, "catalog MaxNodes is below the stored size range")
			}
			for i := 0; i < int(count); i++ {
				var c uint64
				c, val, err = gofunc.ReadUvarint(val)
				if err != nil {
					return err
				}
				cat.counts[i] = c
			}
			return nil
		})
	})
}

func (cat *Catalog) flushState() error {
	if !cat.stateDirty || cat.opts.ReadOnly {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		buf := gofunc.AppendUvarint(nil, uint64(len(cat.counts)))
		for _, c := range cat.counts {
			buf = gofunc.AppendUvarint(buf, c)
		}
		return txn.Set(gStateKey, buf)
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

// Close flushes the counts and releases the db.
func (cat *Catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return nil
	}
	if err := cat.flushState(); err != nil {
		klog.Errorf("funcstruct catalog state flush failed: %v", err)
	}
	err := cat.db.Close()
	cat.db = nil
	return err
}

// IsReadOnly reports whether TryAdd is disabled.
func (cat *Catalog) IsReadOnly() bool {
	return cat.opts.ReadOnly
}

func (cat *Catalog) structKey(fs funcstruct.Funcstruct) []byte {
	key := make([]byte, 1, 64)
	key[0] = byte(fs.Len())
	return fs.AppendEncodingTo(key)
}

// TryAdd stores fs if an equal structure is not already present, reporting
// whether it was added.
func (cat *Catalog) TryAdd(fs funcstruct.Funcstruct) (bool, error) {
	if cat.opts.ReadOnly {
		return false, ErrReadOnly
	}
	if fs.Len() > cat.opts.MaxNodes {
		return false, gofunc.ErrInvalidSize
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return false, ErrCatalogClosed
	}

	key := cat.structKey(fs)
	added := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, nil)
	})
	if err != nil {
		return false, err
	}
	if added {
		cat.counts[fs.Len()]++
		cat.stateDirty = true
	}
	return added, nil
}

// Contains reports whether an equal structure has been added.
func (cat *Catalog) Contains(fs funcstruct.Funcstruct) (bool, error) {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return false, ErrCatalogClosed
	}

	key := cat.structKey(fs)
	found := false
	err := cat.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			found = true
			return nil
		}
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
	return found, err
}

// NumStructs returns the number of distinct structures of n nodes added so
// far.
func (cat *Catalog) NumStructs(n int) int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	if n < 0 || n >= len(cat.counts) {
		return 0
	}
	return int64(cat.counts[n])
}

// EachStruct walks the stored structures of n nodes in encoding order,
// stopping early if fn returns false.
func (cat *Catalog) EachStruct(n int, fn func(fs funcstruct.Funcstruct) bool) error {
	if n < 1 || n > cat.opts.MaxNodes {
		return gofunc.ErrInvalidSize
	}
	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return ErrCatalogClosed
	}

	return cat.db.View(func(txn *badger.Txn) error {
		prefix := []byte{byte(n)}
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         prefix,
		})
		defer it.Close()

		for it.Seek(prefix); it.Valid(); it.Next() {
			key := it.Item().Key()
			fs, _, err := funcstruct.DecodeStruct(key[1:])
			if err != nil {
				return errors.Wrap(err, "corrupt catalog entry")
			}
			if !fn(fs) {
				return nil
			}
		}
		return nil
	})
}

// StructSet deduplicates structures without persisting them: a scratch
// in-memory catalog for enumeration passes.
type StructSet struct {
	set lsmSet
}

// NewStructSet returns an empty set; call Close when done.
func NewStructSet() *StructSet {
	return &StructSet{}
}

// TryAdd adds fs if not already present, reporting whether it was added.
func (ss *StructSet) TryAdd(fs funcstruct.Funcstruct) bool {
	key := make([]byte, 0, 64)
	return ss.set.tryAdd(fs.AppendEncodingTo(key))
}

// Close removes all previously added items.
func (ss *StructSet) Close() {
	ss.set.Close()
}

type lsmSet struct {
	db *badger.DB
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Commit()

	added := false
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		added = true
	}
	if err != nil && err != badger.ErrKeyNotFound {
		panic(err)
	}
	return added
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}
