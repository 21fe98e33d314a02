// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"sync"
)

// Bucket provides logical bucket for kv store.
type Bucket string

func (b Bucket) key(buf *buf, key []byte) []byte {
	buf.k = append(append(buf.k[:0], b...), key...)
	return buf.k
}

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		GetFunc
		HasFunc
		IsNotFoundFunc
	}{
		func(key []byte) ([]byte, error) {
			buf := bufPool.Get().(*buf)
			defer bufPool.Put(buf)
			return src.Get(b.key(buf, key))
		},
		func(key []byte) (bool, error) {
			buf := bufPool.Get().(*buf)
			defer bufPool.Put(buf)
			return src.Has(b.key(buf, key))
		},
		src.IsNotFound,
	}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		PutFunc
		DeleteFunc
	}{
		func(key, val []byte) error {
			buf := bufPool.Get().(*buf)
			defer bufPool.Put(buf)
			return src.Put(b.key(buf, key), val)
		},
		func(key []byte) error {
			buf := bufPool.Get().(*buf)
			defer bufPool.Put(buf)
			return src.Delete(b.key(buf, key))
		},
	}
}

// NewIterate wraps the source iterate function, so that keys are bucketed.
func (b Bucket) NewIterate(src func(Range) Iterator) func(Range) Iterator {
	return func(r Range) Iterator {
		prefixed := Range{Start: append([]byte(b), r.Start...)}
		if len(r.Limit) == 0 {
			prefixed.Limit = PrefixRange([]byte(b)).Limit
		} else {
			prefixed.Limit = append([]byte(b), r.Limit...)
		}
		iter := src(prefixed)
		return &struct {
			NextFunc
			KeyFunc
			ValueFunc
			ReleaseFunc
			ErrorFunc
		}{
			iter.Next,
			// strip the bucket
			func() []byte { return iter.Key()[len(b):] },
			iter.Value,
			iter.Release,
			iter.Error,
		}
	}
}

// NewStore creates a bucket store from the source store.
func (b Bucket) NewStore(src Store) Store {
	return &struct {
		Getter
		Putter
		snapshotFunc
		bulkFunc
		IterateFunc
		closeFunc
	}{
		b.NewGetter(src),
		b.NewPutter(src),
		func() Snapshot {
			snapshot := src.Snapshot()
			return &struct {
				Getter
				IterateFunc
				ReleaseFunc
			}{
				b.NewGetter(snapshot),
				b.NewIterate(snapshot.Iterate),
				snapshot.Release,
			}
		},
		func() Bulk {
			bulk := src.Bulk()
			return &struct {
				Putter
				LenFunc
				WriteFunc
			}{
				b.NewPutter(bulk),
				bulk.Len,
				bulk.Write,
			}
		},
		b.NewIterate(src.Iterate),
		src.Close,
	}
}

type (
	snapshotFunc func() Snapshot
	bulkFunc     func() Bulk
	closeFunc    func() error
)

func (f snapshotFunc) Snapshot() Snapshot { return f() }
func (f bulkFunc) Bulk() Bulk             { return f() }
func (f closeFunc) Close() error          { return f() }

type buf struct {
	k []byte
}

var bufPool = sync.Pool{
	New: func() any {
		return &buf{}
	},
}
