package main

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var histBucket = []byte("history")

// How many lines the editor loads for arrow-key recall.
const historyRecallMax = 200

type histEntry struct {
	When time.Time
	Line string
}

// history persists accepted editor lines in a local boltdb file, keyed by
// timestamp so iteration order is chronological.
type history struct {
	db *bolt.DB
}

func openHistory(fpath string) (*history, error) {
	db, err := bolt.Open(fpath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open history db at %v", fpath)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(histBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "unable to create history bucket")
	}
	return &history{db: db}, nil
}

func (h *history) Append(line string) error {
	return h.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(histBucket)
		var key [8]byte
		binary.BigEndian.PutUint64(key[:], uint64(time.Now().UnixNano()))

		var val bytes.Buffer
		enc := gob.NewEncoder(&val)
		if err := enc.Encode(histEntry{When: time.Now(), Line: line}); err != nil {
			return errors.Wrapf(err, "unable to encode history entry: %q", line)
		}
		return b.Put(key[:], val.Bytes())
	})
}

// Recent returns up to n lines, newest first.
func (h *history) Recent(n int) []string {
	var lines []string
	h.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(histBucket).Cursor()
		for k, v := c.Last(); k != nil && len(lines) < n; k, v = c.Prev() {
			var e histEntry
			dec := gob.NewDecoder(bytes.NewBuffer(v))
			if err := dec.Decode(&e); err != nil {
				continue
			}
			lines = append(lines, e.Line)
		}
		return nil
	})
	return lines
}

func (h *history) Close() error {
	return h.db.Close()
}
