// Copyright 2017 Pilosa Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package orderlake

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var seenBucket = []byte("seen")

// Dedup is a bolt-backed index of already-processed source object keys.
// It is only useful to the long-running worker; Lambda invocations have
// no durable local disk and stay at-least-once.
type Dedup struct {
	db *bolt.DB
}

// NewDedup opens (creating if needed) the dedup index at filename.
func NewDedup(filename string) (*Dedup, error) {
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening dedup db '%v'", filename)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(seenBucket)
		return errors.Wrap(err, "creating seen bucket")
	})
	if err != nil {
		return nil, err
	}
	return &Dedup{db: db}, nil
}

// Seen reports whether key was already marked processed.
func (d *Dedup) Seen(key string) (seen bool, err error) {
	err = d.db.View(func(tx *bolt.Tx) error {
		seen = tx.Bucket(seenBucket).Get([]byte(key)) != nil
		return nil
	})
	return seen, errors.Wrapf(err, "looking up '%v'", key)
}

// Mark records key as processed, stamping it with the current time.
func (d *Dedup) Mark(key string) error {
	err := d.db.Update(func(tx *bolt.Tx) error {
		stamp := time.Now().UTC().Format(time.RFC3339Nano)
		return tx.Bucket(seenBucket).Put([]byte(key), []byte(stamp))
	})
	return errors.Wrapf(err, "marking '%v'", key)
}

// Close syncs and closes the underlying bolt db.
func (d *Dedup) Close() error {
	return errors.Wrap(d.db.Close(), "closing dedup db")
}
