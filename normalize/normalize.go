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

// Package normalize turns one uploaded order document into up to four
// partitioned parquet files in the processed bucket.
package normalize

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"log"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pilosa/orderlake"
	"github.com/pilosa/orderlake/aws/s3"
	"github.com/pkg/errors"
)

// QuarantinePrefix is where unprocessable source objects are copied in
// the target bucket instead of being silently dropped.
const QuarantinePrefix = "quarantine/"

// Option is a functional option type for Normalizer.
type Option func(n *Normalizer)

// OptClock overrides the ingestion-timestamp clock. Tests freeze it.
func OptClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// OptRegion sets the AWS region the default bucket opener uses.
func OptRegion(region string) Option {
	return func(n *Normalizer) {
		n.region = region
	}
}

// OptOpener replaces how source buckets named by events are opened.
func OptOpener(open func(bucket string) (orderlake.Store, error)) Option {
	return func(n *Normalizer) {
		n.open = open
	}
}

// OptDedup attaches a processed-key index; objects whose keys are
// already marked are skipped. Without it processing is at-least-once.
func OptDedup(d *orderlake.Dedup) Option {
	return func(n *Normalizer) {
		n.dedup = d
	}
}

// OptQuarantine toggles copying unprocessable objects to the
// quarantine prefix. On by default.
func OptQuarantine(enabled bool) Option {
	return func(n *Normalizer) {
		n.quarantine = enabled
	}
}

// Normalizer derives the customer, products, order, and order-products
// tables from uploaded order documents and writes each under its
// entity/date partition in the target bucket.
type Normalizer struct {
	target     orderlake.Store
	region     string
	open       func(bucket string) (orderlake.Store, error)
	now        func() time.Time
	dedup      *orderlake.Dedup
	quarantine bool

	mu      sync.Mutex
	sources map[string]orderlake.Store
}

// NewNormalizer returns a Normalizer writing to target with the options
// applied.
func NewNormalizer(target orderlake.Store, opts ...Option) *Normalizer {
	n := &Normalizer{
		target:     target,
		now:        time.Now,
		quarantine: true,
		sources:    make(map[string]orderlake.Store),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.open == nil {
		n.open = func(bucket string) (orderlake.Store, error) {
			return s3.NewBucket(bucket, s3.OptRegion(n.region))
		}
	}
	return n
}

// HandleEvent processes one storage-event notification. Each record is
// handled independently; the first error is returned after every record
// has had its chance.
func (n *Normalizer) HandleEvent(ctx context.Context, event events.S3Event) error {
	if len(event.Records) == 0 {
		return errors.New("event has no records")
	}
	var firstErr error
	for _, rec := range event.Records {
		bucket, rawKey := rec.S3.Bucket.Name, rec.S3.Object.Key
		if bucket == "" || rawKey == "" {
			err := errors.Errorf("event record is missing bucket ('%v') or key ('%v')", bucket, rawKey)
			log.Printf("%v", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		// Object keys arrive URL-encoded in S3 event payloads.
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			err = errors.Wrapf(err, "unescaping object key '%v'", rawKey)
			log.Printf("%v", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := n.Process(bucket, key); err != nil {
			log.Printf("Failed to process the S3 object with key: %v from the bucket: %v: %v", key, bucket, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Process normalizes one source object. Read, decode, and
// classification failures abort with no partial output; a per-table
// upload failure does not block the remaining tables' uploads.
func (n *Normalizer) Process(bucket, key string) error {
	if n.dedup != nil {
		seen, err := n.dedup.Seen(key)
		if err != nil {
			return err
		}
		if seen {
			log.Printf("Skipping already-processed object with key: %v", key)
			return nil
		}
	}

	src, err := n.source(bucket)
	if err != nil {
		return err
	}
	data, err := src.Get(key)
	if err != nil {
		return errors.Wrap(err, "getting source object")
	}
	log.Printf("Successfully obtained the S3 object with key: %v from the bucket: %v", key, bucket)

	order, err := orderlake.ParseOrder(data)
	if err != nil {
		n.quarantineObject(key, data)
		return err
	}

	stem := orderlake.ObjectStem(key)
	date, err := orderlake.ParseDate(stem)
	if err != nil {
		n.quarantineObject(key, data)
		return errors.Wrap(err, "extracting business date")
	}

	// One timestamp per invocation so all four tables share an
	// identical created_on value.
	createdOn := n.now().UTC()

	var firstErr error
	for _, table := range orderlake.Tables(order, createdOn) {
		entity := orderlake.Classify(table.Columns())
		if entity == orderlake.EntityUnclassified {
			return errors.Errorf("table with columns %v matches no entity signature", table.Columns())
		}
		outKey := orderlake.ObjectKey(entity, date, stem)
		if err := n.writeTable(table, outKey); err != nil {
			log.Printf("Failed to upload the S3 object with key: %v: %v", outKey, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.Printf("Successfully uploaded the S3 object with key: %v", outKey)
	}
	if firstErr != nil {
		return firstErr
	}

	if n.dedup != nil {
		return n.dedup.Mark(key)
	}
	return nil
}

// Consume feeds notification payloads from src through the normalizer
// until the source is exhausted. Individual payload failures are logged
// and skipped so one bad notification can't stall the worker.
func (n *Normalizer) Consume(src orderlake.Source) error {
	for {
		rec, err := src.Record()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "getting next notification")
		}
		var event events.S3Event
		if err := json.Unmarshal(rec, &event); err != nil {
			log.Printf("couldn't decode notification payload: %v", err)
			continue
		}
		if err := n.HandleEvent(context.Background(), event); err != nil {
			log.Printf("couldn't process notification: %v", err)
		}
	}
}

func (n *Normalizer) source(bucket string) (orderlake.Store, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if src, ok := n.sources[bucket]; ok {
		return src, nil
	}
	src, err := n.open(bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "opening bucket '%v'", bucket)
	}
	n.sources[bucket] = src
	return src, nil
}

// writeTable encodes the table through a transient temp file and
// uploads it, mirroring the /tmp staging of the Lambda runtime.
func (n *Normalizer) writeTable(t orderlake.Table, key string) error {
	f, err := ioutil.TempFile("", "orderlake-*.parquet")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(f.Name())
	if err := t.Encode(f); err != nil {
		f.Close()
		return errors.Wrap(err, "encoding table")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return n.target.UploadFile(key, f.Name())
}

func (n *Normalizer) quarantineObject(key string, data []byte) {
	if !n.quarantine {
		return
	}
	qkey := QuarantinePrefix + key
	if err := n.target.Put(qkey, data); err != nil {
		log.Printf("Failed to quarantine the S3 object with key: %v: %v", key, err)
		return
	}
	log.Printf("Quarantined unprocessable object at key: %v", qkey)
}
