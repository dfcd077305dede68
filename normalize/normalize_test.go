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

package normalize

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pilosa/orderlake"
	"github.com/pilosa/orderlake/aws/s3"
	"github.com/pilosa/orderlake/mock"
)

const orderJSON = `{
	"order_id": "X1",
	"order_date": "2024-07-08",
	"customer": {
		"customer_id": "42",
		"name": "Marsha",
		"email": "marsha@example.com",
		"address": {"street": "123 Main St", "city": "Austin", "state": "TX", "zip_code": "78701"}
	},
	"products": [{"product_id": "P001", "price": 50.0, "quantity": 2}],
	"total_amount": 100.0
}`

func testNormalizer(t *testing.T, svc *mock.S3, opts ...Option) *Normalizer {
	t.Helper()
	target, err := s3.NewBucket("processed", s3.OptService(svc))
	if err != nil {
		t.Fatalf("getting target bucket: %v", err)
	}
	opener := func(bucket string) (orderlake.Store, error) {
		return s3.NewBucket(bucket, s3.OptService(svc))
	}
	frozen := func() time.Time {
		return time.Date(2024, time.July, 8, 9, 18, 6, 954000000, time.UTC)
	}
	return NewNormalizer(target, append([]Option{OptOpener(opener), OptClock(frozen)}, opts...)...)
}

func s3Event(bucket, key string) events.S3Event {
	return events.S3Event{
		Records: []events.S3EventRecord{{
			S3: events.S3Entity{
				Bucket: events.S3Bucket{Name: bucket},
				Object: events.S3Object{Key: key},
			},
		}},
	}
}

func TestHandleEvent(t *testing.T) {
	svc := mock.NewS3()
	svc.SetObject("landing", "data_2024_07_08T09:18:06.954.json", []byte(orderJSON))
	n := testNormalizer(t, svc)

	// Keys arrive URL-encoded in notification payloads.
	err := n.HandleEvent(context.Background(), s3Event("landing", "data_2024_07_08T09%3A18%3A06.954.json"))
	if err != nil {
		t.Fatalf("handling event: %v", err)
	}

	stem := "2024_07_08T09:18:06.954"
	expKeys := []string{
		"customer/year=2024/month=07/day=08/" + stem + "_customer.parquet",
		"order-products/year=2024/month=07/day=08/" + stem + "_order-products.parquet",
		"order/year=2024/month=07/day=08/" + stem + "_order.parquet",
		"products/year=2024/month=07/day=08/" + stem + "_products.parquet",
	}
	keys := svc.Keys("processed")
	if len(keys) != len(expKeys) {
		t.Fatalf("got keys %v, expected %v", keys, expKeys)
	}
	for i := range expKeys {
		if keys[i] != expKeys[i] {
			t.Fatalf("got keys %v, expected %v", keys, expKeys)
		}
	}

	data, ok := svc.Object("processed", expKeys[3])
	if !ok {
		t.Fatal("products partition missing")
	}
	rows, err := orderlake.ReadParquet[orderlake.ProductRow](data)
	if err != nil {
		t.Fatalf("reading products partition: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 product row, got %d", len(rows))
	}
	frozen := time.Date(2024, time.July, 8, 9, 18, 6, 954000000, time.UTC)
	if rows[0].ProductID != "P001" || rows[0].Price != 50 || rows[0].Quantity != 2 {
		t.Errorf("unexpected product row: %+v", rows[0])
	}
	if !rows[0].CreatedOn.Equal(frozen) {
		t.Errorf("created_on %v, expected frozen clock %v", rows[0].CreatedOn, frozen)
	}
}

func TestHandleEventNoRecords(t *testing.T) {
	n := testNormalizer(t, mock.NewS3())
	if err := n.HandleEvent(context.Background(), events.S3Event{}); err == nil {
		t.Fatal("expected error for empty event, got nil")
	}
}

func TestProcessMalformedRecord(t *testing.T) {
	svc := mock.NewS3()
	key := "data_2024_07_08T09:18:06.954.json"
	svc.SetObject("landing", key, []byte(`{"this is": not json`))
	n := testNormalizer(t, svc)

	if err := n.Process("landing", key); err == nil {
		t.Fatal("expected error for malformed record, got nil")
	}

	// The raw object lands in quarantine and nothing else is written.
	keys := svc.Keys("processed")
	if len(keys) != 1 || keys[0] != QuarantinePrefix+key {
		t.Fatalf("expected only quarantined key, got %v", keys)
	}
	data, _ := svc.Object("processed", QuarantinePrefix+key)
	if string(data) != `{"this is": not json` {
		t.Fatalf("quarantined bytes differ from source: %v", string(data))
	}
}

func TestProcessUndatedKey(t *testing.T) {
	svc := mock.NewS3()
	key := "data_notadate.json"
	svc.SetObject("landing", key, []byte(orderJSON))
	n := testNormalizer(t, svc)

	if err := n.Process("landing", key); err == nil {
		t.Fatal("expected error for undated key, got nil")
	}
	keys := svc.Keys("processed")
	if len(keys) != 1 || keys[0] != QuarantinePrefix+key {
		t.Fatalf("expected only quarantined key, got %v", keys)
	}
}

func TestProcessQuarantineDisabled(t *testing.T) {
	svc := mock.NewS3()
	key := "data_notadate.json"
	svc.SetObject("landing", key, []byte(orderJSON))
	n := testNormalizer(t, svc, OptQuarantine(false))

	if err := n.Process("landing", key); err == nil {
		t.Fatal("expected error for undated key, got nil")
	}
	if keys := svc.Keys("processed"); len(keys) != 0 {
		t.Fatalf("expected no writes with quarantine disabled, got %v", keys)
	}
}

func TestProcessDedup(t *testing.T) {
	svc := mock.NewS3()
	key := "data_2024_07_08T09:18:06.954.json"
	svc.SetObject("landing", key, []byte(orderJSON))

	d, err := orderlake.NewDedup(filepath.Join(t.TempDir(), "seen.db"))
	if err != nil {
		t.Fatalf("opening dedup db: %v", err)
	}
	defer d.Close()
	n := testNormalizer(t, svc, OptDedup(d))

	if err := n.Process("landing", key); err != nil {
		t.Fatalf("processing: %v", err)
	}
	if len(svc.Keys("processed")) != 4 {
		t.Fatalf("expected 4 partition writes, got %v", svc.Keys("processed"))
	}
	seen, err := d.Seen(key)
	if err != nil || !seen {
		t.Fatalf("key not marked after success: seen=%v err=%v", seen, err)
	}

	// Corrupt the source object. A second pass must skip it via the
	// dedup index without ever re-reading it.
	svc.SetObject("landing", key, []byte("garbage"))
	if err := n.Process("landing", key); err != nil {
		t.Fatalf("reprocessing: %v", err)
	}
	if len(svc.Keys("processed")) != 4 {
		t.Fatalf("already-processed key was reprocessed: %v", svc.Keys("processed"))
	}
}

type sliceSource struct {
	recs [][]byte
}

func (s *sliceSource) Record() ([]byte, error) {
	if len(s.recs) == 0 {
		return nil, io.EOF
	}
	rec := s.recs[0]
	s.recs = s.recs[1:]
	return rec, nil
}

func TestConsume(t *testing.T) {
	svc := mock.NewS3()
	svc.SetObject("landing", "data_2024_07_08T09:18:06.954.json", []byte(orderJSON))
	n := testNormalizer(t, svc)

	good, err := json.Marshal(s3Event("landing", "data_2024_07_08T09%3A18%3A06.954.json"))
	if err != nil {
		t.Fatalf("marshaling event: %v", err)
	}
	src := &sliceSource{recs: [][]byte{
		[]byte("not a notification"),
		good,
	}}
	if err := n.Consume(src); err != nil {
		t.Fatalf("consuming: %v", err)
	}
	if len(svc.Keys("processed")) != 4 {
		t.Fatalf("expected 4 partition writes, got %v", svc.Keys("processed"))
	}
}
