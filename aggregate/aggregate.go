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

// Package aggregate rolls a day's partitioned parquet files up into one
// aggregated file per entity type.
package aggregate

import (
	"log"
	"time"

	"github.com/pilosa/orderlake"
	"github.com/pkg/errors"
)

// Option is a functional option type for Aggregator.
type Option func(a *Aggregator)

// OptClock overrides the clock deciding which UTC day to aggregate.
func OptClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// Aggregator unions all derived-table files written under today's
// partitions into one aggregated parquet file per entity type.
type Aggregator struct {
	processed  orderlake.Store
	aggregated orderlake.Store
	now        func() time.Time
}

// NewAggregator returns an Aggregator reading processed partitions and
// writing daily rollups.
func NewAggregator(processed, aggregated orderlake.Store, opts ...Option) *Aggregator {
	a := &Aggregator{
		processed:  processed,
		aggregated: aggregated,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run aggregates the customer, order, and products partitions of the
// current UTC day, computed once at start. Each prefix is processed
// independently: a listing failure skips that prefix only. The key
// listing is snapshotted before any fetches, so files written after the
// listing call are excluded from this run and picked up by the next.
func (a *Aggregator) Run() error {
	date := orderlake.DateOf(a.now().UTC())

	var firstErr error
	for _, entity := range []orderlake.EntityType{
		orderlake.EntityCustomer,
		orderlake.EntityOrder,
		orderlake.EntityProducts,
	} {
		var err error
		switch entity {
		case orderlake.EntityCustomer:
			err = rollup[orderlake.CustomerRow](a, entity, date)
		case orderlake.EntityOrder:
			err = rollup[orderlake.OrderRow](a, entity, date)
		case orderlake.EntityProducts:
			err = rollup[orderlake.ProductRow](a, entity, date)
		}
		if err != nil {
			log.Printf("Failed to aggregate the %v prefix: %v", entity, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// rollup unions every file under one entity's partition for the day.
// Individual objects that can't be fetched or decoded are logged and
// skipped so one corrupt file can't block the whole daily rollup.
func rollup[T any](a *Aggregator, entity orderlake.EntityType, date orderlake.Date) error {
	prefix := orderlake.PartitionPrefix(entity, date)
	keys, err := a.processed.ListAll(prefix)
	if err != nil {
		return errors.Wrap(err, "listing partition")
	}
	log.Printf("Successfully obtained S3 objects with prefix: %v. Number of S3 objects: %d", prefix, len(keys))

	var rows []T
	for _, key := range keys {
		data, err := a.processed.Get(key)
		if err != nil {
			log.Printf("Skipping the S3 object with key: %v: %v", key, err)
			continue
		}
		part, err := orderlake.ReadParquet[T](data)
		if err != nil {
			log.Printf("Skipping undecodable S3 object with key: %v: %v", key, err)
			continue
		}
		rows = append(rows, part...)
	}
	if len(rows) == 0 {
		log.Printf("No rows under prefix: %v, skipping aggregate for %v", prefix, entity)
		return nil
	}

	data, err := orderlake.MarshalParquet(rows)
	if err != nil {
		return errors.Wrap(err, "encoding aggregate")
	}
	outKey := orderlake.AggregateKey(prefix, date, entity.String())
	if err := a.aggregated.Put(outKey, data); err != nil {
		return errors.Wrap(err, "putting aggregate")
	}
	log.Printf("Successfully uploaded the S3 object with key: %v. Rows: %d", outKey, len(rows))
	return nil
}
