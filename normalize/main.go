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
	"log"

	"github.com/pilosa/orderlake"
	"github.com/pilosa/orderlake/aws/s3"
	"github.com/pkg/errors"
)

// Main contains the configuration for re-driving the normalizer over
// source objects already sitting in the landing bucket, for example
// after a notification outage.
type Main struct {
	SourceBucket string `help:"S3 bucket holding raw order JSON objects."`
	TargetBucket string `help:"S3 bucket receiving partitioned parquet output."`
	Region       string `help:"AWS region to use."`
	Prefix       string `help:"Only objects in the source bucket matching this prefix are reprocessed."`
	DedupPath    string `help:"Optional bolt file recording processed keys; keys already marked are skipped."`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region: "us-east-1",
		Prefix: "data_",
	}
}

// Run lists the source bucket and pushes every matching object through
// the normalizer. Per-object failures are logged and the backfill keeps
// going.
func (m *Main) Run() error {
	source, err := s3.NewBucket(m.SourceBucket, s3.OptRegion(m.Region))
	if err != nil {
		return errors.Wrap(err, "opening source bucket")
	}
	target, err := s3.NewBucket(m.TargetBucket, s3.OptRegion(m.Region))
	if err != nil {
		return errors.Wrap(err, "opening target bucket")
	}

	opts := []Option{OptRegion(m.Region)}
	if m.DedupPath != "" {
		dedup, err := orderlake.NewDedup(m.DedupPath)
		if err != nil {
			return errors.Wrap(err, "opening dedup index")
		}
		defer dedup.Close()
		opts = append(opts, OptDedup(dedup))
	}
	n := NewNormalizer(target, opts...)

	keys, err := source.ListAll(m.Prefix)
	if err != nil {
		return errors.Wrap(err, "listing source objects")
	}
	var failed int
	for _, key := range keys {
		if err := n.Process(m.SourceBucket, key); err != nil {
			log.Printf("Failed to process the S3 object with key: %v from the bucket: %v: %v", key, m.SourceBucket, err)
			failed++
		}
	}
	log.Printf("Backfill complete. Objects: %d, failed: %d", len(keys), failed)
	if failed > 0 {
		return errors.Errorf("%d of %d objects failed to process", failed, len(keys))
	}
	return nil
}
