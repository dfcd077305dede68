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

package kafka

import (
	"log"

	"github.com/pilosa/orderlake"
	"github.com/pilosa/orderlake/aws/s3"
	"github.com/pilosa/orderlake/normalize"
	"github.com/pkg/errors"
)

// Main contains the configuration for a long-running normalizer worker
// fed by bucket notifications on a Kafka topic.
type Main struct {
	KafkaHosts   []string `help:"Comma separated list of Kafka hosts and ports."`
	Topics       []string `help:"Topics to consume bucket notifications from."`
	Group        string   `help:"Group id to use when consuming from Kafka."`
	TargetBucket string   `help:"S3 bucket receiving partitioned parquet output."`
	Region       string   `help:"AWS region to use."`
	DedupPath    string   `help:"Optional bolt file recording processed keys; re-delivered notifications are skipped."`
	MaxMsgs      int      `help:"Stop after this many messages (0 means run forever)."`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		KafkaHosts: []string{"localhost:9092"},
		Topics:     []string{"bucket-events"},
		Group:      "orderlake-normalizer",
		Region:     "us-east-1",
	}
}

// Run consumes notifications until the source is exhausted (or
// forever, when MaxMsgs is 0).
func (m *Main) Run() error {
	target, err := s3.NewBucket(m.TargetBucket, s3.OptRegion(m.Region))
	if err != nil {
		return errors.Wrap(err, "opening target bucket")
	}

	opts := []normalize.Option{normalize.OptRegion(m.Region)}
	if m.DedupPath != "" {
		dedup, err := orderlake.NewDedup(m.DedupPath)
		if err != nil {
			return errors.Wrap(err, "opening dedup index")
		}
		defer dedup.Close()
		opts = append(opts, normalize.OptDedup(dedup))
	}
	n := normalize.NewNormalizer(target, opts...)

	src := NewSource()
	src.Hosts = m.KafkaHosts
	src.Topics = m.Topics
	src.Group = m.Group
	src.MaxMsgs = m.MaxMsgs
	if err := src.Open(); err != nil {
		return errors.Wrap(err, "opening kafka source")
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Printf("closing kafka source: %v", err)
		}
	}()

	return errors.Wrap(n.Consume(src), "consuming notifications")
}
