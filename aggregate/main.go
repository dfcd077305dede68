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

package aggregate

import (
	"github.com/pilosa/orderlake/aws/s3"
	"github.com/pkg/errors"
)

// Main contains the configuration for one daily aggregation run.
type Main struct {
	ProcessedBucket  string `help:"S3 bucket holding partitioned parquet files written by the normalizer."`
	AggregatedBucket string `help:"S3 bucket receiving the daily aggregated parquet files."`
	Region           string `help:"AWS region to use."`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region: "us-east-1",
	}
}

// Run performs one aggregation pass over today's partitions.
func (m *Main) Run() error {
	processed, err := s3.NewBucket(m.ProcessedBucket, s3.OptRegion(m.Region))
	if err != nil {
		return errors.Wrap(err, "opening processed bucket")
	}
	aggregated, err := s3.NewBucket(m.AggregatedBucket, s3.OptRegion(m.Region))
	if err != nil {
		return errors.Wrap(err, "opening aggregated bucket")
	}
	return NewAggregator(processed, aggregated).Run()
}
