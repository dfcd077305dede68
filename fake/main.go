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

package fake

import (
	"encoding/json"
	"log"
	"time"

	"github.com/pilosa/orderlake/aws/s3"
	"github.com/pkg/errors"
)

// Main contains the configuration for uploading synthetic orders to the
// landing bucket.
type Main struct {
	SourceBucket string `help:"S3 bucket to upload generated order JSON objects to."`
	Region       string `help:"AWS region to use."`
	Count        int    `help:"Number of orders to generate."`
	Seed         int64  `help:"Random seed."`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region: "us-east-1",
		Count:  50,
	}
}

// Run generates Count orders and uploads each as data_<datetime>.json.
func (m *Main) Run() error {
	bucket, err := s3.NewBucket(m.SourceBucket, s3.OptRegion(m.Region))
	if err != nil {
		return errors.Wrap(err, "opening source bucket")
	}
	og := NewOrderGenerator(m.Seed)
	for i := 0; i < m.Count; i++ {
		order := og.Record()
		data, err := json.Marshal(order)
		if err != nil {
			return errors.Wrap(err, "encoding order")
		}
		key := FileName(order, time.Now().UTC())
		if err := bucket.Put(key, data); err != nil {
			return errors.Wrapf(err, "uploading order %d", i)
		}
		log.Printf("Uploaded %v to S3 bucket %v", key, m.SourceBucket)
	}
	return nil
}
