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

// Package s3 wraps the small slice of the S3 API the pipeline touches:
// get, put, upload-from-file, and paginated listing. The service client
// is injected so tests can substitute a fake.
package s3

import (
	"bytes"
	"io/ioutil"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// Option is a functional option type for Bucket.
type Option func(b *Bucket)

// OptRegion sets the AWS region used when the Bucket constructs its own
// service client.
func OptRegion(region string) Option {
	return func(b *Bucket) {
		b.region = region
	}
}

// OptService injects an S3 service client, bypassing session setup.
func OptService(svc s3iface.S3API) Option {
	return func(b *Bucket) {
		b.svc = svc
	}
}

// Bucket is an object-store handle scoped to one S3 bucket.
type Bucket struct {
	name   string
	region string
	svc    s3iface.S3API
}

// NewBucket returns a Bucket with the options applied, creating an AWS
// session unless a service client was injected.
func NewBucket(name string, opts ...Option) (*Bucket, error) {
	if name == "" {
		return nil, errors.New("bucket name is required")
	}
	b := &Bucket{name: name}
	for _, opt := range opts {
		opt(b)
	}
	if b.svc == nil {
		cfg := &aws.Config{}
		if b.region != "" {
			cfg.Region = aws.String(b.region)
		}
		sess, err := session.NewSession(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "getting new session")
		}
		b.svc = s3.New(sess)
	}
	return b, nil
}

// Name returns the bucket name.
func (b *Bucket) Name() string { return b.name }

// Get fetches the object's bytes by key.
func (b *Bucket) Get(key string) ([]byte, error) {
	resp, err := b.svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "getting object '%v' from bucket '%v'", key, b.name)
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	return data, errors.Wrapf(err, "reading object '%v'", key)
}

// Put writes data at key, silently overwriting any existing object.
func (b *Bucket) Put(key string, data []byte) error {
	_, err := b.svc.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return errors.Wrapf(err, "putting object '%v' to bucket '%v'", key, b.name)
}

// UploadFile streams a local file to key.
func (b *Bucket) UploadFile(key, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "opening '%v'", filename)
	}
	defer f.Close()
	_, err = b.svc.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
		Body:   f,
	})
	return errors.Wrapf(err, "uploading '%v' as '%v' to bucket '%v'", filename, key, b.name)
}

// ListAll collects every object key under prefix. The listing API
// returns at most 1000 keys per page and signals truncation with an
// opaque continuation token; ListAll follows the token until the
// listing reports non-truncated.
func (b *Bucket) ListAll(prefix string) ([]string, error) {
	var keys []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(b.name),
		Prefix: aws.String(prefix),
	}
	for {
		resp, err := b.svc.ListObjectsV2(input)
		if err != nil {
			return nil, errors.Wrapf(err, "listing objects under '%v' in bucket '%v'", prefix, b.name)
		}
		for _, obj := range resp.Contents {
			keys = append(keys, aws.StringValue(obj.Key))
		}
		if !aws.BoolValue(resp.IsTruncated) {
			return keys, nil
		}
		input.ContinuationToken = resp.NextContinuationToken
	}
}
