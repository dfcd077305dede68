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

// Package mock holds in-memory doubles for the pipeline's external
// interfaces, usable from any package's tests.
package mock

import (
	"bytes"
	"io/ioutil"
	"sort"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// S3 is an in-memory S3 service double. Only the calls the pipeline
// makes are implemented; anything else panics via the embedded nil
// interface, which is exactly what a test wants.
type S3 struct {
	s3iface.S3API

	mu      sync.Mutex
	objects map[string]map[string][]byte

	// PageSize bounds ListObjectsV2 pages. Defaults to 1000 like S3.
	PageSize int
	// ListCalls counts ListObjectsV2 invocations across all buckets.
	ListCalls int
	// FailList makes ListObjectsV2 return an error for matching
	// prefixes.
	FailList map[string]bool
}

// NewS3 returns an empty in-memory S3.
func NewS3() *S3 {
	return &S3{
		objects:  make(map[string]map[string][]byte),
		PageSize: 1000,
		FailList: make(map[string]bool),
	}
}

// Object returns the stored bytes for bucket/key and whether it exists.
func (m *S3) Object(bucket, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket][key]
	return data, ok
}

// SetObject seeds an object directly, bypassing the API surface.
func (m *S3) SetObject(bucket, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects[bucket] == nil {
		m.objects[bucket] = make(map[string][]byte)
	}
	m.objects[bucket][key] = data
}

// Keys returns every key in bucket, sorted.
func (m *S3) Keys(bucket string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedKeys(bucket)
}

func (m *S3) sortedKeys(bucket string) []string {
	keys := make([]string, 0, len(m.objects[bucket]))
	for key := range m.objects[bucket] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetObject implements the fetch-by-key read contract.
func (m *S3) GetObject(in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[aws.StringValue(in.Bucket)][aws.StringValue(in.Key)]
	if !ok {
		return nil, errors.Errorf("NoSuchKey: %v", aws.StringValue(in.Key))
	}
	return &s3.GetObjectOutput{
		Body:          ioutil.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

// PutObject implements the put-by-key write contract, overwriting
// silently like S3 does.
func (m *S3) PutObject(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	data, err := ioutil.ReadAll(in.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading put body")
	}
	m.SetObject(aws.StringValue(in.Bucket), aws.StringValue(in.Key), data)
	return &s3.PutObjectOutput{}, nil
}

// ListObjectsV2 implements paginated listing: lexicographic key order,
// at most PageSize keys per page, truncation flag plus an opaque
// continuation token when more remain.
func (m *S3) ListObjectsV2(in *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++

	prefix := aws.StringValue(in.Prefix)
	if m.FailList[prefix] {
		return nil, errors.Errorf("AccessDenied: listing '%v'", prefix)
	}

	var matched []string
	for _, key := range m.sortedKeys(aws.StringValue(in.Bucket)) {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			matched = append(matched, key)
		}
	}

	start := 0
	if in.ContinuationToken != nil {
		n, err := strconv.Atoi(aws.StringValue(in.ContinuationToken))
		if err != nil {
			return nil, errors.Wrap(err, "decoding continuation token")
		}
		start = n
	}
	end := start + m.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(matched))}
	for _, key := range matched[start:end] {
		out.Contents = append(out.Contents, &s3.Object{Key: aws.String(key)})
	}
	if aws.BoolValue(out.IsTruncated) {
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}
