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

// orderlake turns raw order documents landing in an S3 bucket into a
// partitioned parquet lake, and rolls the partitions up into daily
// aggregate files.
//
// The pipeline has two halves which never call each other - they meet
// only through the partition layout in the processed bucket.
//
// 1. Normalizer (package normalize)
//
//    Runs once per uploaded JSON object, either as an AWS Lambda behind
//    bucket notifications (cmd/normalizer-lambda) or as a long-running
//    worker fed the same notification payloads over a Kafka topic
//    (orderlake worker). One source order fans out into four derived
//    tables - customer, products, order, and the order-products link
//    table - each stamped with a shared created_on timestamp, encoded
//    as snappy parquet, and written under
//    {entity}/year=YYYY/month=MM/day=DD/. The partition date comes from
//    the source object's name (data_<datetime>.json), never from the
//    record body.
//
// 2. Aggregator (package aggregate)
//
//    Runs on a schedule (orderlake aggregate). For each of the
//    customer, order, and products prefixes of the current UTC day it
//    lists every parquet file (following listing continuation tokens),
//    concatenates the rows, and writes one aggregated file per entity
//    to the aggregated bucket.
//
// The root package holds the pieces both halves share: the typed source
// record, the derived table builders, the column-signature classifier,
// business-date and partition-key handling, and the parquet codec.
package orderlake
