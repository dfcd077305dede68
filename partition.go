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

package orderlake

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Source objects are named data_<stem>.json where the stem leads with
// the business date. Only the date prefix is used for partitioning; the
// full stem (which may carry a datetime with a sub-second suffix, e.g.
// 2024_07_08T09:18:06.954) is reused verbatim in output file names.
var datePattern = regexp.MustCompile(`^\d{4}_\d{2}_\d{2}`)

// Date is the business date extracted from a source object's name. It
// is deliberately not read from the record's order_date field - the
// file naming convention alone decides partition placement.
type Date struct {
	Year  string
	Month string
	Day   string
}

// DateOf converts a wall-clock time to a business date.
func DateOf(t time.Time) Date {
	return Date{
		Year:  fmt.Sprintf("%04d", t.Year()),
		Month: fmt.Sprintf("%02d", int(t.Month())),
		Day:   fmt.Sprintf("%02d", t.Day()),
	}
}

// ObjectStem strips the data_ prefix and .json suffix from a source
// object key, leaving the business-datetime stem.
func ObjectStem(key string) string {
	return strings.TrimSuffix(strings.TrimPrefix(key, "data_"), ".json")
}

// ParseDate extracts the business date from an object stem. The stem
// must lead with YYYY_MM_DD; anything else is a classification error
// that aborts the invocation.
func ParseDate(stem string) (Date, error) {
	if !datePattern.MatchString(stem) {
		return Date{}, errors.Errorf("stem '%v' does not lead with a YYYY_MM_DD date", stem)
	}
	return Date{Year: stem[:4], Month: stem[5:7], Day: stem[8:10]}, nil
}

// PartitionPrefix builds the storage path segment grouping output files
// by entity type and calendar date.
func PartitionPrefix(e EntityType, d Date) string {
	return fmt.Sprintf("%s/year=%s/month=%s/day=%s/", e, d.Year, d.Month, d.Day)
}

// ObjectKey builds the destination key for one derived table file.
func ObjectKey(e EntityType, d Date, stem string) string {
	return fmt.Sprintf("%s%s_%s.parquet", PartitionPrefix(e, d), stem, e)
}

// AggregateKey builds the destination key for a daily rollup file. The
// naming is load-bearing for downstream consumers:
// {prefix}{YYYY}_{MM}_{DD}_{suffix}_aggregated.parquet.
func AggregateKey(prefix string, d Date, suffix string) string {
	return fmt.Sprintf("%s%s_%s_%s_%s_aggregated.parquet", prefix, d.Year, d.Month, d.Day, suffix)
}
