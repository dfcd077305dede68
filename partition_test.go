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
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		stem             string
		year, month, day string
		wantErr          bool
	}{
		{stem: "2024_07_08T09:18:06.954", year: "2024", month: "07", day: "08"},
		{stem: "2024_07_08", year: "2024", month: "07", day: "08"},
		{stem: "1999_12_31T23:59:59", year: "1999", month: "12", day: "31"},
		{stem: "not-a-date", wantErr: true},
		{stem: "2024-07-08", wantErr: true},
		{stem: "24_07_08", wantErr: true},
		{stem: "", wantErr: true},
	}
	for _, test := range tests {
		d, err := ParseDate(test.stem)
		if test.wantErr {
			if err == nil {
				t.Errorf("expected error for stem '%v', got date %v", test.stem, d)
			}
			continue
		}
		if err != nil {
			t.Errorf("unexpected error for stem '%v': %v", test.stem, err)
			continue
		}
		if d.Year != test.year || d.Month != test.month || d.Day != test.day {
			t.Errorf("stem '%v': got %v-%v-%v, expected %v-%v-%v",
				test.stem, d.Year, d.Month, d.Day, test.year, test.month, test.day)
		}
	}
}

func TestObjectStem(t *testing.T) {
	stem := ObjectStem("data_2024_07_08T09:18:06.954.json")
	if stem != "2024_07_08T09:18:06.954" {
		t.Fatalf("unexpected stem: %v", stem)
	}
}

func TestObjectKey(t *testing.T) {
	d := Date{Year: "2024", Month: "07", Day: "08"}
	key := ObjectKey(EntityProducts, d, "2024_07_08T09:18:06.954")
	exp := "products/year=2024/month=07/day=08/2024_07_08T09:18:06.954_products.parquet"
	if key != exp {
		t.Fatalf("got key '%v', expected '%v'", key, exp)
	}
}

func TestAggregateKey(t *testing.T) {
	d := Date{Year: "2024", Month: "07", Day: "08"}
	prefix := PartitionPrefix(EntityCustomer, d)
	key := AggregateKey(prefix, d, "customer")
	exp := "customer/year=2024/month=07/day=08/2024_07_08_customer_aggregated.parquet"
	if key != exp {
		t.Fatalf("got key '%v', expected '%v'", key, exp)
	}
}

func TestDateOf(t *testing.T) {
	d := DateOf(time.Date(2024, time.July, 8, 1, 0, 0, 0, time.UTC))
	if d.Year != "2024" || d.Month != "07" || d.Day != "08" {
		t.Fatalf("unexpected date parts: %+v", d)
	}
}
