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
	"testing"
	"time"

	"github.com/pilosa/orderlake"
)

func TestOrderGenerator(t *testing.T) {
	og := NewOrderGenerator(7)
	for i := 0; i < 100; i++ {
		o := og.Record()
		if len(o.OrderID) != 6 {
			t.Fatalf("order_id '%v' is not 6 characters", o.OrderID)
		}
		if len(o.Products) != len(productPrices) {
			t.Fatalf("expected the full %d-product catalog, got %d lines",
				len(productPrices), len(o.Products))
		}
		var total float64
		for _, p := range o.Products {
			if p.Quantity < 1 || p.Quantity > 5 {
				t.Fatalf("quantity %d out of range", p.Quantity)
			}
			total += p.Price * float64(p.Quantity)
		}
		if o.TotalAmount != total {
			t.Fatalf("total_amount %v inconsistent with product lines (%v)", o.TotalAmount, total)
		}

		// A generated record must survive the ingestion boundary.
		data, err := json.Marshal(o)
		if err != nil {
			t.Fatalf("marshaling generated order: %v", err)
		}
		if _, err := orderlake.ParseOrder(data); err != nil {
			t.Fatalf("generated order failed validation: %v", err)
		}
	}
}

func TestFileName(t *testing.T) {
	og := NewOrderGenerator(7)
	o := og.Record()
	at := time.Date(2024, time.July, 8, 9, 18, 6, 954000000, time.UTC)
	name := FileName(o, at)

	// The name must parse back to the order's own business date.
	d, err := orderlake.ParseDate(orderlake.ObjectStem(name))
	if err != nil {
		t.Fatalf("generated file name '%v' has no parseable date: %v", name, err)
	}
	exp := d.Year + "-" + d.Month + "-" + d.Day
	if o.OrderDate != exp {
		t.Fatalf("file name date %v does not match order date %v", exp, o.OrderDate)
	}
}

func TestFileNameDistinctSameDay(t *testing.T) {
	o := &orderlake.Order{OrderDate: "2024-07-08"}
	a := FileName(o, time.Date(2024, time.July, 8, 9, 18, 6, 954000000, time.UTC))
	b := FileName(o, time.Date(2024, time.July, 8, 9, 18, 7, 0, time.UTC))
	if a == b {
		t.Fatalf("same-day uploads collide on '%v'", a)
	}
}
