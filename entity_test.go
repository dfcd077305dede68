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

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		exp     EntityType
	}{
		{
			name:    "customer",
			columns: []string{"customer_id", "name", "email", "street", "city", "state", "zip_code", "created_on"},
			exp:     EntityCustomer,
		},
		{
			name:    "products",
			columns: []string{"product_id", "price", "quantity", "created_on"},
			exp:     EntityProducts,
		},
		{
			name:    "order",
			columns: []string{"order_id", "order_date", "total_amount", "customer_id", "created_on"},
			exp:     EntityOrder,
		},
		{
			name:    "order-products link never classifies as order or products",
			columns: []string{"order_id", "product_id", "created_on"},
			exp:     EntityOrderProducts,
		},
		{
			name:    "column order doesn't matter",
			columns: []string{"created_on", "product_id", "order_id"},
			exp:     EntityOrderProducts,
		},
		{
			name:    "no signature",
			columns: []string{"created_on", "what"},
			exp:     EntityUnclassified,
		},
		{
			name:    "empty",
			columns: nil,
			exp:     EntityUnclassified,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.columns); got != test.exp {
				t.Fatalf("got %v, expected %v", got, test.exp)
			}
		})
	}
}

func TestEntityTypeString(t *testing.T) {
	if EntityOrderProducts.String() != "order-products" {
		t.Fatalf("unexpected name: %v", EntityOrderProducts)
	}
	if EntityType(0).String() != "unclassified" {
		t.Fatalf("zero value must be unclassified, got %v", EntityType(0))
	}
}
