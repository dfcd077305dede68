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

func TestParseOrder(t *testing.T) {
	data := []byte(`{
		"order_id": "A1B2C3",
		"order_date": "2024-07-08",
		"customer": {
			"customer_id": "42",
			"name": "Marsha",
			"email": "marsha@example.com",
			"address": {"street": "123 Main St", "city": "Austin", "state": "TX", "zip_code": "78701"}
		},
		"products": [{"product_id": "P001", "price": 50.0, "quantity": 2}],
		"total_amount": 100.0
	}`)
	o, err := ParseOrder(data)
	if err != nil {
		t.Fatalf("parsing valid order: %v", err)
	}
	if o.OrderID != "A1B2C3" {
		t.Errorf("unexpected order_id: %v", o.OrderID)
	}
	if o.Customer.Address.City != "Austin" {
		t.Errorf("unexpected city: %v", o.Customer.Address.City)
	}
	if len(o.Products) != 1 || o.Products[0].Quantity != 2 {
		t.Errorf("unexpected products: %+v", o.Products)
	}
	if o.TotalAmount != 100.0 {
		t.Errorf("unexpected total_amount: %v", o.TotalAmount)
	}
}

func TestParseOrderErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed json", data: `{"order_id": `},
		{name: "not an object", data: `[1, 2, 3]`},
		{name: "missing order_id", data: `{"customer": {"customer_id": "42"}}`},
		{name: "missing customer_id", data: `{"order_id": "A1"}`},
		{
			name: "product without product_id",
			data: `{"order_id": "A1", "customer": {"customer_id": "42"}, "products": [{"price": 5.0}]}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseOrder([]byte(test.data)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
