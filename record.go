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
	"encoding/json"

	"github.com/pkg/errors"
)

// Order is one source record as uploaded to the landing bucket. Every
// field is decoded at the boundary so that missing or malformed data
// fails here, not deep inside the pipeline.
type Order struct {
	OrderID     string        `json:"order_id"`
	OrderDate   string        `json:"order_date"`
	Customer    Customer      `json:"customer"`
	Products    []ProductLine `json:"products"`
	TotalAmount float64       `json:"total_amount"`
}

// Customer is the nested customer object of an order.
type Customer struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Address    Address `json:"address"`
}

// Address is the customer's nested address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

// ProductLine is one entry of an order's products array.
type ProductLine struct {
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
}

// ParseOrder decodes and validates one source record. It returns an
// error for malformed JSON or for records missing the identifiers the
// derived tables hang off of.
func ParseOrder(data []byte) (*Order, error) {
	var o Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, errors.Wrap(err, "decoding order record")
	}
	if o.OrderID == "" {
		return nil, errors.New("order record has no order_id")
	}
	if o.Customer.CustomerID == "" {
		return nil, errors.Errorf("order '%v' has no customer_id", o.OrderID)
	}
	for i, p := range o.Products {
		if p.ProductID == "" {
			return nil, errors.Errorf("order '%v' products[%d] has no product_id", o.OrderID, i)
		}
	}
	return &o, nil
}
