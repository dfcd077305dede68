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
	"io"
	"time"
)

// CustomerRow is the customer table projection: the nested customer
// object with its address flattened alongside.
type CustomerRow struct {
	CustomerID string    `parquet:"customer_id"`
	Name       string    `parquet:"name"`
	Email      string    `parquet:"email"`
	Street     string    `parquet:"street"`
	City       string    `parquet:"city"`
	State      string    `parquet:"state"`
	ZipCode    string    `parquet:"zip_code"`
	CreatedOn  time.Time `parquet:"created_on,timestamp(millisecond)"`
}

// ProductRow is one product line of an order.
type ProductRow struct {
	ProductID string    `parquet:"product_id"`
	Price     float64   `parquet:"price"`
	Quantity  int64     `parquet:"quantity"`
	CreatedOn time.Time `parquet:"created_on,timestamp(millisecond)"`
}

// OrderRow is the order header with its owning customer's id.
type OrderRow struct {
	OrderID     string    `parquet:"order_id"`
	OrderDate   string    `parquet:"order_date"`
	TotalAmount float64   `parquet:"total_amount"`
	CustomerID  string    `parquet:"customer_id"`
	CreatedOn   time.Time `parquet:"created_on,timestamp(millisecond)"`
}

// OrderProductRow links an order to one of its products.
type OrderProductRow struct {
	OrderID   string    `parquet:"order_id"`
	ProductID string    `parquet:"product_id"`
	CreatedOn time.Time `parquet:"created_on,timestamp(millisecond)"`
}

// Table is one derived tabular projection of a source order, ready to
// be classified by its column set and encoded as parquet.
type Table struct {
	columns []string
	numRows int
	encode  func(io.Writer) error
}

// Columns reports the table's column names in schema order.
func (t Table) Columns() []string { return t.columns }

// NumRows reports how many rows the table holds.
func (t Table) NumRows() int { return t.numRows }

// Encode writes the table to w as snappy-compressed parquet.
func (t Table) Encode(w io.Writer) error { return t.encode(w) }

func newTable[T any](rows []T) Table {
	return Table{
		columns: columnsOf[T](),
		numRows: len(rows),
		encode: func(w io.Writer) error {
			return WriteParquet(w, rows)
		},
	}
}

// Tables derives the four tabular projections of one source record.
// All four share the single createdOn ingestion timestamp, so one value
// must be generated per invocation, not per table.
func Tables(o *Order, createdOn time.Time) []Table {
	customer := []CustomerRow{{
		CustomerID: o.Customer.CustomerID,
		Name:       o.Customer.Name,
		Email:      o.Customer.Email,
		Street:     o.Customer.Address.Street,
		City:       o.Customer.Address.City,
		State:      o.Customer.Address.State,
		ZipCode:    o.Customer.Address.ZipCode,
		CreatedOn:  createdOn,
	}}

	products := make([]ProductRow, len(o.Products))
	links := make([]OrderProductRow, len(o.Products))
	for i, p := range o.Products {
		products[i] = ProductRow{
			ProductID: p.ProductID,
			Price:     p.Price,
			Quantity:  p.Quantity,
			CreatedOn: createdOn,
		}
		links[i] = OrderProductRow{
			OrderID:   o.OrderID,
			ProductID: p.ProductID,
			CreatedOn: createdOn,
		}
	}

	order := []OrderRow{{
		OrderID:     o.OrderID,
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount,
		CustomerID:  o.Customer.CustomerID,
		CreatedOn:   createdOn,
	}}

	return []Table{
		newTable(customer),
		newTable(products),
		newTable(order),
		newTable(links),
	}
}
