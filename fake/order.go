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
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pilosa/orderlake"
)

// productPrices maps the catalog's product ids to their fixed prices.
var productPrices = []orderlake.ProductLine{
	{ProductID: "P001", Price: 50.00},
	{ProductID: "P002", Price: 30.00},
	{ProductID: "P003", Price: 20.00},
	{ProductID: "P004", Price: 40.00},
}

var cityList = []string{"Anytown", "Sometown", "Othertown"}
var stateList = []string{"CA", "NY", "TX"}

const orderIDChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// OrderGenerator generates fake Orders.
type OrderGenerator struct {
	g *gen
	r *rand.Rand
}

// NewOrderGenerator initializes a new OrderGenerator.
func NewOrderGenerator(seed int64) *OrderGenerator {
	return &OrderGenerator{
		g: newGen(seed),
		r: rand.New(rand.NewSource(seed)),
	}
}

// Record returns a random Order with realistic-ish values: the full
// fixed product catalog, a zipfian-repeating customer, and a total
// consistent with the product lines.
func (og *OrderGenerator) Record() *orderlake.Order {
	id := make([]byte, 6)
	for i := range id {
		id[i] = orderIDChars[og.r.Intn(len(orderIDChars))]
	}

	products := make([]orderlake.ProductLine, len(productPrices))
	var total float64
	for i, p := range productPrices {
		p.Quantity = int64(og.r.Intn(5) + 1)
		products[i] = p
		total += p.Price * float64(p.Quantity)
	}

	name := og.g.String(8, 10000)
	return &orderlake.Order{
		OrderID:   string(id),
		OrderDate: fmt.Sprintf("2024-%02d-%02d", og.r.Intn(5)+1, og.r.Intn(28)+1),
		Customer: orderlake.Customer{
			CustomerID: fmt.Sprintf("%d", og.g.Uint64(10)),
			Name:       name,
			Email:      name + "@example.com",
			Address: orderlake.Address{
				Street:  fmt.Sprintf("%d %c St", og.r.Intn(100)+1, 'A'+rune(og.r.Intn(26))),
				City:    cityList[og.g.Uint64(len(cityList))],
				State:   stateList[og.g.Uint64(len(stateList))],
				ZipCode: fmt.Sprintf("%05d", og.r.Intn(100000)),
			},
		},
		Products:    products,
		TotalAmount: total,
	}
}

// FileName builds the landing-bucket key for an order: the order date
// plus an upload time down to milliseconds, so same-day orders don't
// overwrite each other. The normalizer's business-date parsing depends
// on this data_<datetime>.json convention.
func FileName(o *orderlake.Order, at time.Time) string {
	date := strings.ReplaceAll(o.OrderDate, "-", "_")
	return fmt.Sprintf("data_%sT%s.json", date, at.Format("15:04:05.000"))
}
