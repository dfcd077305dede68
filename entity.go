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

// EntityType names one of the derived table kinds. The zero value is
// EntityUnclassified so an unmatched column signature can never be
// mistaken for a real entity.
type EntityType int

// The known entity types plus the explicit no-match outcome.
const (
	EntityUnclassified EntityType = iota
	EntityCustomer
	EntityProducts
	EntityOrder
	EntityOrderProducts
)

func (e EntityType) String() string {
	switch e {
	case EntityCustomer:
		return "customer"
	case EntityProducts:
		return "products"
	case EntityOrder:
		return "order"
	case EntityOrderProducts:
		return "order-products"
	}
	return "unclassified"
}

// Classify determines the entity type of a derived table from its
// column set. The combined order_id+product_id signature must be
// checked before either single-column signature, otherwise link-table
// rows would classify as plain order or product rows. The order_id
// check likewise runs before customer_id since the order table carries
// the owning customer's id.
func Classify(columns []string) EntityType {
	has := make(map[string]bool, len(columns))
	for _, col := range columns {
		has[col] = true
	}
	switch {
	case has["order_id"] && has["product_id"]:
		return EntityOrderProducts
	case has["order_id"]:
		return EntityOrder
	case has["product_id"]:
		return EntityProducts
	case has["customer_id"]:
		return EntityCustomer
	}
	return EntityUnclassified
}
