// Package parcel contains the Parcel aggregate: the courier-side shipment
// record created for an order. A parcel starts as a placeholder without a
// tracking code, receives tracking exactly once when the courier accepts the
// creation call, and accumulates an append-only status history from
// delivery-status polls.
package parcel
