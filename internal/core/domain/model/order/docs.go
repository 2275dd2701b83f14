// Package order contains the Order aggregate and its lifecycle value objects.
//
// An order carries two lifecycle fields: the generic Status and the
// courier-facing CodStatus. Exactly one of them is authoritative at any time,
// selected by the payment method. The StatusUpdate value object makes that
// selection explicit so business logic never has to guess which field to
// read or write.
package order
