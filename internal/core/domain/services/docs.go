// Package services contains stateless domain services that implement business
// rules spanning value objects, such as mapping requested order statuses onto
// the correct lifecycle field.
package services
