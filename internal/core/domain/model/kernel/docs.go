// Package kernel contains shared value objects used across the shipping domain:
// UUID identifiers, monetary amounts, and the constructor guard that enforces
// factory-function construction of domain objects.
//
// Value objects in this package are immutable and validate themselves, so
// aggregates built on top of them can rely on their invariants holding.
package kernel
