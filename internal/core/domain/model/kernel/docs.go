// Package kernel contains shared domain primitives used across aggregates.
//
// It currently provides the UUID value object that identifies orders,
// customers, products, and addresses. Value objects in this package are
// immutable, validate themselves, and can only be created through their
// constructor functions.
package kernel
