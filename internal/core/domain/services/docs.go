// Package services contains stateless domain services that coordinate rules
// spanning more than one aggregate concern.
//
// CancellationPolicy decides whether a customer cancellation applies
// immediately (inside the grace window) or requires admin review. Keeping the
// decision here gives the customer-facing handler, the admin handlers, and
// the tests one shared rule table.
package services
