// Package order provides the purchase-order aggregate and its lifecycle
// state machine.
//
// The package includes:
//   - Order: the aggregate root owning line items, totals, the cancellation
//     bookkeeping, and the append-only status ledger
//   - Status: the state machine with the legal-transition rule table
//   - Actor: who initiated a change (customer, admin, system)
//   - LineItem: a product position with its price frozen at purchase time
//   - HistoryEntry: one immutable ledger row
//
// Key business rules:
//   - the current status always equals the last ledger entry's status
//   - completed and cancelled are terminal
//   - cancel_requested is entered by customers and left only by admin resolution
//   - the direct-cancellation grace window is 30 minutes from placement,
//     restarted on confirmation
//   - inventory restoration for a cancelled order happens exactly once
//
// All mutations flow through Order.ChangeStatus so validation, ledger append,
// and side-effect hooks stay on a single path.
package order
