// Package product provides the inventory record for catalog items.
//
// A Product tracks the current catalog price plus the stock/sold counters the
// order lifecycle reconciles: order creation reserves units, cancellation
// releases them. The counters never go negative, and releases floor the sold
// counter at zero.
package product
