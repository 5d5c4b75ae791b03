package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
)

// AddressRepository gives read access to the customer address book, which is
// owned by the profile subsystem. Order placement only needs to know the
// address exists and belongs to the ordering customer.
type AddressRepository interface {
	// Exists returns nil when the address exists and belongs to the customer,
	// or errs.ErrObjectNotFound otherwise.
	Exists(ctx context.Context, addressID, customerID kernel.UUID) error
}
