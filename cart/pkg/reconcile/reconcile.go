package reconcile

import (
	inErrors "github.com/Alturino/storefront/internal/errors"
)

// Check validates an explicit quantity update against live stock.
// A quantity below 1 is ignored rather than rejected, apply reports
// whether the update should be persisted.
func Check(quantity int32, stock int32) (apply bool, err error) {
	if quantity < 1 {
		return false, nil
	}
	if quantity > stock {
		return false, inErrors.Validation("Not enough stock available")
	}
	return true, nil
}

// Clamp bounds an additive quantity to [1, stock]. It fails when there is no
// stock left to add.
func Clamp(quantity int32, stock int32) (int32, error) {
	if stock < 1 {
		return 0, inErrors.ErrOutOfStock
	}
	if quantity < 1 {
		return 1, nil
	}
	if quantity > stock {
		return stock, nil
	}
	return quantity, nil
}
