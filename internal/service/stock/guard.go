// Package stock rejects product quantities the catalog cannot cover. It is a
// fail-fast check; the persistence service decrements stock and has the final say.
package stock

import (
	"fmt"

	"github.com/you-humble/workshop/internal/model"
)

type Catalog interface {
	Product(id int64) (model.Product, bool)
}

type Guard struct {
	catalog Catalog
}

// NewGuard checks against catalog, which should be the freshest snapshot available.
func NewGuard(catalog Catalog) *Guard {
	return &Guard{catalog: catalog}
}

// CheckQuantity fails with *model.InsufficientStockError when qty exceeds the
// product stock. The request is never truncated.
func (g *Guard) CheckQuantity(productID, qty int64) error {
	if qty < 1 {
		return model.NewValidationError("quantity", "quantity must be at least 1")
	}

	p, ok := g.catalog.Product(productID)
	if !ok {
		return fmt.Errorf("%w: %d", model.ErrProductNotFound, productID)
	}

	if qty > p.Stock {
		return &model.InsufficientStockError{
			ProductID: productID,
			Requested: qty,
			Available: p.Stock,
		}
	}
	return nil
}

// CheckRelease validates handing released units of a product line back to stock,
// either by removing the line or by lowering its quantity. A line cannot give back
// more than it holds.
func (g *Guard) CheckRelease(held, released int64) error {
	if released < 1 {
		return model.NewValidationError("quantity", "nothing to release")
	}
	if released > held {
		return model.NewValidationError("quantity",
			fmt.Sprintf("cannot release %d units from a line holding %d", released, held))
	}
	return nil
}
