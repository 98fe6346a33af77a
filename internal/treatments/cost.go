package treatment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cynemos/smileinventory/internal/stockledger"
	"github.com/cynemos/smileinventory/pkg/db/models"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
)

// Line is a product consumption entry on a treatment.
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// ComputeTotalCost sums sale_price times quantity across the lines. Products
// missing from the catalog contribute zero; a treatment never fails to price
// because a product was deleted.
func ComputeTotalCost(lines []Line, catalog map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		price, ok := catalog[line.ProductID]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// AddLine merges the quantity into an existing line for the same product, or
// appends a new one. The input slice is not mutated.
func AddLine(lines []Line, productID uuid.UUID, quantity int) ([]Line, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity += quantity
			return out, nil
		}
	}
	return append(out, Line{ProductID: productID, Quantity: quantity}), nil
}

// ValidateStock returns one message per line whose requested quantity exceeds
// the product's total on-hand stock. An empty result means the treatment is
// committable. Advisory only: committing does not move stock.
func ValidateStock(lines []Line, products map[uuid.UUID]*models.Product, items map[uuid.UUID][]models.InventoryItem) []string {
	var problems []string
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			continue
		}
		total := stockledger.TotalOnHand(items[line.ProductID])
		if line.Quantity > total {
			problems = append(problems, fmt.Sprintf("insufficient stock for %s (available: %d)", product.Name, total))
		}
	}
	return problems
}
