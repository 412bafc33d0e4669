// Package ledger holds the stock consistency rules: how sale batches and
// purchase events translate into bundle deltas on the inventory. All
// functions are pure over their inputs; persistence is the caller's job.
package ledger

import (
	"fmt"

	"timberyard-backend/models"
)

// BoardsFor converts a sale quantity to boards. A "bundle" quantity is
// multiplied out by the item's conversion factor; a "board" quantity is
// already in boards.
func BoardsFor(quantity float64, unitType string, boardsPerBundle int) float64 {
	if unitType == models.UnitBundle {
		return quantity * float64(boardsPerBundle)
	}
	return quantity
}

// ApplySales returns a new inventory snapshot with the stock decrements of
// one submitted sale batch applied. Lines referencing unknown items are
// skipped: a dangling reference degrades, it never fails. Stock is clamped
// at zero even if a line oversells; the pre-submission availability check
// is the gate against that.
func ApplySales(items []models.ProductItem, sales []models.Sale) []models.ProductItem {
	updated := make([]models.ProductItem, len(items))
	copy(updated, items)

	for _, sale := range sales {
		for i := range updated {
			if updated[i].Id != sale.ItemId {
				continue
			}
			item := &updated[i]
			if item.BoardsPerBundle <= 0 {
				break // no conversion factor, nothing meaningful to subtract
			}
			remaining := item.TotalBoards() - BoardsFor(sale.Quantity, sale.UnitType, item.BoardsPerBundle)
			item.Bundles = remaining / float64(item.BoardsPerBundle)
			if item.Bundles < 0 {
				item.Bundles = 0
			}
			break
		}
	}
	return updated
}

// ApplyPurchase returns a new inventory snapshot with one restock event
// applied. Purchases only add stock, so no clamping is needed. A purchase
// for an unknown item is a no-op.
func ApplyPurchase(items []models.ProductItem, purchase models.Purchase) []models.ProductItem {
	updated := make([]models.ProductItem, len(items))
	copy(updated, items)

	for i := range updated {
		if updated[i].Id == purchase.ItemId {
			updated[i].Bundles += purchase.QuantityBundles
			break
		}
	}
	return updated
}

// ShortageError reports the first line of a batch that asks for more boards
// than the item has on hand.
type ShortageError struct {
	ItemId           string
	ItemName         string
	AvailableBundles float64
	AvailableBoards  float64
	RequestedBoards  float64
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %.2f bundles (%.0f boards) available, %.0f boards requested",
		e.ItemName, e.AvailableBundles, e.AvailableBoards, e.RequestedBoards)
}

// CheckAvailability validates a candidate sale batch against current stock.
// If any line requests more boards than its item holds, the whole batch is
// rejected; no partial commit. A line referencing an unknown item counts as
// zero availability and rejects the batch too.
func CheckAvailability(items []models.ProductItem, lines []models.Sale) error {
	byId := make(map[string]models.ProductItem, len(items))
	for _, item := range items {
		byId[item.Id] = item
	}

	for _, line := range lines {
		item, ok := byId[line.ItemId]
		if !ok {
			return &ShortageError{
				ItemId:          line.ItemId,
				ItemName:        line.ItemName,
				RequestedBoards: line.Quantity,
			}
		}
		available := item.TotalBoards()
		requested := BoardsFor(line.Quantity, line.UnitType, item.BoardsPerBundle)
		if requested > available {
			return &ShortageError{
				ItemId:           item.Id,
				ItemName:         item.Name,
				AvailableBundles: item.Bundles,
				AvailableBoards:  available,
				RequestedBoards:  requested,
			}
		}
	}
	return nil
}
