package rewards

import (
	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/store"
)

// ValidatePurchase runs the purchase validation sequence against the catalog
// and the user aggregate. Each failure short-circuits with a distinct error:
// store.ErrItemNotFound, store.ErrItemUnavailable, store.ErrAlreadyPurchased,
// or *store.InsufficientPointsError. Only confirmed points are spendable.
func ValidatePurchase(p *models.UserProfile, itemId string) (*ShopItem, error) {
	item := FindShopItem(itemId)
	if item == nil {
		return nil, store.ErrItemNotFound
	}
	if !item.Available {
		return nil, store.ErrItemUnavailable
	}
	if p.HasPurchased(itemId) {
		return nil, store.ErrAlreadyPurchased
	}
	if p.ConfirmedPoints < item.Cost {
		return nil, &store.InsufficientPointsError{
			Required:    item.Cost,
			Confirmed:   p.ConfirmedPoints,
			Unconfirmed: p.UnconfirmedPoints,
		}
	}
	return item, nil
}

// AvailableShopItems returns catalog items the user has not purchased yet.
func AvailableShopItems(p *models.UserProfile) []ShopItem {
	var available []ShopItem
	for _, item := range ShopItems {
		if !p.HasPurchased(item.Id) {
			available = append(available, item)
		}
	}
	return available
}
