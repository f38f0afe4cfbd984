package domain

import "time"

// Seller владелец туров
type Seller struct {
	ID   int64
	Name string
}

// Tour represents a bookable tour. Aggregation root for scheduling decisions
type Tour struct {
	ID         int64
	Title      string
	SellerID   int64
	SellerName string // denormalized on read
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOwnedBy проверяет владельца тура простым сравнением имени продавца
func (t *Tour) IsOwnedBy(sellerName string) bool {
	return t.SellerName == sellerName
}
