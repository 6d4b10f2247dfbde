package entity

import (
	"fmt"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/gosimple/slug"
)

// Listing is the persistent record behind a single sale offer. Seller, Mint
// and Price never change after creation; IsActive flips to false when the
// listing is sold and never flips back.
type Listing struct {
	Seller   ledger.Address `json:"seller"`
	Mint     ledger.Address `json:"mint"`
	Price    uint64         `json:"price"`
	IsActive bool           `json:"isActive"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.Mint)
}

func CreateListingSlug(mint ledger.Address) string {
	return slug.Make(fmt.Sprintf("listing-%s", mint))
}
