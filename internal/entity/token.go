package entity

import (
	"fmt"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/gosimple/slug"
)

// Mint describes a token type. Decimals 0 marks an indivisible asset.
type Mint struct {
	Address   ledger.Address `json:"address"`
	Authority ledger.Address `json:"authority"`
	Symbol    string         `json:"symbol"`
	Decimals  uint8          `json:"decimals"`
	Supply    uint64         `json:"supply"`
}

func (m Mint) Slug() string {
	return slug.Make(fmt.Sprintf("mint-%s", m.Address))
}

// Holding is one owner's balance of one mint.
type Holding struct {
	Owner   ledger.Address `json:"owner"`
	Mint    ledger.Address `json:"mint"`
	Balance uint64         `json:"balance"`
}

func (h Holding) Slug() string {
	return slug.Make(fmt.Sprintf("holding-%s-%s", h.Owner, h.Mint))
}
