package entity

import (
	"crypto/md5"
	"fmt"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
)

// MarketAction is the archived history document for one market operation.
type MarketAction struct {
	Mint        ledger.Address `json:"mint"`
	OperationID string         `json:"operationId"`
	Action      ActionType     `json:"action"`
	Seller      ledger.Address `json:"seller"`
	Buyer       ledger.Address `json:"buyer"`
	Price       uint64         `json:"price"`
	Time        int64          `json:"time"`
}

type ActionType string

const (
	ListingAction   ActionType = "listing"
	DelistingAction ActionType = "delisting"
	SaleAction      ActionType = "sale"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.Mint, a.OperationID, string(a.Action))
}

func CreateMarketActionSlug(mint ledger.Address, operationId, action string) string {
	data := []byte(fmt.Sprintf("marketaction-%s-%s-%s", mint, operationId, action))

	return fmt.Sprintf("%x", md5.Sum(data))
}
