package market

import (
	"errors"
	"github.com/fashionmkt/fashion-market-core/internal/entity"
	"github.com/fashionmkt/fashion-market-core/internal/event"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"go.uber.org/zap"
	"math"
	"time"
)

// BaseUnitFactor converts a listing price in whole settlement units into
// native base units at settlement time.
const BaseUnitFactor uint64 = 1_000_000_000

// Buy settles a listing: payment moves buyer to seller, the asset moves
// vault to buyer under the re-derived vault authority, and the listing flips
// inactive. All of it lands in one operation or none of it does. The payment
// transfer runs first so an underfunded buyer aborts before any custodial
// state is touched.
func (s service) Buy(buyer ledger.Signer, listing ledger.Address, vaultBump uint8) error {
	buyerAddr := buyer.Address()

	var record entity.Listing
	var operationId string
	err := s.ledger.Execute(func(op *ledger.Operation) error {
		operationId = op.ID()

		if err := op.GetRecord(ListingKind, listing, &record); err != nil {
			if errors.Is(err, ledger.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}

		if !record.IsActive {
			return ErrInactiveListing
		}

		// the base-unit amount must fit in uint64
		if record.Price > math.MaxUint64/BaseUnitFactor {
			return ErrPriceOverflow
		}

		if err := op.TransferNative(buyerAddr, record.Seller, record.Price*BaseUnitFactor); err != nil {
			return err
		}

		authority, err := op.ProveDerived(vaultBump, vaultSeeds(record.Mint)...)
		if err != nil {
			return err
		}

		if err := s.token.EnsureHolding(op, buyerAddr, record.Mint, buyerAddr); err != nil {
			return err
		}
		if err := s.token.Transfer(op, authority, buyerAddr, record.Mint, 1, 0); err != nil {
			return err
		}

		record.IsActive = false

		return op.PutRecord(ListingKind, listing, record)
	}, buyer)
	if err != nil {
		return err
	}

	zap.L().With(
		zap.String("mint", record.Mint.String()),
		zap.String("buyer", buyerAddr.String()),
		zap.String("seller", record.Seller.String()),
		zap.Uint64("price", record.Price),
	).Info("Market: Listing sold")

	event.EmitEvent(event.ListingSoldEvent, entity.MarketAction{
		Mint:        record.Mint,
		OperationID: operationId,
		Action:      entity.SaleAction,
		Seller:      record.Seller,
		Buyer:       buyerAddr,
		Price:       record.Price,
		Time:        time.Now().Unix(),
	})

	return nil
}
