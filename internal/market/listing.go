package market

import (
	"errors"
	"github.com/fashionmkt/fashion-market-core/internal/entity"
	"github.com/fashionmkt/fashion-market-core/internal/event"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/fashionmkt/fashion-market-core/internal/token"
	"go.uber.org/zap"
	"time"
)

// ListingKind is the record namespace listings are stored under.
const ListingKind = "listing"

// Service is the public operation surface of the marketplace. Each call is
// one atomic operation: every transfer and record change inside it commits
// together or not at all.
type Service interface {
	List(seller ledger.Signer, mint ledger.Address, price uint64) (entity.Listing, error)
	Cancel(seller ledger.Signer, listing ledger.Address, mint ledger.Address) error
	Buy(buyer ledger.Signer, listing ledger.Address, vaultBump uint8) error
}

type service struct {
	ledger *ledger.Ledger
	token  token.Service
}

func NewService(l *ledger.Ledger, t token.Service) Service {
	return service{l, t}
}

// List escrows one unit of mint into the custody vault and creates the
// listing record. Price is taken as given; zero is accepted.
func (s service) List(seller ledger.Signer, mint ledger.Address, price uint64) (entity.Listing, error) {
	sellerAddr := seller.Address()
	listing := entity.Listing{Seller: sellerAddr, Mint: mint, Price: price, IsActive: true}

	var operationId string
	err := s.ledger.Execute(func(op *ledger.Operation) error {
		operationId = op.ID()

		authority, _, err := VaultAuthority(mint)
		if err != nil {
			return err
		}

		if err := s.token.EnsureHolding(op, authority, mint, sellerAddr); err != nil {
			return err
		}

		if err := s.token.Transfer(op, sellerAddr, authority, mint, 1, 0); err != nil {
			if errors.Is(err, token.ErrInsufficientTokens) || errors.Is(err, token.ErrHoldingNotFound) {
				return ErrAssetNotOwnedBySeller
			}
			return err
		}

		address, err := ListingAddress(mint)
		if err != nil {
			return err
		}

		return op.CreateRecord(ListingKind, address, sellerAddr, listing)
	}, seller)
	if err != nil {
		return entity.Listing{}, err
	}

	zap.L().With(
		zap.String("mint", mint.String()),
		zap.String("seller", sellerAddr.String()),
		zap.Uint64("price", price),
	).Info("Market: Listing created")

	event.EmitEvent(event.ListingCreatedEvent, entity.MarketAction{
		Mint:        mint,
		OperationID: operationId,
		Action:      entity.ListingAction,
		Seller:      sellerAddr,
		Price:       price,
		Time:        time.Now().Unix(),
	})

	return listing, nil
}

// Cancel returns the escrowed asset to the seller and destroys the listing
// record, refunding its storage deposit. Only the recorded seller may cancel.
func (s service) Cancel(seller ledger.Signer, listing ledger.Address, mint ledger.Address) error {
	sellerAddr := seller.Address()

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

		if !op.Signed(record.Seller) {
			return ErrUnauthorized
		}
		if record.Mint != mint {
			return ErrMintMismatch
		}

		authority, bump, err := VaultAuthority(record.Mint)
		if err != nil {
			return err
		}
		if _, err := op.ProveDerived(bump, vaultSeeds(record.Mint)...); err != nil {
			return err
		}

		if err := s.token.EnsureHolding(op, record.Seller, record.Mint, sellerAddr); err != nil {
			return err
		}
		if err := s.token.Transfer(op, authority, record.Seller, record.Mint, 1, 0); err != nil {
			return err
		}

		return op.DestroyRecord(ListingKind, listing, record.Seller)
	}, seller)
	if err != nil {
		return err
	}

	zap.L().With(
		zap.String("mint", record.Mint.String()),
		zap.String("seller", sellerAddr.String()),
	).Info("Market: Listing cancelled")

	event.EmitEvent(event.ListingCancelledEvent, entity.MarketAction{
		Mint:        record.Mint,
		OperationID: operationId,
		Action:      entity.DelistingAction,
		Seller:      record.Seller,
		Price:       record.Price,
		Time:        time.Now().Unix(),
	})

	return nil
}
