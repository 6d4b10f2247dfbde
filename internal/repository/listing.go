package repository

import (
	"encoding/json"
	"errors"
	"github.com/fashionmkt/fashion-market-core/internal/entity"
	"github.com/fashionmkt/fashion-market-core/internal/event"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/fashionmkt/fashion-market-core/internal/market"
	"github.com/patrickmn/go-cache"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingRepository interface {
	GetListing(mint ledger.Address) (entity.Listing, error)
	GetActiveListings() ([]entity.Listing, error)
}

type listingRepository struct {
	ledger *ledger.Ledger
	cache  *cache.Cache
}

func NewListingRepository(l *ledger.Ledger, c *cache.Cache) ListingRepository {
	r := listingRepository{l, c}

	event.AddEventListener(event.ListingCancelledEvent, r.invalidate)
	event.AddEventListener(event.ListingSoldEvent, r.invalidate)

	return r
}

// invalidate drops the cached listing when it is cancelled or sold, so reads
// never serve a stale active copy.
func (r listingRepository) invalidate(msg interface{}) {
	if action, ok := msg.(entity.MarketAction); ok {
		r.cache.Delete(entity.CreateListingSlug(action.Mint))
	}
}

func (r listingRepository) GetListing(mint ledger.Address) (entity.Listing, error) {
	if cached, found := r.cache.Get(entity.CreateListingSlug(mint)); found {
		return cached.(entity.Listing), nil
	}

	address, err := market.ListingAddress(mint)
	if err != nil {
		return entity.Listing{}, err
	}

	var listing entity.Listing
	err = r.ledger.View(func(op *ledger.Operation) error {
		return op.GetRecord(market.ListingKind, address, &listing)
	})
	if err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return entity.Listing{}, ErrListingNotFound
		}
		return entity.Listing{}, err
	}

	r.cache.Set(listing.Slug(), listing, cache.DefaultExpiration)

	return listing, nil
}

func (r listingRepository) GetActiveListings() ([]entity.Listing, error) {
	listings := make([]entity.Listing, 0)

	err := r.ledger.View(func(op *ledger.Operation) error {
		return op.IterateRecords(market.ListingKind, func(addr ledger.Address, data []byte) error {
			var listing entity.Listing
			if err := json.Unmarshal(data, &listing); err != nil {
				return err
			}

			if listing.IsActive {
				listings = append(listings, listing)
			}

			return nil
		})
	})

	return listings, err
}
