package repository

import (
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/fashionmkt/fashion-market-core/internal/market"
	"github.com/fashionmkt/fashion-market-core/internal/token"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func setupMarket(t *testing.T) (*ledger.Ledger, market.Service, ledger.Keypair, ledger.Address) {
	l, err := ledger.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, l.Close())
	})

	tokenSvc := token.NewService()
	marketSvc := market.NewService(l, tokenSvc)

	seller, err := ledger.NewKeypair()
	require.NoError(t, err)

	mintKeypair, err := ledger.NewKeypair()
	require.NoError(t, err)
	mint := mintKeypair.Address()

	require.NoError(t, l.Execute(func(op *ledger.Operation) error {
		if err := op.Credit(seller.Address(), 1_000_000); err != nil {
			return err
		}
		if err := tokenSvc.CreateMint(op, mint, seller.Address(), "DRESS", 0); err != nil {
			return err
		}
		return tokenSvc.MintTo(op, mint, seller.Address(), 1)
	}, seller))

	return l, marketSvc, seller, mint
}

func TestGetListing(t *testing.T) {
	l, marketSvc, seller, mint := setupMarket(t)
	repo := NewListingRepository(l, cache.New(time.Minute, 5*time.Minute))

	_, err := repo.GetListing(mint)
	require.ErrorIs(t, err, ErrListingNotFound)

	_, err = marketSvc.List(seller, mint, 10)
	require.NoError(t, err)

	listing, err := repo.GetListing(mint)
	require.NoError(t, err)
	require.Equal(t, seller.Address(), listing.Seller)
	require.Equal(t, uint64(10), listing.Price)
	require.True(t, listing.IsActive)
}

func TestGetListingInvalidatedOnCancel(t *testing.T) {
	l, marketSvc, seller, mint := setupMarket(t)
	repo := NewListingRepository(l, cache.New(time.Minute, 5*time.Minute))

	_, err := marketSvc.List(seller, mint, 10)
	require.NoError(t, err)

	cached, err := repo.GetListing(mint)
	require.NoError(t, err)
	require.True(t, cached.IsActive)

	listingAddr, err := market.ListingAddress(mint)
	require.NoError(t, err)
	require.NoError(t, marketSvc.Cancel(seller, listingAddr, mint))

	_, err = repo.GetListing(mint)
	require.ErrorIs(t, err, ErrListingNotFound)
}

func TestGetListingInvalidatedOnSale(t *testing.T) {
	l, marketSvc, seller, mint := setupMarket(t)
	repo := NewListingRepository(l, cache.New(time.Minute, 5*time.Minute))

	_, err := marketSvc.List(seller, mint, 10)
	require.NoError(t, err)

	cached, err := repo.GetListing(mint)
	require.NoError(t, err)
	require.True(t, cached.IsActive)

	buyer, err := ledger.NewKeypair()
	require.NoError(t, err)
	require.NoError(t, l.Execute(func(op *ledger.Operation) error {
		return op.Credit(buyer.Address(), 10*market.BaseUnitFactor+1_000_000)
	}))

	listingAddr, err := market.ListingAddress(mint)
	require.NoError(t, err)
	_, bump, err := market.VaultAuthority(mint)
	require.NoError(t, err)
	require.NoError(t, marketSvc.Buy(buyer, listingAddr, bump))

	sold, err := repo.GetListing(mint)
	require.NoError(t, err)
	require.False(t, sold.IsActive)
}

func TestGetActiveListings(t *testing.T) {
	l, marketSvc, seller, mint := setupMarket(t)
	repo := NewListingRepository(l, cache.New(time.Minute, 5*time.Minute))

	listings, err := repo.GetActiveListings()
	require.NoError(t, err)
	require.Empty(t, listings)

	_, err = marketSvc.List(seller, mint, 10)
	require.NoError(t, err)

	listings, err = repo.GetActiveListings()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	require.Equal(t, mint, listings[0].Mint)

	listingAddr, err := market.ListingAddress(mint)
	require.NoError(t, err)
	require.NoError(t, marketSvc.Cancel(seller, listingAddr, mint))

	listings, err = repo.GetActiveListings()
	require.NoError(t, err)
	require.Empty(t, listings)
}
