package api

import (
	"encoding/json"
	"github.com/fashionmkt/fashion-market-core/internal/entity"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/fashionmkt/fashion-market-core/internal/market"
	"github.com/fashionmkt/fashion-market-core/internal/repository"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubMarket struct {
	err error
}

func (s stubMarket) List(seller ledger.Signer, mint ledger.Address, price uint64) (entity.Listing, error) {
	return entity.Listing{}, s.err
}

func (s stubMarket) Cancel(seller ledger.Signer, listing ledger.Address, mint ledger.Address) error {
	return s.err
}

func (s stubMarket) Buy(buyer ledger.Signer, listing ledger.Address, vaultBump uint8) error {
	return s.err
}

type stubListings struct {
	listing entity.Listing
	err     error
}

func (s stubListings) GetListing(mint ledger.Address) (entity.Listing, error) {
	return s.listing, s.err
}

func (s stubListings) GetActiveListings() ([]entity.Listing, error) {
	return []entity.Listing{s.listing}, s.err
}

type stubActions struct {
	sale entity.MarketAction
	err  error
}

func (s stubActions) GetActionsByMint(mint ledger.Address, size int) ([]entity.MarketAction, error) {
	return []entity.MarketAction{s.sale}, s.err
}

func (s stubActions) GetSale(mint ledger.Address) (entity.MarketAction, error) {
	return s.sale, s.err
}

func testAddress(t *testing.T) ledger.Address {
	keypair, err := ledger.NewKeypair()
	require.NoError(t, err)

	return keypair.Address()
}

func TestHandleGetSale(t *testing.T) {
	mint := testAddress(t)
	sale := entity.MarketAction{Mint: mint, Action: entity.SaleAction, Price: 10}
	server := NewServer(stubMarket{}, stubListings{}, stubActions{sale: sale})

	req := httptest.NewRequest("GET", "/listings/"+mint.String()+"/sale", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.MarketAction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, mint, got.Mint)
	require.Equal(t, entity.SaleAction, got.Action)
}

func TestHandleGetSaleNotFound(t *testing.T) {
	mint := testAddress(t)
	server := NewServer(stubMarket{}, stubListings{}, stubActions{err: repository.ErrMarketActionNotFound})

	req := httptest.NewRequest("GET", "/listings/"+mint.String()+"/sale", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetListing(t *testing.T) {
	mint := testAddress(t)
	listing := entity.Listing{Mint: mint, Price: 10, IsActive: true}
	server := NewServer(stubMarket{}, stubListings{listing: listing}, stubActions{})

	req := httptest.NewRequest("GET", "/listings/"+mint.String(), nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, mint, got.Mint)
}

func TestWriteMarketError(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"not found":    {market.ErrListingNotFound, http.StatusNotFound},
		"unauthorized": {market.ErrUnauthorized, http.StatusForbidden},
		"inactive":     {market.ErrInactiveListing, http.StatusConflict},
		"mismatch":     {market.ErrMintMismatch, http.StatusBadRequest},
		"not owned":    {market.ErrAssetNotOwnedBySeller, http.StatusBadRequest},
		"overflow":     {market.ErrPriceOverflow, http.StatusBadRequest},
		"underfunded":  {ledger.ErrInsufficientFunds, http.StatusBadRequest},
		"unrecognized": {ledger.ErrBadSignature, http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeMarketError(rec, tc.err)
			require.Equal(t, tc.status, rec.Code)
		})
	}
}
