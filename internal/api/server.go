package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/fashionmkt/fashion-market-core/internal/config"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/fashionmkt/fashion-market-core/internal/market"
	"github.com/fashionmkt/fashion-market-core/internal/repository"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
	"path/filepath"
)

// Server exposes the marketplace over HTTP. Write endpoints sign with keys
// from the local keystore; the submitting party owns retries.
type Server struct {
	market   market.Service
	listings repository.ListingRepository
	actions  repository.MarketActionRepository
}

func NewServer(market market.Service, listings repository.ListingRepository, actions repository.MarketActionRepository) Server {
	return Server{market, listings, actions}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", handleHealth).Methods("GET")
	r.HandleFunc("/listings", s.handleGetListings).Methods("GET")
	r.HandleFunc("/listings", s.handleCreateListing).Methods("POST")
	r.HandleFunc("/listings/{mint}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/listings/{mint}/cancel", s.handleCancelListing).Methods("POST")
	r.HandleFunc("/listings/{mint}/buy", s.handleBuyListing).Methods("POST")
	r.HandleFunc("/listings/{mint}/history", s.handleGetHistory).Methods("GET")
	r.HandleFunc("/listings/{mint}/sale", s.handleGetSale).Methods("GET")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s Server) handleGetListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.listings.GetActiveListings()
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Api: Failed to get listings")
		http.Error(w, "Failed to get listings", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, listings)
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	mint, err := getMint(r)
	if err != nil {
		http.Error(w, "Invalid mint", http.StatusBadRequest)
		return
	}

	listing, err := s.listings.GetListing(mint)
	if err != nil {
		http.Error(w, "Listing not available", http.StatusNotFound)
		return
	}

	writeJson(w, http.StatusOK, listing)
}

type createListingRequest struct {
	Seller string `json:"seller"`
	Mint   string `json:"mint"`
	Price  uint64 `json:"price"`
}

func (s Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	mint, err := ledger.AddressFromString(req.Mint)
	if err != nil {
		http.Error(w, "Invalid mint", http.StatusBadRequest)
		return
	}

	seller, err := keystoreSigner(req.Seller)
	if err != nil {
		http.Error(w, "Unknown seller", http.StatusBadRequest)
		return
	}

	listing, err := s.market.List(seller, mint, req.Price)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, listing)
}

type cancelListingRequest struct {
	Seller string `json:"seller"`
}

func (s Server) handleCancelListing(w http.ResponseWriter, r *http.Request) {
	var req cancelListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	mint, err := getMint(r)
	if err != nil {
		http.Error(w, "Invalid mint", http.StatusBadRequest)
		return
	}

	seller, err := keystoreSigner(req.Seller)
	if err != nil {
		http.Error(w, "Unknown seller", http.StatusBadRequest)
		return
	}

	listing, err := market.ListingAddress(mint)
	if err != nil {
		http.Error(w, "Invalid mint", http.StatusBadRequest)
		return
	}

	if err := s.market.Cancel(seller, listing, mint); err != nil {
		writeMarketError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type buyListingRequest struct {
	Buyer string `json:"buyer"`
	Bump  *uint8 `json:"bump,omitempty"`
}

func (s Server) handleBuyListing(w http.ResponseWriter, r *http.Request) {
	var req buyListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	mint, err := getMint(r)
	if err != nil {
		http.Error(w, "Invalid mint", http.StatusBadRequest)
		return
	}

	buyer, err := keystoreSigner(req.Buyer)
	if err != nil {
		http.Error(w, "Unknown buyer", http.StatusBadRequest)
		return
	}

	bump := uint8(0)
	if req.Bump != nil {
		bump = *req.Bump
	} else {
		_, bump, err = market.VaultAuthority(mint)
		if err != nil {
			http.Error(w, "Invalid mint", http.StatusBadRequest)
			return
		}
	}

	listing, err := market.ListingAddress(mint)
	if err != nil {
		http.Error(w, "Invalid mint", http.StatusBadRequest)
		return
	}

	if err := s.market.Buy(buyer, listing, bump); err != nil {
		writeMarketError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	mint, err := getMint(r)
	if err != nil {
		http.Error(w, "Invalid mint", http.StatusBadRequest)
		return
	}

	actions, err := s.actions.GetActionsByMint(mint, 50)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Api: Failed to get history")
		http.Error(w, "History not available", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, actions)
}

func (s Server) handleGetSale(w http.ResponseWriter, r *http.Request) {
	mint, err := getMint(r)
	if err != nil {
		http.Error(w, "Invalid mint", http.StatusBadRequest)
		return
	}

	sale, err := s.actions.GetSale(mint)
	if err != nil {
		if errors.Is(err, repository.ErrMarketActionNotFound) {
			http.Error(w, "No sale", http.StatusNotFound)
			return
		}

		zap.L().With(zap.Error(err)).Error("Api: Failed to get sale")
		http.Error(w, "Sale not available", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, sale)
}

func getMint(r *http.Request) (ledger.Address, error) {
	value, ok := mux.Vars(r)["mint"]
	if !ok {
		return ledger.Address{}, errors.New("invalid parameters")
	}

	return ledger.AddressFromString(value)
}

func keystoreSigner(value string) (ledger.Keypair, error) {
	addr, err := ledger.AddressFromString(value)
	if err != nil {
		return ledger.Keypair{}, err
	}

	return ledger.LoadKeypair(filepath.Join(config.Get().KeystorePath, addr.String()+".json"))
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMarketError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, market.ErrListingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, market.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, market.ErrInactiveListing):
		status = http.StatusConflict
	case errors.Is(err, market.ErrMintMismatch),
		errors.Is(err, market.ErrAssetNotOwnedBySeller),
		errors.Is(err, market.ErrPriceOverflow),
		errors.Is(err, ledger.ErrInsufficientFunds):
		status = http.StatusBadRequest
	}

	zap.L().With(zap.Error(err)).Warn("Api: Operation rejected")
	http.Error(w, err.Error(), status)
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
}
