package market

import "errors"

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrMintMismatch          = errors.New("mint mismatch")
	ErrInactiveListing       = errors.New("listing is not active")
	ErrAssetNotOwnedBySeller = errors.New("asset not owned by seller")
	ErrListingNotFound       = errors.New("listing not found")
	ErrPriceOverflow         = errors.New("price exceeds settleable range")
)
