package market

import (
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
)

// Namespace scopes every address this marketplace derives.
const Namespace = "fashion-market"

func vaultSeeds(mint ledger.Address) [][]byte {
	return [][]byte{[]byte(Namespace), []byte("vault"), mint.Bytes()}
}

func listingSeeds(mint ledger.Address) [][]byte {
	return [][]byte{[]byte(Namespace), []byte("listing"), mint.Bytes()}
}

// VaultAuthority returns the derived authority that controls the custody
// vault for mint, together with its bump. The authority is scoped per mint:
// a vault authority for one asset can never move another.
func VaultAuthority(mint ledger.Address) (ledger.Address, uint8, error) {
	return ledger.DeriveAddress(vaultSeeds(mint)...)
}

// ListingAddress returns the record address of the listing for mint. One
// mint maps onto one listing address, so a second active listing for the
// same asset is rejected by the record-exists check at creation.
func ListingAddress(mint ledger.Address) (ledger.Address, error) {
	addr, _, err := ledger.DeriveAddress(listingSeeds(mint)...)

	return addr, err
}
