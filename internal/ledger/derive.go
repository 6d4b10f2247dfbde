package ledger

import (
	"crypto/sha256"
	"errors"
	"filippo.io/edwards25519"
)

var (
	ErrNoValidBump = errors.New("no valid bump for seeds")
	ErrOnCurve     = errors.New("derived address is on the ed25519 curve")
)

const derivedMarker = "FashionMarketDerivedAddress"

// DeriveAddress maps a fixed seed set onto a deterministic off-curve address
// and the bump that produced it. No private key can exist for the result;
// authority over it is proven by reproducing the same derivation.
func DeriveAddress(seeds ...[]byte) (Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		addr, err := AddressForBump(uint8(bump), seeds...)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return Address{}, 0, err
		}
	}

	return Address{}, 0, ErrNoValidBump
}

// AddressForBump reconstructs the derived address for a known bump. Fails
// with ErrOnCurve if the candidate collides with the public key space.
func AddressForBump(bump uint8, seeds ...[]byte) (Address, error) {
	hash := sha256.New()
	for _, seed := range seeds {
		hash.Write(seed)
	}
	hash.Write([]byte{bump})
	hash.Write([]byte(derivedMarker))

	var addr Address
	copy(addr[:], hash.Sum(nil))

	if onCurve(addr) {
		return Address{}, ErrOnCurve
	}

	return addr, nil
}

func onCurve(addr Address) bool {
	_, err := new(edwards25519.Point).SetBytes(addr[:])

	return err == nil
}
