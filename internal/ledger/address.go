package ledger

import (
	"encoding/hex"
	"errors"
	"strings"
)

const AddressLength = 32

var ErrInvalidAddress = errors.New("invalid address")

// Address identifies an account on the ledger. Key-controlled addresses are
// ed25519 public keys; derived addresses are off-curve and have no key.
type Address [AddressLength]byte

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := AddressFromString(string(text))
	if err != nil {
		return err
	}
	*a = addr

	return nil
}

func AddressFromString(value string) (Address, error) {
	value = strings.TrimPrefix(strings.ToLower(value), "0x")

	decoded, err := hex.DecodeString(value)
	if err != nil || len(decoded) != AddressLength {
		return Address{}, ErrInvalidAddress
	}

	var addr Address
	copy(addr[:], decoded)

	return addr, nil
}
