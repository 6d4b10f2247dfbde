package ledger

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/ioutil"
)

var ErrInvalidKeypair = errors.New("invalid keypair")

// Signer authorizes an operation on behalf of a single address.
type Signer interface {
	Address() Address
	Sign(message []byte) []byte
}

type Keypair struct {
	address Address
	private ed25519.PrivateKey
}

func NewKeypair() (Keypair, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Keypair{}, err
	}

	var addr Address
	copy(addr[:], public)

	return Keypair{address: addr, private: private}, nil
}

func (k Keypair) Address() Address {
	return k.address
}

func (k Keypair) Sign(message []byte) []byte {
	return ed25519.Sign(k.private, message)
}

type keypairFile struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
}

func (k Keypair) Save(path string) error {
	data, err := json.MarshalIndent(keypairFile{
		Address:    k.address.String(),
		PrivateKey: hex.EncodeToString(k.private),
	}, "", "  ")
	if err != nil {
		return err
	}

	return ioutil.WriteFile(path, data, 0600)
}

func LoadKeypair(path string) (Keypair, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Keypair{}, err
	}

	var file keypairFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Keypair{}, err
	}

	addr, err := AddressFromString(file.Address)
	if err != nil {
		return Keypair{}, err
	}

	private, err := hex.DecodeString(file.PrivateKey)
	if err != nil || len(private) != ed25519.PrivateKeySize {
		return Keypair{}, ErrInvalidKeypair
	}

	return Keypair{address: addr, private: private}, nil
}
