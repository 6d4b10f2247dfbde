package token

import (
	"crypto/sha256"
	"errors"
	"github.com/fashionmkt/fashion-market-core/internal/entity"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
)

const (
	mintKind    = "mint"
	holdingKind = "holding"
)

var (
	ErrMintNotFound       = errors.New("mint not found")
	ErrHoldingNotFound    = errors.New("holding not found")
	ErrMintMismatch       = errors.New("holding does not match mint")
	ErrDecimalsMismatch   = errors.New("decimals do not match mint")
	ErrInsufficientTokens = errors.New("insufficient token balance")
	ErrMissingAuthority   = errors.New("missing transfer authority")
)

// Service moves token balances between holding accounts. Every method runs
// inside the caller's operation and participates in its atomicity.
type Service interface {
	CreateMint(op *ledger.Operation, mint, authority ledger.Address, symbol string, decimals uint8) error
	MintTo(op *ledger.Operation, mint, recipient ledger.Address, amount uint64) error
	EnsureHolding(op *ledger.Operation, owner, mint, payer ledger.Address) error
	GetMint(op *ledger.Operation, mint ledger.Address) (entity.Mint, error)
	GetHolding(op *ledger.Operation, owner, mint ledger.Address) (entity.Holding, error)
	Transfer(op *ledger.Operation, from, to, mint ledger.Address, amount uint64, decimals uint8) error
}

type service struct{}

func NewService() Service {
	return service{}
}

// HoldingAddress is the deterministic record address of owner's holding
// account for mint.
func HoldingAddress(owner, mint ledger.Address) ledger.Address {
	hash := sha256.New()
	hash.Write([]byte("holding"))
	hash.Write(owner.Bytes())
	hash.Write(mint.Bytes())

	var addr ledger.Address
	copy(addr[:], hash.Sum(nil))

	return addr
}

func (s service) CreateMint(op *ledger.Operation, mint, authority ledger.Address, symbol string, decimals uint8) error {
	if !op.Signed(authority) {
		return ErrMissingAuthority
	}

	record := entity.Mint{Address: mint, Authority: authority, Symbol: symbol, Decimals: decimals}

	return op.CreateRecord(mintKind, mint, authority, record)
}

func (s service) GetMint(op *ledger.Operation, mint ledger.Address) (entity.Mint, error) {
	var record entity.Mint
	if err := op.GetRecord(mintKind, mint, &record); err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return entity.Mint{}, ErrMintNotFound
		}
		return entity.Mint{}, err
	}

	return record, nil
}

func (s service) GetHolding(op *ledger.Operation, owner, mint ledger.Address) (entity.Holding, error) {
	var record entity.Holding
	if err := op.GetRecord(holdingKind, HoldingAddress(owner, mint), &record); err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return entity.Holding{}, ErrHoldingNotFound
		}
		return entity.Holding{}, err
	}

	return record, nil
}

// EnsureHolding creates owner's holding account for mint if it does not
// exist yet. The payer funds the storage deposit.
func (s service) EnsureHolding(op *ledger.Operation, owner, mint, payer ledger.Address) error {
	err := op.CreateRecord(holdingKind, HoldingAddress(owner, mint), payer, entity.Holding{Owner: owner, Mint: mint})
	if errors.Is(err, ledger.ErrRecordExists) {
		return nil
	}

	return err
}

func (s service) MintTo(op *ledger.Operation, mint, recipient ledger.Address, amount uint64) error {
	record, err := s.GetMint(op, mint)
	if err != nil {
		return err
	}
	if !op.Signed(record.Authority) {
		return ErrMissingAuthority
	}

	if err := s.EnsureHolding(op, recipient, mint, record.Authority); err != nil {
		return err
	}

	holding, err := s.GetHolding(op, recipient, mint)
	if err != nil {
		return err
	}

	holding.Balance += amount
	record.Supply += amount

	if err := op.PutRecord(holdingKind, HoldingAddress(recipient, mint), holding); err != nil {
		return err
	}

	return op.PutRecord(mintKind, mint, record)
}

// Transfer moves amount units of mint between owners. The source owner must
// have authorized the operation, either by co-signing or through a derived
// authority proven within it. The destination holding must already exist.
func (s service) Transfer(op *ledger.Operation, from, to, mint ledger.Address, amount uint64, decimals uint8) error {
	record, err := s.GetMint(op, mint)
	if err != nil {
		return err
	}
	if record.Decimals != decimals {
		return ErrDecimalsMismatch
	}

	source, err := s.GetHolding(op, from, mint)
	if err != nil {
		return err
	}
	if source.Mint != mint {
		return ErrMintMismatch
	}
	if !op.Signed(from) {
		return ErrMissingAuthority
	}
	if source.Balance < amount {
		return ErrInsufficientTokens
	}

	dest, err := s.GetHolding(op, to, mint)
	if err != nil {
		return err
	}
	if dest.Mint != mint {
		return ErrMintMismatch
	}

	source.Balance -= amount
	dest.Balance += amount

	if err := op.PutRecord(holdingKind, HoldingAddress(from, mint), source); err != nil {
		return err
	}

	return op.PutRecord(holdingKind, HoldingAddress(to, mint), dest)
}
