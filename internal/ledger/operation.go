package ledger

import (
	"encoding/json"
	"errors"
	"github.com/dgraph-io/badger/v2"
	"strconv"
)

// DepositPerByte is the native deposit charged per stored record byte,
// refunded when the record is destroyed.
const DepositPerByte uint64 = 10

var (
	ErrRecordExists      = errors.New("record already exists")
	ErrRecordNotFound    = errors.New("record not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMissingSignature  = errors.New("missing signature")
)

// Operation is one atomic unit of work. Records and balances touched through
// it are buffered in the underlying transaction and only persist if the whole
// operation succeeds.
type Operation struct {
	id      string
	txn     *badger.Txn
	signers map[Address]struct{}
}

func (op *Operation) ID() string {
	return op.id
}

// Signed reports whether addr authorized this operation, either by co-signing
// or through a derivation proven with ProveDerived.
func (op *Operation) Signed(addr Address) bool {
	_, ok := op.signers[addr]

	return ok
}

// ProveDerived reconstructs a derived address from its seeds and bump and, on
// success, grants the operation authority over it. The reconstruction is the
// proof: only the holder of the original seed set can produce the address.
func (op *Operation) ProveDerived(bump uint8, seeds ...[]byte) (Address, error) {
	addr, err := AddressForBump(bump, seeds...)
	if err != nil {
		return Address{}, err
	}
	op.signers[addr] = struct{}{}

	return addr, nil
}

type recordEnvelope struct {
	Deposit uint64          `json:"deposit"`
	Data    json.RawMessage `json:"data"`
}

func recordKey(kind string, addr Address) []byte {
	return []byte("record/" + kind + "/" + addr.String())
}

func balanceKey(addr Address) []byte {
	return []byte("balance/" + addr.String())
}

// CreateRecord stores a new record at addr, debiting the storage deposit from
// payer. Fails with ErrRecordExists if anything already lives at addr.
func (op *Operation) CreateRecord(kind string, addr Address, payer Address, value interface{}) error {
	key := recordKey(kind, addr)
	if _, err := op.txn.Get(key); err == nil {
		return ErrRecordExists
	} else if err != badger.ErrKeyNotFound {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	deposit := DepositPerByte * uint64(len(data))
	if err := op.debit(payer, deposit); err != nil {
		return err
	}

	envelope, err := json.Marshal(recordEnvelope{Deposit: deposit, Data: data})
	if err != nil {
		return err
	}

	return op.txn.Set(key, envelope)
}

func (op *Operation) GetRecord(kind string, addr Address, out interface{}) error {
	envelope, err := op.readEnvelope(recordKey(kind, addr))
	if err != nil {
		return err
	}

	return json.Unmarshal(envelope.Data, out)
}

// PutRecord replaces the payload of an existing record, preserving its
// deposit.
func (op *Operation) PutRecord(kind string, addr Address, value interface{}) error {
	key := recordKey(kind, addr)

	envelope, err := op.readEnvelope(key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	envelope.Data = data

	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	return op.txn.Set(key, raw)
}

// DestroyRecord removes the record at addr and refunds its storage deposit to
// recipient.
func (op *Operation) DestroyRecord(kind string, addr Address, recipient Address) error {
	key := recordKey(kind, addr)

	envelope, err := op.readEnvelope(key)
	if err != nil {
		return err
	}

	if err := op.txn.Delete(key); err != nil {
		return err
	}

	return op.Credit(recipient, envelope.Deposit)
}

func (op *Operation) IterateRecords(kind string, fn func(addr Address, data []byte) error) error {
	prefix := []byte("record/" + kind + "/")

	it := op.txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()

		addr, err := AddressFromString(string(item.Key()[len(prefix):]))
		if err != nil {
			return err
		}

		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		var envelope recordEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return err
		}

		if err := fn(addr, envelope.Data); err != nil {
			return err
		}
	}

	return nil
}

func (op *Operation) readEnvelope(key []byte) (recordEnvelope, error) {
	item, err := op.txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return recordEnvelope{}, ErrRecordNotFound
	}
	if err != nil {
		return recordEnvelope{}, err
	}

	raw, err := item.ValueCopy(nil)
	if err != nil {
		return recordEnvelope{}, err
	}

	var envelope recordEnvelope
	err = json.Unmarshal(raw, &envelope)

	return envelope, err
}

func (op *Operation) Balance(addr Address) (uint64, error) {
	item, err := op.txn.Get(balanceKey(addr))
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	raw, err := item.ValueCopy(nil)
	if err != nil {
		return 0, err
	}

	return strconv.ParseUint(string(raw), 10, 64)
}

func (op *Operation) Credit(addr Address, amount uint64) error {
	balance, err := op.Balance(addr)
	if err != nil {
		return err
	}

	return op.setBalance(addr, balance+amount)
}

// TransferNative moves native settlement units between accounts. The source
// must have authorized the operation.
func (op *Operation) TransferNative(from, to Address, amount uint64) error {
	if err := op.debit(from, amount); err != nil {
		return err
	}

	return op.Credit(to, amount)
}

func (op *Operation) debit(addr Address, amount uint64) error {
	if !op.Signed(addr) {
		return ErrMissingSignature
	}

	balance, err := op.Balance(addr)
	if err != nil {
		return err
	}
	if balance < amount {
		return ErrInsufficientFunds
	}

	return op.setBalance(addr, balance-amount)
}

func (op *Operation) setBalance(addr Address, amount uint64) error {
	return op.txn.Set(balanceKey(addr), []byte(strconv.FormatUint(amount, 10)))
}
