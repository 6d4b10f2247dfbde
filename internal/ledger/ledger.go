package ledger

import (
	"crypto/ed25519"
	"errors"
	"github.com/dgraph-io/badger/v2"
	uuid "github.com/nu7hatch/gouuid"
	"go.uber.org/zap"
)

var ErrBadSignature = errors.New("operation signature verification failed")

// Ledger is the persistent substrate every marketplace operation runs on.
// Each operation executes inside a single store transaction: every buffered
// change commits together or none of them do.
type Ledger struct {
	db *badger.DB
}

func New(path string) (*Ledger, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, err
	}

	return &Ledger{db}, nil
}

func NewInMemory() (*Ledger, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}

	return &Ledger{db}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Execute runs fn as one atomic operation. Each signer is challenged for a
// signature over the operation id before fn sees the operation; a failed
// verification rejects the operation before any state is touched.
func (l *Ledger) Execute(fn func(op *Operation) error, signers ...Signer) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	challenge := []byte("operation:" + id.String())
	verified := make(map[Address]struct{}, len(signers))
	for _, signer := range signers {
		addr := signer.Address()
		if !ed25519.Verify(ed25519.PublicKey(addr.Bytes()), challenge, signer.Sign(challenge)) {
			zap.L().With(zap.String("signer", addr.String())).Warn("Ledger: Rejecting operation")
			return ErrBadSignature
		}
		verified[addr] = struct{}{}
	}

	return l.db.Update(func(txn *badger.Txn) error {
		return fn(&Operation{id: id.String(), txn: txn, signers: verified})
	})
}

// View runs fn against a read-only operation.
func (l *Ledger) View(fn func(op *Operation) error) error {
	return l.db.View(func(txn *badger.Txn) error {
		return fn(&Operation{txn: txn, signers: map[Address]struct{}{}})
	})
}
