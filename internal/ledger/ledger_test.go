package ledger

import (
	"errors"
	"github.com/stretchr/testify/require"
	"testing"
)

type testRecord struct {
	Owner Address `json:"owner"`
	Count uint64  `json:"count"`
}

func newTestLedger(t *testing.T) *Ledger {
	l, err := NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, l.Close())
	})

	return l
}

func fundedKeypair(t *testing.T, l *Ledger, amount uint64) Keypair {
	keypair, err := NewKeypair()
	require.NoError(t, err)

	require.NoError(t, l.Execute(func(op *Operation) error {
		return op.Credit(keypair.Address(), amount)
	}))

	return keypair
}

func TestExecuteRollsBackOnError(t *testing.T) {
	l := newTestLedger(t)
	payer := fundedKeypair(t, l, 100_000)

	addr := payer.Address()
	boom := errors.New("boom")

	err := l.Execute(func(op *Operation) error {
		if err := op.CreateRecord("test", addr, addr, testRecord{Owner: addr, Count: 1}); err != nil {
			return err
		}
		return boom
	}, payer)
	require.ErrorIs(t, err, boom)

	require.NoError(t, l.View(func(op *Operation) error {
		var record testRecord
		require.ErrorIs(t, op.GetRecord("test", addr, &record), ErrRecordNotFound)

		balance, err := op.Balance(addr)
		require.NoError(t, err)
		require.Equal(t, uint64(100_000), balance)

		return nil
	}))
}

func TestCreateRecordRejectsDuplicates(t *testing.T) {
	l := newTestLedger(t)
	payer := fundedKeypair(t, l, 100_000)
	addr := payer.Address()

	require.NoError(t, l.Execute(func(op *Operation) error {
		return op.CreateRecord("test", addr, addr, testRecord{Owner: addr})
	}, payer))

	err := l.Execute(func(op *Operation) error {
		return op.CreateRecord("test", addr, addr, testRecord{Owner: addr})
	}, payer)
	require.ErrorIs(t, err, ErrRecordExists)
}

func TestDestroyRecordRefundsDeposit(t *testing.T) {
	l := newTestLedger(t)
	payer := fundedKeypair(t, l, 100_000)
	addr := payer.Address()

	require.NoError(t, l.Execute(func(op *Operation) error {
		return op.CreateRecord("test", addr, addr, testRecord{Owner: addr})
	}, payer))

	var afterCreate uint64
	require.NoError(t, l.View(func(op *Operation) error {
		var err error
		afterCreate, err = op.Balance(addr)
		return err
	}))
	require.Less(t, afterCreate, uint64(100_000))

	require.NoError(t, l.Execute(func(op *Operation) error {
		return op.DestroyRecord("test", addr, addr)
	}, payer))

	require.NoError(t, l.View(func(op *Operation) error {
		balance, err := op.Balance(addr)
		require.NoError(t, err)
		require.Equal(t, uint64(100_000), balance)

		var record testRecord
		require.ErrorIs(t, op.GetRecord("test", addr, &record), ErrRecordNotFound)

		return nil
	}))
}

func TestTransferNativeRequiresSignature(t *testing.T) {
	l := newTestLedger(t)
	from := fundedKeypair(t, l, 1_000)
	to := fundedKeypair(t, l, 0)

	err := l.Execute(func(op *Operation) error {
		return op.TransferNative(from.Address(), to.Address(), 500)
	})
	require.ErrorIs(t, err, ErrMissingSignature)

	require.NoError(t, l.Execute(func(op *Operation) error {
		return op.TransferNative(from.Address(), to.Address(), 500)
	}, from))

	require.NoError(t, l.View(func(op *Operation) error {
		balance, err := op.Balance(to.Address())
		require.NoError(t, err)
		require.Equal(t, uint64(500), balance)

		return nil
	}))
}

func TestTransferNativeInsufficientFunds(t *testing.T) {
	l := newTestLedger(t)
	from := fundedKeypair(t, l, 100)
	to := fundedKeypair(t, l, 0)

	err := l.Execute(func(op *Operation) error {
		return op.TransferNative(from.Address(), to.Address(), 500)
	}, from)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	require.NoError(t, l.View(func(op *Operation) error {
		balance, err := op.Balance(from.Address())
		require.NoError(t, err)
		require.Equal(t, uint64(100), balance)

		return nil
	}))
}

func TestPutRecordPreservesDeposit(t *testing.T) {
	l := newTestLedger(t)
	payer := fundedKeypair(t, l, 100_000)
	addr := payer.Address()

	require.NoError(t, l.Execute(func(op *Operation) error {
		return op.CreateRecord("test", addr, addr, testRecord{Owner: addr, Count: 1})
	}, payer))

	require.NoError(t, l.Execute(func(op *Operation) error {
		return op.PutRecord("test", addr, testRecord{Owner: addr, Count: 2})
	}))

	require.NoError(t, l.View(func(op *Operation) error {
		var record testRecord
		require.NoError(t, op.GetRecord("test", addr, &record))
		require.Equal(t, uint64(2), record.Count)

		return nil
	}))
}

func TestIterateRecords(t *testing.T) {
	l := newTestLedger(t)
	payer := fundedKeypair(t, l, 1_000_000)

	var addrs []Address
	require.NoError(t, l.Execute(func(op *Operation) error {
		for i := 0; i < 3; i++ {
			keypair, err := NewKeypair()
			if err != nil {
				return err
			}
			addrs = append(addrs, keypair.Address())
			if err := op.CreateRecord("test", keypair.Address(), payer.Address(), testRecord{Owner: keypair.Address()}); err != nil {
				return err
			}
		}
		return nil
	}, payer))

	seen := 0
	require.NoError(t, l.View(func(op *Operation) error {
		return op.IterateRecords("test", func(addr Address, data []byte) error {
			require.Contains(t, addrs, addr)
			seen++
			return nil
		})
	}))
	require.Equal(t, 3, seen)
}

func TestSignatureVerification(t *testing.T) {
	l := newTestLedger(t)

	keypair, err := NewKeypair()
	require.NoError(t, err)

	require.NoError(t, l.Execute(func(op *Operation) error {
		require.True(t, op.Signed(keypair.Address()))
		return nil
	}, keypair))

	other, err := NewKeypair()
	require.NoError(t, err)

	err = l.Execute(func(op *Operation) error {
		return nil
	}, forgedSigner{address: other.Address(), keypair: keypair})
	require.ErrorIs(t, err, ErrBadSignature)
}

// forgedSigner claims one address but signs with another key.
type forgedSigner struct {
	address Address
	keypair Keypair
}

func (f forgedSigner) Address() Address {
	return f.address
}

func (f forgedSigner) Sign(message []byte) []byte {
	return f.keypair.Sign(message)
}
