package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotals(t *testing.T) {
	tax, total := Totals(500, 18)
	assert.Equal(t, 90.0, tax)
	assert.Equal(t, 590.0, total)

	tax, total = Totals(1500, 18)
	assert.Equal(t, 270.0, tax)
	assert.Equal(t, 1770.0, total)

	tax, total = Totals(100, 0)
	assert.Equal(t, 0.0, tax)
	assert.Equal(t, 100.0, total)
}

func TestCommission(t *testing.T) {
	// Комиссия считается от базовой цены, не от итога с налогом
	assert.Equal(t, 75.0, Commission(500, 15))
	assert.Equal(t, 150.0, Commission(1500, 10))
	assert.Equal(t, 0.0, Commission(500, 0))
}

func TestMissingDocuments(t *testing.T) {
	required := []string{"ID Proof", "Address Proof", "Passport Photo"}

	t.Run("nothing uploaded", func(t *testing.T) {
		missing := MissingDocuments(required, nil)
		assert.Equal(t, required, missing)
	})

	t.Run("all covered", func(t *testing.T) {
		docs := []DocumentState{
			{"ID Proof", VerificationApproved},
			{"Address Proof", VerificationPending},
			{"Passport Photo", VerificationPending},
		}
		assert.Empty(t, MissingDocuments(required, docs))
	})

	t.Run("rejected upload does not cover", func(t *testing.T) {
		docs := []DocumentState{
			{"ID Proof", VerificationApproved},
			{"Address Proof", VerificationRejected},
			{"Passport Photo", VerificationPending},
		}
		assert.Equal(t, []string{"Address Proof"}, MissingDocuments(required, docs))
	})

	t.Run("new upload after rejection covers again", func(t *testing.T) {
		docs := []DocumentState{
			{"ID Proof", VerificationApproved},
			{"Address Proof", VerificationRejected},
			{"Address Proof", VerificationPending},
			{"Passport Photo", VerificationApproved},
		}
		assert.Empty(t, MissingDocuments(required, docs))
	})

	t.Run("unknown names do not cover required", func(t *testing.T) {
		docs := []DocumentState{
			{"Bank Statement", VerificationApproved},
		}
		assert.Equal(t, required, MissingDocuments(required, docs))
	})
}

func TestKnownDocumentName(t *testing.T) {
	required := []string{"ID Proof", "Address Proof"}
	assert.True(t, KnownDocumentName(required, "ID Proof"))
	assert.False(t, KnownDocumentName(required, "Bank Statement"))
	assert.False(t, KnownDocumentName(nil, "ID Proof"))
}

func TestCheckPayment(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, CheckPayment(StatusAwaitingPayment, 590, 590))
	})

	t.Run("wrong status", func(t *testing.T) {
		err := CheckPayment(StatusApproved, 590, 590)
		assert.ErrorIs(t, err, ErrRequestNotPayable)

		err = CheckPayment(StatusInProgress, 590, 590)
		assert.ErrorIs(t, err, ErrRequestNotPayable)
	})

	t.Run("amount mismatch", func(t *testing.T) {
		err := CheckPayment(StatusAwaitingPayment, 589, 590)
		assert.ErrorIs(t, err, ErrAmountMismatch)

		// Переплата тоже не принимается
		err = CheckPayment(StatusAwaitingPayment, 600, 590)
		assert.ErrorIs(t, err, ErrAmountMismatch)
	})
}
