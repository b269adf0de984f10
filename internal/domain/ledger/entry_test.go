package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerEntry(t *testing.T) {
	landlordID := uuid.New()
	siteID := uuid.New()
	unitID := uuid.New()

	t.Run("first bill entry opens from zero", func(t *testing.T) {
		entry, err := NewLedgerEntry(landlordID, siteID, unitID,
			TransactionTypeBill, decimal.NewFromInt(500), ZeroBalance(), 1)
		require.NoError(t, err)

		assert.Equal(t, BalanceTypeNone, entry.OpeningBalance.Type)
		assert.Equal(t, BalanceTypeDebit, entry.ClosingBalance.Type)
		assert.True(t, decimal.NewFromInt(500).Equal(entry.ClosingBalance.Amount))
		assert.NoError(t, entry.Verify())
	})

	t.Run("payment clears an existing debit", func(t *testing.T) {
		opening := Balance{Amount: decimal.NewFromInt(500), Type: BalanceTypeDebit}
		entry, err := NewLedgerEntry(landlordID, siteID, unitID,
			TransactionTypePayment, decimal.NewFromInt(500), opening, 2)
		require.NoError(t, err)

		assert.True(t, entry.ClosingBalance.IsZero())
		assert.Equal(t, BalanceTypeNone, entry.ClosingBalance.Type)
	})

	t.Run("bill and purpose attach via builders", func(t *testing.T) {
		billID := uuid.New()
		entry, err := NewLedgerEntry(landlordID, siteID, unitID,
			TransactionTypeBill, decimal.NewFromInt(100), ZeroBalance(), 1)
		require.NoError(t, err)

		entry.WithBillID(billID).WithPurpose("Maintenance bill 2026-08")
		require.NotNil(t, entry.BillID)
		assert.Equal(t, billID, *entry.BillID)
		assert.Equal(t, "Maintenance bill 2026-08", entry.Purpose)
	})

	t.Run("missing landlord fails validation", func(t *testing.T) {
		_, err := NewLedgerEntry(uuid.Nil, siteID, unitID,
			TransactionTypeBill, decimal.NewFromInt(100), ZeroBalance(), 1)
		assert.Error(t, err)
	})

	t.Run("missing site fails validation", func(t *testing.T) {
		_, err := NewLedgerEntry(landlordID, uuid.Nil, unitID,
			TransactionTypeBill, decimal.NewFromInt(100), ZeroBalance(), 1)
		assert.Error(t, err)
	})

	t.Run("missing unit fails validation", func(t *testing.T) {
		_, err := NewLedgerEntry(landlordID, siteID, uuid.Nil,
			TransactionTypeBill, decimal.NewFromInt(100), ZeroBalance(), 1)
		assert.Error(t, err)
	})

	t.Run("zero amount fails validation", func(t *testing.T) {
		_, err := NewLedgerEntry(landlordID, siteID, unitID,
			TransactionTypeBill, decimal.Zero, ZeroBalance(), 1)
		assert.Error(t, err)
	})

	t.Run("unknown transaction type fails validation", func(t *testing.T) {
		_, err := NewLedgerEntry(landlordID, siteID, unitID,
			TransactionType("TRANSFER"), decimal.NewFromInt(100), ZeroBalance(), 1)
		assert.Error(t, err)
	})
}

func TestLedgerEntryChaining(t *testing.T) {
	landlordID := uuid.New()
	siteID := uuid.New()
	unitID := uuid.New()

	first, err := NewLedgerEntry(landlordID, siteID, unitID,
		TransactionTypeBill, decimal.NewFromInt(500), ZeroBalance(), 1)
	require.NoError(t, err)

	second, err := NewLedgerEntry(landlordID, siteID, unitID,
		TransactionTypePayment, decimal.NewFromInt(200), first.ClosingBalance, 2)
	require.NoError(t, err)

	assert.True(t, second.ChainsAfter(first))
	assert.True(t, first.ChainsAfter(nil))

	t.Run("sequence gap breaks the chain", func(t *testing.T) {
		gapped, err := NewLedgerEntry(landlordID, siteID, unitID,
			TransactionTypePayment, decimal.NewFromInt(100), second.ClosingBalance, 5)
		require.NoError(t, err)
		assert.False(t, gapped.ChainsAfter(second))
	})

	t.Run("mismatched opening balance breaks the chain", func(t *testing.T) {
		wrong, err := NewLedgerEntry(landlordID, siteID, unitID,
			TransactionTypePayment, decimal.NewFromInt(100), ZeroBalance(), 3)
		require.NoError(t, err)
		assert.False(t, wrong.ChainsAfter(second))
	})
}

func TestLedgerEntryVerify(t *testing.T) {
	entry, err := NewLedgerEntry(uuid.New(), uuid.New(), uuid.New(),
		TransactionTypeBill, decimal.NewFromInt(100), ZeroBalance(), 1)
	require.NoError(t, err)
	require.NoError(t, entry.Verify())

	entry.ClosingBalance = Balance{Amount: decimal.NewFromInt(999), Type: BalanceTypeDebit}
	assert.Error(t, entry.Verify())
}

func TestNewPaymentLedgerEntry(t *testing.T) {
	scope := PaymentScope{
		PartyType: PartyTypeTenant,
		PartyID:   uuid.New(),
		SiteID:    uuid.New(),
		UnitID:    uuid.New(),
	}

	t.Run("wallet top-up with no prior entry", func(t *testing.T) {
		entry, err := NewPaymentLedgerEntry(scope, EntryTypeCredit,
			decimal.Zero, decimal.NewFromInt(1000), decimal.Zero, 1)
		require.NoError(t, err)

		assert.True(t, entry.OpeningBalance.IsZero())
		assert.True(t, decimal.NewFromInt(1000).Equal(entry.ClosingBalance))
		assert.NoError(t, entry.Verify())
	})

	t.Run("debit entry reduces the running balance", func(t *testing.T) {
		entry, err := NewPaymentLedgerEntry(scope, EntryTypeDebit,
			decimal.NewFromInt(300), decimal.Zero, decimal.NewFromInt(1000), 2)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(700).Equal(entry.ClosingBalance))
	})

	t.Run("closing balance can go negative", func(t *testing.T) {
		entry, err := NewPaymentLedgerEntry(scope, EntryTypeDebit,
			decimal.NewFromInt(500), decimal.Zero, decimal.NewFromInt(200), 3)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(-300).Equal(entry.ClosingBalance))
	})

	t.Run("credit entry with nonzero debit is rejected", func(t *testing.T) {
		_, err := NewPaymentLedgerEntry(scope, EntryTypeCredit,
			decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.Zero, 1)
		assert.Error(t, err)
	})

	t.Run("debit entry with zero debit amount is rejected", func(t *testing.T) {
		_, err := NewPaymentLedgerEntry(scope, EntryTypeDebit,
			decimal.Zero, decimal.Zero, decimal.Zero, 1)
		assert.Error(t, err)
	})

	t.Run("incomplete scope is rejected", func(t *testing.T) {
		bad := scope
		bad.UnitID = uuid.Nil
		_, err := NewPaymentLedgerEntry(bad, EntryTypeCredit,
			decimal.Zero, decimal.NewFromInt(100), decimal.Zero, 1)
		assert.Error(t, err)
	})

	t.Run("invalid party type is rejected", func(t *testing.T) {
		bad := scope
		bad.PartyType = PartyType("AGENT")
		_, err := NewPaymentLedgerEntry(bad, EntryTypeCredit,
			decimal.Zero, decimal.NewFromInt(100), decimal.Zero, 1)
		assert.Error(t, err)
	})
}
