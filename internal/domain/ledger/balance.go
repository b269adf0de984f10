package ledger

import (
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BalanceType represents the direction of a running balance.
// An empty type means the balance is exactly zero.
type BalanceType string

const (
	// BalanceTypeDebit means the party owes money
	BalanceTypeDebit BalanceType = "DEBIT"
	// BalanceTypeCredit means the party holds an advance
	BalanceTypeCredit BalanceType = "CREDIT"
	// BalanceTypeNone means the balance is zero
	BalanceTypeNone BalanceType = ""
)

// IsValid returns true if the balance type is valid
func (t BalanceType) IsValid() bool {
	switch t {
	case BalanceTypeDebit, BalanceTypeCredit, BalanceTypeNone:
		return true
	}
	return false
}

// String returns the string representation of BalanceType
func (t BalanceType) String() string {
	return string(t)
}

// TransactionType represents the kind of transaction a ledger entry records
type TransactionType string

const (
	// TransactionTypeBill increases the amount owed by the party
	TransactionTypeBill TransactionType = "BILL"
	// TransactionTypePayment decreases the amount owed by the party
	TransactionTypePayment TransactionType = "PAYMENT"
	// TransactionTypeOpeningBalance seeds the running balance for a party
	TransactionTypeOpeningBalance TransactionType = "OPENING_BALANCE"
)

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeBill, TransactionTypePayment, TransactionTypeOpeningBalance:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// Balance is an immutable directional balance: a non-negative amount plus
// a direction. Zero balances carry BalanceTypeNone.
type Balance struct {
	Amount decimal.Decimal `json:"amount"`
	Type   BalanceType     `json:"type"`
}

// ZeroBalance returns a balance of exactly zero
func ZeroBalance() Balance {
	return Balance{Amount: decimal.Zero, Type: BalanceTypeNone}
}

// NewBalance creates a balance after validating amount and type consistency
func NewBalance(amount decimal.Decimal, balanceType BalanceType) (Balance, error) {
	if amount.IsNegative() {
		return Balance{}, shared.NewDomainError("INVALID_BALANCE", "Balance amount cannot be negative")
	}
	if !balanceType.IsValid() {
		return Balance{}, shared.NewDomainError("INVALID_BALANCE", "Invalid balance type")
	}
	if amount.IsZero() {
		return ZeroBalance(), nil
	}
	if balanceType == BalanceTypeNone {
		return Balance{}, shared.NewDomainError("INVALID_BALANCE", "Nonzero balance requires a direction")
	}
	return Balance{Amount: amount, Type: balanceType}, nil
}

// Signed converts the balance into a comparable signed value:
// debit is positive (owed), credit is negative (advance).
func (b Balance) Signed() decimal.Decimal {
	switch b.Type {
	case BalanceTypeDebit:
		return b.Amount
	case BalanceTypeCredit:
		return b.Amount.Neg()
	}
	return decimal.Zero
}

// BalanceFromSigned converts a signed value back into a directional balance
func BalanceFromSigned(value decimal.Decimal) Balance {
	switch {
	case value.IsPositive():
		return Balance{Amount: value, Type: BalanceTypeDebit}
	case value.IsNegative():
		return Balance{Amount: value.Neg(), Type: BalanceTypeCredit}
	}
	return ZeroBalance()
}

// IsZero returns true if the balance is exactly zero
func (b Balance) IsZero() bool {
	return b.Amount.IsZero()
}

// IsCredit returns true if the party holds an advance
func (b Balance) IsCredit() bool {
	return b.Type == BalanceTypeCredit && b.Amount.IsPositive()
}

// IsDebit returns true if the party owes money
func (b Balance) IsDebit() bool {
	return b.Type == BalanceTypeDebit && b.Amount.IsPositive()
}

// Equal returns true if both balances represent the same signed value
func (b Balance) Equal(other Balance) bool {
	return b.Signed().Equal(other.Signed())
}

// Apply returns the balance that results from recording a transaction of the
// given type and amount against this balance. A bill increases the amount
// owed, a payment decreases it, an opening balance replaces it.
func (b Balance) Apply(txType TransactionType, amount decimal.Decimal) (Balance, error) {
	if !txType.IsValid() {
		return Balance{}, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid ledger transaction type")
	}
	if amount.IsNegative() {
		return Balance{}, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount cannot be negative")
	}

	switch txType {
	case TransactionTypeBill:
		return BalanceFromSigned(b.Signed().Add(amount)), nil
	case TransactionTypePayment:
		return BalanceFromSigned(b.Signed().Sub(amount)), nil
	case TransactionTypeOpeningBalance:
		return BalanceFromSigned(amount), nil
	}
	return Balance{}, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid ledger transaction type")
}

// DebitCredit is the dual-column rendering of a signed balance, kept for
// consumers of the payment-ledger shape.
type DebitCredit struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// ToDebitCredit renders the balance as unsigned debit/credit columns
func (b Balance) ToDebitCredit() DebitCredit {
	switch b.Type {
	case BalanceTypeDebit:
		return DebitCredit{Debit: b.Amount, Credit: decimal.Zero}
	case BalanceTypeCredit:
		return DebitCredit{Debit: decimal.Zero, Credit: b.Amount}
	}
	return DebitCredit{Debit: decimal.Zero, Credit: decimal.Zero}
}
