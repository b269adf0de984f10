package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnpaidBill is the slice of a bill the reconciler needs: identity, total and
// generation time. Bills must be supplied oldest-generated-first; earlier
// bills are settled first from any standing advance.
type UnpaidBill struct {
	BillID      uuid.UUID
	TotalAmount decimal.Decimal
	GeneratedAt time.Time
}

// SettlementItem is the reconciler's verdict on one bill
type SettlementItem struct {
	BillID      uuid.UUID       `json:"bill_id"`
	BillAmount  decimal.Decimal `json:"bill_amount"`
	BillPayable decimal.Decimal `json:"bill_payable"`
	AutoPaid    bool            `json:"auto_paid"`
}

// SettlementPlan is the pure outcome of walking a landlord's unpaid bills
// against their current balance. Nothing is persisted by computing a plan;
// applying it is a separate, explicit operation.
type SettlementPlan struct {
	Items        []SettlementItem `json:"bills"`
	TotalBills   int              `json:"total_bills"`
	TotalPayable decimal.Decimal  `json:"total_payable"`
	FinalBalance Balance          `json:"final_balance"`
}

// AutoPaidBillIDs returns the bills the plan settles entirely from advance
func (p *SettlementPlan) AutoPaidBillIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0)
	for _, item := range p.Items {
		if item.AutoPaid {
			ids = append(ids, item.BillID)
		}
	}
	return ids
}

// BuildSettlementPlan reconciles a landlord's unpaid bills against the
// current running balance, in chronological order:
//
//   - a standing advance that covers a bill in full settles it (payable 0)
//     and shrinks the advance by the bill total;
//   - an advance that covers it partially leaves the remainder payable and
//     flips the running balance into debit;
//   - with no advance, the bill total stacks onto the amount already owed.
//
// TotalPayable accumulates only positive payables. The plan is deterministic
// and idempotent: bills it settles are no longer unpaid on the next run.
func BuildSettlementPlan(current Balance, bills []UnpaidBill) (*SettlementPlan, error) {
	for i := 1; i < len(bills); i++ {
		if bills[i].GeneratedAt.Before(bills[i-1].GeneratedAt) {
			return nil, shared.NewDomainError("UNORDERED_BILLS", "Bills must be ordered oldest-generated-first")
		}
	}

	running := current.Signed()
	plan := &SettlementPlan{
		Items:        make([]SettlementItem, 0, len(bills)),
		TotalBills:   len(bills),
		TotalPayable: decimal.Zero,
	}

	for _, bill := range bills {
		if !bill.TotalAmount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill total must be positive")
		}

		var payable decimal.Decimal
		if running.IsNegative() {
			advance := running.Neg()
			if advance.GreaterThanOrEqual(bill.TotalAmount) {
				// Advance covers the whole bill: settle it and keep the rest
				payable = decimal.Zero
				running = running.Add(bill.TotalAmount)
			} else {
				payable = bill.TotalAmount.Sub(advance)
				running = payable
			}
		} else {
			payable = running.Add(bill.TotalAmount)
			running = payable
		}

		plan.Items = append(plan.Items, SettlementItem{
			BillID:      bill.BillID,
			BillAmount:  bill.TotalAmount,
			BillPayable: payable,
			AutoPaid:    payable.IsZero(),
		})
		if payable.IsPositive() {
			plan.TotalPayable = plan.TotalPayable.Add(payable)
		}
	}

	plan.FinalBalance = BalanceFromSigned(running)
	return plan, nil
}
