package accounting

import (
	"fmt"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrTooFewEntries      = fmt.Errorf("%w: transaction must have at least two entries", apperrors.ErrValidation)
	ErrZeroEntry          = fmt.Errorf("%w: entry amount must not be zero", apperrors.ErrValidation)
	ErrUnbalancedEntries  = fmt.Errorf("%w: entries do not balance to zero", apperrors.ErrValidation)
	ErrNonPositiveTotal   = fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	ErrSameAccount        = fmt.Errorf("%w: debit and credit account must differ", apperrors.ErrValidation)
	ErrUnknownTransaction = fmt.Errorf("%w: unknown transaction type", apperrors.ErrValidation)
)

// SignedAmount applies the entry side to an absolute amount.
// DEBIT -> Positive (+), CREDIT -> Negative (-).
func SignedAmount(amount decimal.Decimal, side domain.EntrySide) decimal.Decimal {
	abs := amount.Abs()
	if side == domain.Credit {
		return abs.Neg()
	}
	return abs
}

// NormalizeEntries makes the sign and the side of each entry agree.
// An explicit side wins over the sign of the amount; a missing side is
// derived from the sign.
func NormalizeEntries(entries []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	for i, e := range entries {
		switch e.Side {
		case domain.Debit, domain.Credit:
			e.Amount = SignedAmount(e.Amount, e.Side)
		default:
			if e.Amount.IsNegative() {
				e.Side = domain.Credit
			} else {
				e.Side = domain.Debit
			}
		}
		out[i] = e
	}
	return out
}

// EntriesSum returns the signed sum of all entry amounts.
func EntriesSum(entries []domain.Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// ValidateEntries checks that a set of signed entries forms a balanced posting.
func ValidateEntries(entries []domain.Entry) error {
	if len(entries) < 2 {
		return ErrTooFewEntries
	}

	for i, e := range entries {
		if e.Amount.IsZero() {
			return fmt.Errorf("%w: entry %d on account %s", ErrZeroEntry, i, e.AccountID)
		}
	}

	if sum := EntriesSum(entries); !sum.IsZero() {
		return fmt.Errorf("%w: sum is %s", ErrUnbalancedEntries, sum.String())
	}

	return nil
}

// BuildEntries derives the two-line posting of a simple transaction.
//
//	SALE:     DEBIT cash,    CREDIT counter (sales)
//	PURCHASE: DEBIT counter, CREDIT cash
//	EXPENSE:  DEBIT counter, CREDIT cash
//	TRANSFER: DEBIT counter (destination), CREDIT cash (source)
func BuildEntries(txType domain.TransactionType, total decimal.Decimal, cashAccountID, counterAccountID string) ([]domain.Entry, error) {
	if !total.IsPositive() {
		return nil, ErrNonPositiveTotal
	}
	if cashAccountID == counterAccountID {
		return nil, ErrSameAccount
	}

	var debitAccount, creditAccount string
	switch txType {
	case domain.TxSale:
		debitAccount, creditAccount = cashAccountID, counterAccountID
	case domain.TxPurchase, domain.TxExpense, domain.TxTransfer:
		debitAccount, creditAccount = counterAccountID, cashAccountID
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransaction, txType)
	}

	return []domain.Entry{
		{AccountID: debitAccount, Amount: SignedAmount(total, domain.Debit), Side: domain.Debit},
		{AccountID: creditAccount, Amount: SignedAmount(total, domain.Credit), Side: domain.Credit},
	}, nil
}

// DebitCredit splits a signed amount into its debit and credit columns.
func DebitCredit(amount decimal.Decimal) (debit, credit decimal.Decimal) {
	if amount.IsNegative() {
		return decimal.Zero, amount.Neg()
	}
	return amount, decimal.Zero
}
