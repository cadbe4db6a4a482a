package accounting_test

import (
	"testing"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.Entry
		wantErr error
	}{
		{
			name:    "balanced",
			entries: []domain.Entry{entry("cash", "100"), entry("sales", "-100")},
		},
		{
			name:    "balanced split",
			entries: []domain.Entry{entry("cash", "60"), entry("bank", "40"), entry("sales", "-100")},
		},
		{
			name:    "single entry",
			entries: []domain.Entry{entry("cash", "100")},
			wantErr: accounting.ErrTooFewEntries,
		},
		{
			name:    "zero amount",
			entries: []domain.Entry{entry("cash", "0"), entry("sales", "0")},
			wantErr: accounting.ErrZeroEntry,
		},
		{
			name:    "unbalanced",
			entries: []domain.Entry{entry("cash", "100"), entry("sales", "-99.99")},
			wantErr: accounting.ErrUnbalancedEntries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateEntries(tt.entries)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestBuildEntries(t *testing.T) {
	tests := []struct {
		txType     domain.TransactionType
		wantDebit  string
		wantCredit string
	}{
		{txType: domain.TxSale, wantDebit: "cash", wantCredit: "counter"},
		{txType: domain.TxPurchase, wantDebit: "counter", wantCredit: "cash"},
		{txType: domain.TxExpense, wantDebit: "counter", wantCredit: "cash"},
		{txType: domain.TxTransfer, wantDebit: "counter", wantCredit: "cash"},
	}

	for _, tt := range tests {
		t.Run(string(tt.txType), func(t *testing.T) {
			entries, err := accounting.BuildEntries(tt.txType, dec("75.5"), "cash", "counter")
			require.NoError(t, err)
			require.Len(t, entries, 2)

			assert.Equal(t, tt.wantDebit, entries[0].AccountID)
			assert.Equal(t, domain.Debit, entries[0].Side)
			assertDecimal(t, "75.5", entries[0].Amount)
			assert.Equal(t, tt.wantCredit, entries[1].AccountID)
			assert.Equal(t, domain.Credit, entries[1].Side)
			assertDecimal(t, "-75.5", entries[1].Amount)
			assert.NoError(t, accounting.ValidateEntries(entries))
		})
	}
}

func TestBuildEntries_Errors(t *testing.T) {
	_, err := accounting.BuildEntries(domain.TxSale, dec("0"), "cash", "sales")
	assert.ErrorIs(t, err, accounting.ErrNonPositiveTotal)

	_, err = accounting.BuildEntries(domain.TxSale, dec("10"), "cash", "cash")
	assert.ErrorIs(t, err, accounting.ErrSameAccount)

	_, err = accounting.BuildEntries(domain.TransactionType("REFUND"), dec("10"), "cash", "sales")
	assert.ErrorIs(t, err, accounting.ErrUnknownTransaction)
}

func TestNormalizeEntries(t *testing.T) {
	in := []domain.Entry{
		{AccountID: "a", Amount: dec("20"), Side: domain.Credit},
		{AccountID: "b", Amount: dec("-20"), Side: domain.Debit},
		{AccountID: "c", Amount: dec("-5")},
		{AccountID: "d", Amount: dec("5")},
	}

	out := accounting.NormalizeEntries(in)

	assertDecimal(t, "-20", out[0].Amount)
	assertDecimal(t, "20", out[1].Amount)
	assert.Equal(t, domain.Credit, out[2].Side)
	assert.Equal(t, domain.Debit, out[3].Side)
	assertDecimal(t, "20", in[0].Amount, "input is untouched")
	assertDecimal(t, "0", accounting.EntriesSum(out))
}

func TestDebitCredit(t *testing.T) {
	debit, credit := accounting.DebitCredit(dec("-12"))
	assertDecimal(t, "0", debit)
	assertDecimal(t, "12", credit)

	debit, credit = accounting.DebitCredit(dec("8"))
	assertDecimal(t, "8", debit)
	assertDecimal(t, "0", credit)
}
