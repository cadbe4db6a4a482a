package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ContinuityTolerance is the largest closing/opening gap still treated as continuous.
	ContinuityTolerance = decimal.NewFromFloat(0.01)
	// warningPercent is the relative gap, in percent of the closing stock, below which a mismatch is a warning.
	warningPercent = decimal.NewFromInt(1)
	hundred        = decimal.NewFromInt(100)
)

// SortYears orders financial years by start date, then by name.
func SortYears(years []domain.FinancialYear) []domain.FinancialYear {
	sorted := make([]domain.FinancialYear, len(years))
	copy(sorted, years)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].StartDate.Equal(sorted[j].StartDate) {
			return sorted[i].StartDate.Before(sorted[j].StartDate)
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// CheckStockContinuity verifies that each closed year's closing stock carries
// over as the opening stock of the year that follows it.
// Only a closed year can contribute a closing side; open years are reported
// but never compared against their successor.
func CheckStockContinuity(shopID string, years []domain.FinancialYear, now time.Time) domain.StockContinuityReport {
	sorted := SortYears(years)

	report := domain.StockContinuityReport{
		ShopID:        shopID,
		IsValid:       true,
		Years:         make([]domain.YearContinuityCheck, 0, len(sorted)),
		Discrepancies: []domain.StockDiscrepancy{},
		CheckedAt:     now,
	}

	for i, year := range sorted {
		check := domain.YearContinuityCheck{
			FinancialYearID:   year.FinancialYearID,
			Name:              year.Name,
			Status:            year.Status,
			OpeningStockValue: year.OpeningStockValue,
			ClosingStockValue: year.ClosingStockValue,
			IsContinuous:      true,
		}

		if i+1 < len(sorted) {
			next := sorted[i+1]
			nextOpening := next.OpeningStockValue
			check.NextFinancialYearID = next.FinancialYearID
			check.NextOpeningStock = &nextOpening

			if year.IsClosed() {
				check.Checked = true
				closing := *year.ClosingStockValue
				check.Difference = closing.Sub(nextOpening)

				if check.Difference.Abs().GreaterThan(ContinuityTolerance) {
					check.IsContinuous = false
					report.IsValid = false
					report.Discrepancies = append(report.Discrepancies, newDiscrepancy(year, next, closing, check.Difference))
				}
			}
		}

		report.Years = append(report.Years, check)
	}

	return report
}

func newDiscrepancy(from, to domain.FinancialYear, closing, diff decimal.Decimal) domain.StockDiscrepancy {
	amount := closing.StringFixed(2)
	return domain.StockDiscrepancy{
		FromYearID:        from.FinancialYearID,
		FromYearName:      from.Name,
		ToYearID:          to.FinancialYearID,
		ToYearName:        to.Name,
		ClosingStockValue: closing,
		OpeningStockValue: to.OpeningStockValue,
		Difference:        diff,
		Severity:          discrepancySeverity(closing, diff),
		SuggestedAction: fmt.Sprintf("يرجى تعديل مخزون أول المدة للسنة المالية %s إلى %s ليطابق مخزون آخر المدة للسنة المالية %s",
			to.Name, amount, from.Name),
		SuggestedActionEn: fmt.Sprintf("Set the opening stock of financial year %s to %s to match the closing stock of %s",
			to.Name, amount, from.Name),
	}
}

// discrepancySeverity grades a gap relative to the closing stock.
// With no closing stock to compare against every gap is an error.
func discrepancySeverity(closing, diff decimal.Decimal) domain.DiscrepancySeverity {
	if closing.IsZero() {
		return domain.SeverityError
	}
	percent := diff.Abs().Div(closing.Abs()).Mul(hundred)
	if percent.LessThan(warningPercent) {
		return domain.SeverityWarning
	}
	return domain.SeverityError
}
