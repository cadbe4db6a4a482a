package accounting

import (
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MatrixScope restricts a profit matrix. Empty fields mean all shops or all years.
// A year may be picked by id or by name; the name selects the equally named
// year of every shop.
type MatrixScope struct {
	ShopID          string
	FinancialYearID string
	YearName        string
}

func (s MatrixScope) includesShop(shopID string) bool {
	return s.ShopID == "" || s.ShopID == shopID
}

func (s MatrixScope) includesYear(year domain.FinancialYear) bool {
	if s.FinancialYearID != "" && year.FinancialYearID != s.FinancialYearID {
		return false
	}
	if s.YearName != "" && year.Name != s.YearName {
		return false
	}
	return true
}

// BuildProfitMatrix computes the net profit of every shop/year pair in scope
// and rolls it up per shop, per year name and overall.
// Pairs with no transactions or no matching year count as zero.
func BuildProfitMatrix(shops []domain.Shop, years []domain.FinancialYear, txns []domain.Transaction, scope MatrixScope) domain.ProfitMatrix {
	matrix := domain.ProfitMatrix{
		PerShopPerYear:  make(map[string]map[string]decimal.Decimal),
		PerShopAllYears: make(map[string]decimal.Decimal),
		AllShopsPerYear: make(map[string]decimal.Decimal),
		GrandTotal:      decimal.Zero,
		ShopNames:       make(map[string]string),
		YearNames:       []string{},
	}

	inScope := make(map[string]bool, len(shops))
	for _, shop := range shops {
		if !scope.includesShop(shop.ShopID) {
			continue
		}
		inScope[shop.ShopID] = true
		matrix.ShopNames[shop.ShopID] = shop.Name
		matrix.PerShopPerYear[shop.ShopID] = make(map[string]decimal.Decimal)
		matrix.PerShopAllYears[shop.ShopID] = decimal.Zero
	}

	txnsByShop := make(map[string][]domain.Transaction)
	for _, txn := range txns {
		if inScope[txn.ShopID] {
			txnsByShop[txn.ShopID] = append(txnsByShop[txn.ShopID], txn)
		}
	}

	for _, year := range SortYears(years) {
		if !inScope[year.ShopID] || !scope.includesYear(year) {
			continue
		}
		if _, seen := matrix.AllShopsPerYear[year.Name]; !seen {
			matrix.YearNames = append(matrix.YearNames, year.Name)
			matrix.AllShopsPerYear[year.Name] = decimal.Zero
		}

		yearTxns := TransactionsInYear(txnsByShop[year.ShopID], year)
		net := CalculateProfit(yearTxns, &year).NetProfit

		perYear := matrix.PerShopPerYear[year.ShopID]
		perYear[year.Name] = perYear[year.Name].Add(net)
		matrix.PerShopAllYears[year.ShopID] = matrix.PerShopAllYears[year.ShopID].Add(net)
		matrix.AllShopsPerYear[year.Name] = matrix.AllShopsPerYear[year.Name].Add(net)
		matrix.GrandTotal = matrix.GrandTotal.Add(net)
	}

	for shopID, perYear := range matrix.PerShopPerYear {
		for _, name := range matrix.YearNames {
			if _, ok := perYear[name]; !ok {
				matrix.PerShopPerYear[shopID][name] = decimal.Zero
			}
		}
	}

	return matrix
}
