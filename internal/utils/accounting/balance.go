package accounting

import (
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeBalances returns the aggregated balance of every account in the forest.
//
// Each account starts from its opening balance plus the entries posted
// directly to it. Every leaf then adds its own balance to each of its
// ancestors. Entries that name an unknown account are ignored.
func ComputeBalances(forest *AccountForest, transactions []domain.Transaction) map[string]decimal.Decimal {
	own := make(map[string]decimal.Decimal, forest.Len())
	for _, acc := range forest.accounts {
		own[acc.AccountID] = acc.OpeningBalance
	}

	for _, txn := range transactions {
		for _, e := range txn.Entries {
			if bal, ok := own[e.AccountID]; ok {
				own[e.AccountID] = bal.Add(e.Amount)
			}
		}
	}

	balances := make(map[string]decimal.Decimal, len(own))
	for id, bal := range own {
		balances[id] = bal
	}
	for _, acc := range forest.accounts {
		if !forest.IsLeaf(acc.AccountID) {
			continue
		}
		for _, parentID := range forest.Ancestors(acc.AccountID) {
			balances[parentID] = balances[parentID].Add(own[acc.AccountID])
		}
	}
	return balances
}

// DisplayBalance flips credit-nature balances so they read as positive amounts.
func DisplayBalance(acc domain.Account, balance decimal.Decimal) decimal.Decimal {
	if acc.IsCreditNature() {
		return balance.Neg()
	}
	return balance
}

// BuildAccountTree nests the forest with the computed balances attached.
func BuildAccountTree(forest *AccountForest, balances map[string]decimal.Decimal) []domain.AccountTreeNode {
	var build func(kids []domain.Account, depth int) []domain.AccountTreeNode
	build = func(kids []domain.Account, depth int) []domain.AccountTreeNode {
		nodes := make([]domain.AccountTreeNode, 0, len(kids))
		for _, acc := range kids {
			bal := balances[acc.AccountID]
			nodes = append(nodes, domain.AccountTreeNode{
				Account:        acc,
				Balance:        bal,
				DisplayBalance: DisplayBalance(acc, bal),
				Depth:          depth,
				Children:       build(forest.ChildrenOf(acc.AccountID), depth+1),
			})
		}
		return nodes
	}
	return build(forest.Roots(), 0)
}

// SumByType adds up the display balances of leaf accounts of the given type.
func SumByType(forest *AccountForest, balances map[string]decimal.Decimal, accType domain.AccountType) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range forest.Accounts() {
		if acc.Type != accType || !forest.IsLeaf(acc.AccountID) {
			continue
		}
		total = total.Add(DisplayBalance(acc, balances[acc.AccountID]))
	}
	return total
}
