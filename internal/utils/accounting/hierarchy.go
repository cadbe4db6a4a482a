package accounting

import (
	"fmt"
	"sort"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
)

var (
	ErrAccountCycle     = fmt.Errorf("%w: account hierarchy contains a cycle", apperrors.ErrValidation)
	ErrDuplicateAccount = fmt.Errorf("%w: duplicate account id in hierarchy", apperrors.ErrValidation)
)

// AccountForest is an index over a flat list of accounts that resolves the
// parent/child relationships once. Accounts are stored in an arena and
// referenced by position; the structure is read-only after construction.
type AccountForest struct {
	accounts []domain.Account
	index    map[string]int
	children map[string][]int // parentID -> children sorted by code, "" holds the roots
}

// NewAccountForest builds the forest and rejects duplicate ids and parent cycles.
// An account whose parent is not in the list is treated as a root.
func NewAccountForest(accounts []domain.Account) (*AccountForest, error) {
	f := &AccountForest{
		accounts: make([]domain.Account, len(accounts)),
		index:    make(map[string]int, len(accounts)),
		children: make(map[string][]int),
	}
	copy(f.accounts, accounts)

	for i, acc := range f.accounts {
		if _, dup := f.index[acc.AccountID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, acc.AccountID)
		}
		f.index[acc.AccountID] = i
	}

	for i, acc := range f.accounts {
		if err := f.checkAcyclic(i); err != nil {
			return nil, err
		}
		parent := acc.ParentID
		if _, ok := f.index[parent]; !ok {
			parent = ""
		}
		f.children[parent] = append(f.children[parent], i)
	}

	for parent := range f.children {
		kids := f.children[parent]
		sort.SliceStable(kids, func(a, b int) bool {
			left, right := f.accounts[kids[a]], f.accounts[kids[b]]
			if left.Code != right.Code {
				return left.Code < right.Code
			}
			return left.AccountID < right.AccountID
		})
	}

	return f, nil
}

// checkAcyclic walks up from account i and fails if the chain loops.
func (f *AccountForest) checkAcyclic(i int) error {
	start := f.accounts[i].AccountID
	steps := 0
	cur := f.accounts[i].ParentID
	for cur != "" {
		if cur == start {
			return fmt.Errorf("%w: account %s is its own ancestor", ErrAccountCycle, start)
		}
		j, ok := f.index[cur]
		if !ok {
			return nil
		}
		steps++
		if steps > len(f.accounts) {
			return fmt.Errorf("%w: ancestors of account %s never reach a root", ErrAccountCycle, start)
		}
		cur = f.accounts[j].ParentID
	}
	return nil
}

// Len returns the number of accounts in the forest.
func (f *AccountForest) Len() int {
	return len(f.accounts)
}

// Accounts returns the accounts in their original input order.
func (f *AccountForest) Accounts() []domain.Account {
	out := make([]domain.Account, len(f.accounts))
	copy(out, f.accounts)
	return out
}

// Account looks an account up by id.
func (f *AccountForest) Account(accountID string) (domain.Account, bool) {
	i, ok := f.index[accountID]
	if !ok {
		return domain.Account{}, false
	}
	return f.accounts[i], true
}

// ChildrenOf returns the direct children of parentID sorted by account code.
// An empty parentID returns the roots.
func (f *AccountForest) ChildrenOf(parentID string) []domain.Account {
	kids := f.children[parentID]
	out := make([]domain.Account, len(kids))
	for i, k := range kids {
		out[i] = f.accounts[k]
	}
	return out
}

// Roots returns the top-level accounts, including orphans, sorted by code.
func (f *AccountForest) Roots() []domain.Account {
	return f.ChildrenOf("")
}

// IsLeaf reports whether no account names accountID as its parent.
func (f *AccountForest) IsLeaf(accountID string) bool {
	return len(f.children[accountID]) == 0
}

// Ancestors returns the parent chain of accountID, nearest first.
// The walk stops at the first parent that is not part of the forest.
func (f *AccountForest) Ancestors(accountID string) []string {
	var out []string
	i, ok := f.index[accountID]
	if !ok {
		return nil
	}
	cur := f.accounts[i].ParentID
	for cur != "" {
		j, ok := f.index[cur]
		if !ok {
			break
		}
		out = append(out, cur)
		cur = f.accounts[j].ParentID
	}
	return out
}

// Descendants returns every account below accountID in depth-first order.
func (f *AccountForest) Descendants(accountID string) []domain.Account {
	var out []domain.Account
	var visit func(id string)
	visit = func(id string) {
		for _, k := range f.children[id] {
			out = append(out, f.accounts[k])
			visit(f.accounts[k].AccountID)
		}
	}
	visit(accountID)
	return out
}

// Walk visits every account depth-first, parents before children, siblings by code.
func (f *AccountForest) Walk(fn func(acc domain.Account, depth int)) {
	var visit func(parent string, depth int)
	visit = func(parent string, depth int) {
		for _, k := range f.children[parent] {
			fn(f.accounts[k], depth)
			visit(f.accounts[k].AccountID, depth+1)
		}
	}
	visit("", 0)
}
