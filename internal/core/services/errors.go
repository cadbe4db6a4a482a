package services

import (
	"fmt"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
)

var (
	// ErrYearClosed is returned when a write targets a CLOSED financial year.
	ErrYearClosed = fmt.Errorf("financial year is closed: %w", apperrors.ErrConflict)

	// ErrYearAlreadyClosed is returned when closing a year twice.
	ErrYearAlreadyClosed = fmt.Errorf("financial year is already closed: %w", apperrors.ErrConflict)

	// ErrYearOverlap is returned when a new year intersects an existing one of the same shop.
	ErrYearOverlap = fmt.Errorf("financial year overlaps an existing year: %w", apperrors.ErrConflict)

	// ErrDateOutsideYear is returned when a transaction date falls outside its chosen year.
	ErrDateOutsideYear = fmt.Errorf("date is outside the financial year: %w", apperrors.ErrValidation)

	// ErrAccountNotInShop is returned when an entry or parent account belongs to another shop.
	ErrAccountNotInShop = fmt.Errorf("account does not belong to this shop: %w", apperrors.ErrValidation)

	// ErrAccountInactive is returned when posting to a deactivated account.
	ErrAccountInactive = fmt.Errorf("account is inactive: %w", apperrors.ErrValidation)

	// ErrParentNotMain is returned when a sub-account is used as a parent.
	ErrParentNotMain = fmt.Errorf("parent must be a main account: %w", apperrors.ErrValidation)

	// ErrAccountHasChildren is returned when deactivating a main account with active sub-accounts.
	ErrAccountHasChildren = fmt.Errorf("account has active sub-accounts: %w", apperrors.ErrConflict)

	// ErrEntriesRequired is returned when a transaction update cannot derive its entries.
	ErrEntriesRequired = fmt.Errorf("entries must be provided for this transaction: %w", apperrors.ErrValidation)
)
