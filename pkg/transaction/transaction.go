package transaction

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction and decides how it is rendered
type Kind int

const (
	Expense Kind = iota
	Income
	Refund
	Repayment
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case Expense:
		return "expense"
	case Income:
		return "income"
	case Refund:
		return "refund"
	case Repayment:
		return "repayment"
	default:
		return "unknown"
	}
}

// Transaction represents a single statement line item.
// Amount is always non-negative; direction is carried by Kind.
type Transaction struct {
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          Kind            `json:"kind"`
	CardSuffix    string          `json:"card_suffix,omitempty"`
	ForeignAmount string          `json:"foreign_amount,omitempty"`
}

// TransactionList holds the transactions of one conversion run
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Source       string        `json:"source"`
}

// AddTransaction appends a transaction to the list
func (tl *TransactionList) AddTransaction(t Transaction) {
	tl.Transactions = append(tl.Transactions, t)
	tl.Total = len(tl.Transactions)
}

// SortByDate orders the transactions by ascending date, keeping statement
// order for equal dates
func (tl *TransactionList) SortByDate() {
	slices.SortStableFunc(tl.Transactions, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})
}

// GetByKind returns all transactions of the given kind
func (tl *TransactionList) GetByKind(kind Kind) []Transaction {
	var filtered []Transaction
	for _, t := range tl.Transactions {
		if t.Kind == kind {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
