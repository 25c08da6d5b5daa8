package analytics

import (
	"math"
	"sort"

	"github.com/cashly/cashly/internal/model"
)

// Recurring-expense detection thresholds. These are behavioral constants,
// not statistical parameters: a merchant is recurring at three debits, and a
// recurring merchant is a subscription at six debits whose amounts all stay
// within the tolerance of the first one. Changing any of them changes which
// merchants the dashboard flags.
const (
	// RecurringMinCount is the minimum number of debit transactions at one
	// merchant before it counts as recurring.
	RecurringMinCount = 3
	// SubscriptionMinCount is the minimum number of debit transactions at
	// one merchant before it can count as a subscription.
	SubscriptionMinCount = 6
	// SubscriptionAmountTolerance is the maximum absolute difference, in
	// currency units, between any charge and the merchant's first charge for
	// the merchant to still count as a near-constant subscription.
	SubscriptionAmountTolerance = 5.0
)

// RecurringExpense is a merchant the user pays repeatedly.
type RecurringExpense struct {
	Merchant       string
	TotalAmount    float64
	AverageAmount  float64
	Count          int
	IsSubscription bool
}

// RecurringExpenses groups debits by merchant and reports every merchant
// with at least RecurringMinCount transactions, sorted descending by total.
// A merchant is a subscription when it has at least SubscriptionMinCount
// transactions and every amount differs from the first by less than
// SubscriptionAmountTolerance.
func RecurringExpenses(transactions []model.Transaction) []RecurringExpense {
	amounts := make(map[string][]float64)
	var order []string

	for _, txn := range transactions {
		if !txn.IsDebit() {
			continue
		}
		label := txn.MerchantLabel()
		if _, seen := amounts[label]; !seen {
			order = append(order, label)
		}
		amounts[label] = append(amounts[label], math.Abs(txn.Amount))
	}

	var result []RecurringExpense
	for _, label := range order {
		charges := amounts[label]
		if len(charges) < RecurringMinCount {
			continue
		}

		var total float64
		for _, amount := range charges {
			total += amount
		}

		result = append(result, RecurringExpense{
			Merchant:       label,
			Count:          len(charges),
			TotalAmount:    total,
			AverageAmount:  total / float64(len(charges)),
			IsSubscription: isSubscription(charges),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalAmount > result[j].TotalAmount
	})
	return result
}

func isSubscription(charges []float64) bool {
	if len(charges) < SubscriptionMinCount {
		return false
	}
	first := charges[0]
	for _, amount := range charges[1:] {
		if math.Abs(amount-first) >= SubscriptionAmountTolerance {
			return false
		}
	}
	return true
}
