package domain

import "github.com/shopspring/decimal"

// Fee names recognized in the payment_fees table.
const (
	FeeRegistration = "registration"
	FeeVerification = "verification"
	FeeProcessing   = "processing"
)

// PaymentFee is a single fee line associated with a role. This core only
// reads fees; the payment collaborator owns the table.
type PaymentFee struct {
	FeeID    int64           `json:"feeID"`
	RoleID   int64           `json:"roleID"`
	FeeName  string          `json:"feeName"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	IsActive bool            `json:"isActive"`
}

// FeeBreakdown is the read-only summary shown to the caller after a
// successful verification.
type FeeBreakdown struct {
	Registration decimal.Decimal `json:"registration"`
	Verification decimal.Decimal `json:"verification"`
	Processing   decimal.Decimal `json:"processing"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"currency"`
}

// BuildFeeBreakdown folds active fee lines into a breakdown. Unknown fee
// names still count toward the total.
func BuildFeeBreakdown(fees []PaymentFee) FeeBreakdown {
	var b FeeBreakdown
	for _, f := range fees {
		if !f.IsActive {
			continue
		}
		switch f.FeeName {
		case FeeRegistration:
			b.Registration = b.Registration.Add(f.Amount)
		case FeeVerification:
			b.Verification = b.Verification.Add(f.Amount)
		case FeeProcessing:
			b.Processing = b.Processing.Add(f.Amount)
		}
		b.Total = b.Total.Add(f.Amount)
		if b.Currency == "" {
			b.Currency = f.Currency
		}
	}
	return b
}
