package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the payment lifecycle of an invoice.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentCanceled PaymentStatus = "canceled"
)

// Invoice is a supplier or customer invoice tracked for reconciliation.
type Invoice struct {
	ID            string
	StoreID       string
	Party         string
	Number        string
	Total         decimal.Decimal // non-negative
	IssueDate     time.Time
	DueDate       time.Time // zero if none
	Payment       PaymentStatus
	Recon         ReconStatus
	AttachmentRef string // relative path under attachments/, empty if none
}
