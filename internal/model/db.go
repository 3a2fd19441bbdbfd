package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. Status only moves forward: PENDING -> PROCESSING
// -> PAID or FAILED. PAID and FAILED are terminal.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusPaid       = "PAID"
	OrderStatusFailed     = "FAILED"
)

type Order struct {
	OrderID       string          `gorm:"primaryKey;size:64;not null"` // merchant-side business id (order nsu)
	Plan          string          `gorm:"size:64;index;not null"`
	CustomerEmail string          `gorm:"size:255;not null"`
	CustomerName  string          `gorm:"size:255"`
	CustomerPhone string          `gorm:"size:32"`
	AffiliateCode string          `gorm:"size:32;index"` // empty when the sale has no affiliate
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"size:32;index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ProcessedAt   *time.Time
}

// ProcessedTransaction marks one gateway transaction id as handled.
// Inserted exactly once, after the order reservation succeeded; never
// updated or deleted.
type ProcessedTransaction struct {
	TransactionNSU string `gorm:"primaryKey;size:128;not null"`
	CreatedAt      time.Time
}

type Customer struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Name      string `gorm:"size:255"`
	Phone     string `gorm:"size:32"`
	Plan      string `gorm:"size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Affiliate struct {
	Code           string          `gorm:"primaryKey;size:32;not null"`
	Name           string          `gorm:"size:255"`
	Email          string          `gorm:"size:255;index;not null"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,4);not null"`
	Balance        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReferredBy     string          `gorm:"size:32;index"` // code of the affiliate who recruited this one
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Commission kinds.
const (
	CommissionKindSale     = "SALE"
	CommissionKindReferral = "REFERRAL"
)

// Commission is one ledger entry. The unique index makes crediting
// tolerant of at-least-once invocation: a repeat credit for the same
// (affiliate, order, kind) is rejected by the store, not double-applied.
type Commission struct {
	ID            uint            `gorm:"primaryKey"`
	AffiliateCode string          `gorm:"size:32;not null;uniqueIndex:idx_commission_once"`
	OrderID       string          `gorm:"size:64;not null;uniqueIndex:idx_commission_once"`
	Kind          string          `gorm:"size:16;not null;uniqueIndex:idx_commission_once"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time
}

type Sale struct {
	OrderID       string          `gorm:"primaryKey;size:64;not null"`
	Plan          string          `gorm:"size:64;index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AffiliateCode string          `gorm:"size:32;index"`
	PaidAt        time.Time
}

type FunnelEvent struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   string `gorm:"size:64;index;not null"`
	Stage     string `gorm:"size:64;index;not null"`
	CreatedAt time.Time
}
