package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpilot/ledger/internal/core/domain"
)

// CreateInvoiceRequest defines the data needed to issue an invoice.
type CreateInvoiceRequest struct {
	CustomerName string          `json:"customerName" binding:"required"`
	Total        decimal.Decimal `json:"total" binding:"required"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID    string          `json:"invoiceID"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	JournalID    *string         `json:"journalID,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// RecordPaymentRequest defines the data needed to record a payment.
type RecordPaymentRequest struct {
	InvoiceID *string         `json:"invoiceID"` // Optional: the invoice this payment settles
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	PaidAt    time.Time       `json:"paidAt"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	InvoiceID *string         `json:"invoiceID,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	PaidAt    time.Time       `json:"paidAt"`
	JournalID *string         `json:"journalID,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to its DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:    inv.InvoiceID,
		CustomerName: inv.CustomerName,
		Total:        inv.Total,
		Status:       string(inv.Status),
		JournalID:    inv.JournalID,
		CreatedAt:    inv.CreatedAt,
	}
}

// ToPaymentResponse converts a domain.Payment to its DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Method:    p.Method,
		PaidAt:    p.PaidAt,
		JournalID: p.JournalID,
	}
}
