package services

import (
	"context"
	"log"
	"time"

	"nightlife-booking-platform/internal/models"
)

// PaymentResult represents the result of a payment attempt
type PaymentResult struct {
	Status  string `json:"status"`
	Amount  int    `json:"amount"`
	Message string `json:"message"`
}

// StubPaymentService backs the "Pay Now" button until a provider is integrated
type StubPaymentService struct{}

// NewStubPaymentService creates the placeholder payment service
func NewStubPaymentService() *StubPaymentService {
	log.Println("Payment service: using stub (no provider configured)")
	return &StubPaymentService{}
}

// Checkout reports the amount due and that payment is not available yet
func (s *StubPaymentService) Checkout(ctx context.Context, session *models.Session, summary models.TicketSummary) (*PaymentResult, error) {
	if err := session.Check(time.Now()); err != nil {
		return nil, err
	}
	log.Printf("Checkout requested by %s for %d (%d people)", session.ID, summary.TotalPrice, summary.TotalPeople)
	return &PaymentResult{
		Status:  "unavailable",
		Amount:  summary.TotalPrice,
		Message: "Payment is not available yet",
	}, models.ErrNotImplemented
}
