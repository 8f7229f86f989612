package service

import (
	"context"
	"math"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// CheckoutItem is the order data carried into a hosted payment session.
type CheckoutItem struct {
	OrderID       string
	BookID        string
	UserName      string
	BookName      string
	CustomerEmail string
	Price         float64
}

// CheckoutSession is the created hosted session the client is redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionDetails is what the processor reports for a completed session.
type SessionDetails struct {
	ID            string
	TransactionID string
	CustomerEmail string
	CustomerName  string
	AmountTotal   int64 // cents
	Metadata      map[string]string
	Paid          bool
}

// CheckoutProvider creates hosted payment sessions and retrieves their
// outcome. Session retrieval failures are terminal for the request; there is
// no retry.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, item CheckoutItem, successURL, cancelURL string) (*CheckoutSession, error)
	SessionDetails(ctx context.Context, sessionID string) (*SessionDetails, error)
}

// PriceCents converts a price in whole currency units to cents.
func PriceCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// StripeProvider implements CheckoutProvider over Stripe Checkout.
type StripeProvider struct {
	api *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

func (p *StripeProvider) CreateSession(ctx context.Context, item CheckoutItem, successURL, cancelURL string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(successURL),
		CancelURL:     stripe.String(cancelURL),
		CustomerEmail: stripe.String(item.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(PriceCents(item.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.BookName),
				},
			},
		}},
	}
	params.Context = ctx
	params.AddMetadata("orderId", item.OrderID)
	params.AddMetadata("bookId", item.BookID)
	params.AddMetadata("userName", item.UserName)
	params.AddMetadata("bookName", item.BookName)

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (p *StripeProvider) SessionDetails(ctx context.Context, sessionID string) (*SessionDetails, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	details := &SessionDetails{
		ID:          sess.ID,
		AmountTotal: sess.AmountTotal,
		Metadata:    sess.Metadata,
		Paid:        sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
	if sess.PaymentIntent != nil {
		details.TransactionID = sess.PaymentIntent.ID
	}
	if sess.CustomerDetails != nil {
		details.CustomerEmail = sess.CustomerDetails.Email
		details.CustomerName = sess.CustomerDetails.Name
	}
	return details, nil
}
