package utils

import (
	"ccw/config"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// CheckoutSession is the subset of Stripe's Checkout Session object this
// application reads. payment_intent is the unexpanded string id.
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	PaymentIntent string `json:"payment_intent"`
	AmountTotal   int64  `json:"amount_total"` // minor units, post-discount
	TotalDetails  struct {
		AmountDiscount int64 `json:"amount_discount"`
	} `json:"total_details"`
	Metadata map[string]string `json:"metadata"`
}

// CheckoutParams describes the single line item and redirect targets of a
// hosted checkout session.
type CheckoutParams struct {
	CustomerEmail   string
	ProductName     string
	ProductDesc     string
	UnitAmountCents int64
	SuccessURL      string
	CancelURL       string
	Metadata        map[string]string
}

// CreateCheckoutSession creates a hosted Stripe Checkout session and
// returns it. Stripe's API is form-encoded.
func CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error) {
	form := map[string]string{
		"mode":           "payment",
		"customer_email": params.CustomerEmail,
		"success_url":    params.SuccessURL,
		"cancel_url":     params.CancelURL,
		"line_items[0][price_data][currency]":                  "usd",
		"line_items[0][price_data][product_data][name]":        params.ProductName,
		"line_items[0][price_data][product_data][description]": params.ProductDesc,
		"line_items[0][price_data][unit_amount]":               fmt.Sprintf("%d", params.UnitAmountCents),
		"line_items[0][quantity]":                              "1",
	}
	for key, value := range params.Metadata {
		form[fmt.Sprintf("metadata[%s]", key)] = value
	}

	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.StripeSecretKey, "").
		SetFormData(form).
		Post(config.AppConfig.StripeApiURL + "/checkout/sessions")
	if err != nil {
		log.Printf("Failed to create Stripe checkout session: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Stripe checkout session creation failed: %s", resp.String())
		return nil, fmt.Errorf("stripe returned status %d", resp.StatusCode())
	}

	var session CheckoutSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		log.Printf("Failed to parse Stripe response: %v", err)
		return nil, err
	}
	return &session, nil
}

// RetrieveCheckoutSession fetches a completed session by id so the payment
// status and the amount actually charged can be confirmed.
func RetrieveCheckoutSession(sessionID string) (*CheckoutSession, error) {
	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.StripeSecretKey, "").
		Get(config.AppConfig.StripeApiURL + "/checkout/sessions/" + sessionID)
	if err != nil {
		log.Printf("Failed to retrieve Stripe session %s: %v", sessionID, err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Stripe session retrieval failed: %s", resp.String())
		return nil, fmt.Errorf("stripe returned status %d", resp.StatusCode())
	}

	var session CheckoutSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		log.Printf("Failed to parse Stripe response: %v", err)
		return nil, err
	}
	return &session, nil
}
