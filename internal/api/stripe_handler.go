package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"bellezza/internal/service"
)

type StripeWebhookHandler struct {
	WebhookSecret string
	checkout      *service.CheckoutService
	stripeService *service.StripeService
}

func NewStripeWebhookHandler(webhookSecret string, checkout *service.CheckoutService, stripeService *service.StripeService) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		WebhookSecret: webhookSecret,
		checkout:      checkout,
		stripeService: stripeService,
	}
}

func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error().Err(err).Msg("stripe webhook: error reading body")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, h.WebhookSecret)
	if err != nil {
		log.Error().Err(err).Msg("stripe webhook: signature verification failed")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Error().Err(err).Msg("stripe webhook: error parsing checkout.session")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if sess.ID == "" {
			log.Error().Msg("stripe webhook: no session ID in checkout.session.completed")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := h.checkout.MarkPaidBySessionID(sess.ID); err != nil {
			log.Error().Err(err).Str("session_id", sess.ID).Msg("stripe webhook: error marking sale paid")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

	case "charge.refunded":
		var charge stripe.Charge
		json.Unmarshal(event.Data.Raw, &charge)
		if charge.PaymentIntent != nil && charge.PaymentIntent.ID != "" {
			sessionID, err := h.stripeService.GetSessionIDByPaymentIntentID(charge.PaymentIntent.ID)
			if err != nil {
				log.Error().Err(err).Str("payment_intent", charge.PaymentIntent.ID).Msg("stripe webhook: no session found for refund")
				return
			}
			if err := h.checkout.MarkRefundedBySessionID(sessionID); err != nil {
				log.Error().Err(err).Str("session_id", sessionID).Msg("stripe webhook: error marking sale refunded")
				return
			}
		}

	default:
		log.Debug().Str("type", string(event.Type)).Msg("stripe webhook: unhandled event type")
	}

	w.WriteHeader(http.StatusOK)
}

// GetSaleBySessionID lets the checkout success page poll its sale.
func (h *StripeWebhookHandler) GetSaleBySessionID(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id required", http.StatusBadRequest)
		return
	}
	sale, err := h.checkout.GetSaleByStripeSessionID(sessionID)
	if err != nil {
		http.Error(w, "Sale not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sale)
}
