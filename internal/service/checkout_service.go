package service

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bellezza/internal/db"
	"bellezza/internal/entities"
	"bellezza/internal/repository"
)

// CheckoutService is the point-of-sale flow: a cart of products and services
// is totalled, stored with its line items, and paid either in cash at the
// counter or by card through Stripe Checkout.
type CheckoutService struct {
	SaleRepo      *repository.SaleRepository
	InventoryRepo *repository.InventoryRepository
	ServiceRepo   *repository.ServiceRepository
	SalonRepo     *repository.SalonRepository
	Stripe        *StripeService
	Sender        *SenderService
}

func NewCheckoutService(
	saleRepo *repository.SaleRepository,
	inventoryRepo *repository.InventoryRepository,
	serviceRepo *repository.ServiceRepository,
	salonRepo *repository.SalonRepository,
	stripeService *StripeService,
	sender *SenderService,
) *CheckoutService {
	return &CheckoutService{
		SaleRepo:      saleRepo,
		InventoryRepo: inventoryRepo,
		ServiceRepo:   serviceRepo,
		SalonRepo:     salonRepo,
		Stripe:        stripeService,
		Sender:        sender,
	}
}

func (s *CheckoutService) CreateSale(req *entities.SaleRequest) (*entities.SaleResponse, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("a sale needs at least one line")
	}
	if req.PaymentMethod != db.SalePaymentCash && req.PaymentMethod != db.SalePaymentCard {
		return nil, fmt.Errorf("unsupported payment method '%s'", req.PaymentMethod)
	}

	salon, err := s.SalonRepo.GetSalon()
	if err != nil {
		return nil, err
	}

	items, total, err := s.resolveLines(req.Lines)
	if err != nil {
		return nil, err
	}

	sale := &db.Sale{
		ID:            uuid.NewString(),
		SalonID:       salon.ID,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: db.SalePending,
		TotalCents:    total,
		CustomerEmail: req.CustomerEmail,
	}
	if req.AppointmentCode != "" {
		sale.AppointmentCode = sql.NullString{String: req.AppointmentCode, Valid: true}
	}

	resp := &entities.SaleResponse{SaleID: sale.ID, TotalCents: total}

	if req.PaymentMethod == db.SalePaymentCard {
		description := fmt.Sprintf("%s sale %s", salon.Name, sale.ID)
		checkoutURL, sessionID, err := s.Stripe.CreateCheckoutSession(int64(total), "eur", description, req.CustomerEmail)
		if err != nil {
			return nil, fmt.Errorf("error opening checkout session: %w", err)
		}
		sale.StripeSessionID = sessionID
		resp.CheckoutURL = checkoutURL
		resp.SessionID = sessionID
	} else {
		sale.PaymentStatus = db.SalePaid
	}

	if err := s.SaleRepo.CreateSale(sale, items, s.InventoryRepo); err != nil {
		log.Error().Err(err).Str("sale_id", sale.ID).Msg("error creating sale")
		return nil, err
	}
	resp.PaymentStatus = sale.PaymentStatus

	if sale.PaymentStatus == db.SalePaid {
		s.sendReceipt(sale, len(items))
	}
	return resp, nil
}

// MarkPaidBySessionID completes a card sale after the Stripe webhook reports
// the checkout session finished. Stripe retries webhooks, so a sale already
// past pending is left untouched and no second receipt goes out.
func (s *CheckoutService) MarkPaidBySessionID(sessionID string) error {
	sale, err := s.SaleRepo.GetSaleByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	if !paymentTransitionAllowed(sale.PaymentStatus, db.SalePaid) {
		log.Debug().Str("sale_id", sale.ID).Str("status", sale.PaymentStatus).Msg("sale already settled, ignoring duplicate webhook")
		return nil
	}
	if err := s.SaleRepo.UpdatePaymentStatusBySessionID(sessionID, db.SalePaid); err != nil {
		return err
	}
	sale.PaymentStatus = db.SalePaid
	_, items, err := s.SaleRepo.GetSale(sale.ID)
	if err != nil {
		return err
	}
	s.sendReceipt(sale, len(items))
	return nil
}

func (s *CheckoutService) MarkRefundedBySessionID(sessionID string) error {
	sale, err := s.SaleRepo.GetSaleByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	if !paymentTransitionAllowed(sale.PaymentStatus, db.SaleRefunded) {
		log.Debug().Str("sale_id", sale.ID).Str("status", sale.PaymentStatus).Msg("refund transition not applicable, ignoring duplicate webhook")
		return nil
	}
	return s.SaleRepo.UpdatePaymentStatusBySessionID(sessionID, db.SaleRefunded)
}

// paymentTransitionAllowed guards the webhook-driven status flow:
// pending -> paid -> refunded, each step once.
func paymentTransitionAllowed(current, next string) bool {
	switch next {
	case db.SalePaid:
		return current == db.SalePending
	case db.SaleRefunded:
		return current == db.SalePaid
	}
	return false
}

func (s *CheckoutService) GetSale(id string) (*db.Sale, []db.SaleItem, error) {
	return s.SaleRepo.GetSale(id)
}

func (s *CheckoutService) GetSaleByStripeSessionID(sessionID string) (*db.Sale, error) {
	return s.SaleRepo.GetSaleByStripeSessionID(sessionID)
}

func (s *CheckoutService) resolveLines(lines []entities.SaleLineRequest) ([]db.SaleItem, int, error) {
	var items []db.SaleItem
	total := 0
	for i, line := range lines {
		quantity := line.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		switch {
		case line.ProductID != nil:
			product, err := s.InventoryRepo.GetProduct(*line.ProductID)
			if err != nil {
				return nil, 0, err
			}
			if !product.Active {
				return nil, 0, fmt.Errorf("product '%s' is not for sale", product.Name)
			}
			items = append(items, db.SaleItem{
				Description:    product.Name,
				ProductID:      sql.NullInt64{Int64: int64(product.ID), Valid: true},
				Quantity:       quantity,
				UnitPriceCents: product.PriceCents,
			})
			total += product.PriceCents * quantity
		case line.ServiceID != nil:
			svc, err := s.ServiceRepo.GetService(*line.ServiceID)
			if err != nil {
				return nil, 0, err
			}
			items = append(items, db.SaleItem{
				Description:    svc.Name,
				ServiceID:      sql.NullInt64{Int64: int64(svc.ID), Valid: true},
				Quantity:       quantity,
				UnitPriceCents: svc.PriceCents,
			})
			total += svc.PriceCents * quantity
		default:
			return nil, 0, fmt.Errorf("sale line %d references neither a product nor a service", i)
		}
	}
	return items, total, nil
}

func (s *CheckoutService) sendReceipt(sale *db.Sale, lineCount int) {
	s.Sender.SendReceiptEmail(sale.CustomerEmail, entities.ReceiptEmailData{
		SaleID:         sale.ID,
		TotalFormatted: FormatCents(sale.TotalCents),
		LineCount:      lineCount,
	})
}
