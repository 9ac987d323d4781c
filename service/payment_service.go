package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cabcab/pkg/apperrors"
	"cabcab/pkg/logger"
	"cabcab/pkg/models"
	"cabcab/storage"
)

// PaymentService manages tokenized payment methods. Nothing is ever
// charged; card and account checks are mock validation only.
type PaymentService interface {
	AddCard(ctx context.Context, actor *models.User, input CardInput) (*models.PaymentMethod, error)
	AddPaypal(ctx context.Context, actor *models.User, email string) (*models.PaymentMethod, error)
	List(ctx context.Context, actor *models.User) ([]*models.PaymentMethod, error)
	SetDefault(ctx context.Context, actor *models.User, methodID string) (*models.PaymentMethod, error)
	Remove(ctx context.Context, actor *models.User, methodID string) error
}

type CardInput struct {
	Number      string
	ExpiryMonth int
	ExpiryYear  int
	CVV         string
	Holder      string
}

type paymentService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewPaymentService(stg storage.IStorage, log logger.ILogger) PaymentService {
	return &paymentService{stg: stg, log: log}
}

func (s *paymentService) AddCard(ctx context.Context, actor *models.User, input CardInput) (*models.PaymentMethod, error) {
	if err := requireRole(actor, models.UserTypePassenger, models.UserTypeDriver); err != nil {
		return nil, err
	}

	number := strings.ReplaceAll(input.Number, " ", "")
	if err := validateCard(number, input.ExpiryMonth, input.ExpiryYear, input.CVV); err != nil {
		return nil, err
	}
	if input.Holder == "" {
		return nil, apperrors.Validation("cardholder name is required")
	}

	display := fmt.Sprintf("%s ending in %s", detectCardType(number), number[len(number)-4:])
	return s.save(ctx, actor, models.PaymentCreditCard, display)
}

func (s *paymentService) AddPaypal(ctx context.Context, actor *models.User, email string) (*models.PaymentMethod, error) {
	if err := requireRole(actor, models.UserTypePassenger, models.UserTypeDriver); err != nil {
		return nil, err
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return nil, apperrors.Validation("invalid PayPal account email")
	}
	return s.save(ctx, actor, models.PaymentPaypal, "PayPal ("+email+")")
}

func (s *paymentService) List(ctx context.Context, actor *models.User) ([]*models.PaymentMethod, error) {
	if actor == nil {
		return nil, apperrors.NotAuthenticated("you are not signed in")
	}
	return s.stg.Payment().GetByUser(ctx, actor.ID)
}

func (s *paymentService) SetDefault(ctx context.Context, actor *models.User, methodID string) (*models.PaymentMethod, error) {
	if actor == nil {
		return nil, apperrors.NotAuthenticated("you are not signed in")
	}

	target, err := s.ownedMethod(ctx, actor, methodID)
	if err != nil {
		return nil, err
	}

	methods, err := s.stg.Payment().GetByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if m.IsDefault && m.ID != methodID {
			m.IsDefault = false
			if _, err := s.stg.Payment().Update(ctx, m); err != nil {
				return nil, err
			}
		}
	}

	target.IsDefault = true
	return s.stg.Payment().Update(ctx, target)
}

// Remove deletes a payment method; removing the default promotes the
// oldest remaining one.
func (s *paymentService) Remove(ctx context.Context, actor *models.User, methodID string) error {
	if actor == nil {
		return apperrors.NotAuthenticated("you are not signed in")
	}

	target, err := s.ownedMethod(ctx, actor, methodID)
	if err != nil {
		return err
	}

	if err := s.stg.Payment().Delete(ctx, methodID); err != nil {
		return err
	}

	if target.IsDefault {
		remaining, err := s.stg.Payment().GetByUser(ctx, actor.ID)
		if err != nil || len(remaining) == 0 {
			return err
		}
		oldest := remaining[0]
		for _, m := range remaining {
			if m.CreatedAt.Before(oldest.CreatedAt) {
				oldest = m
			}
		}
		oldest.IsDefault = true
		_, err = s.stg.Payment().Update(ctx, oldest)
		return err
	}
	return nil
}

func (s *paymentService) save(ctx context.Context, actor *models.User, kind models.PaymentType, display string) (*models.PaymentMethod, error) {
	existing, err := s.stg.Payment().GetByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	method := &models.PaymentMethod{
		ID:          uuid.New().String(),
		UserID:      actor.ID,
		PaymentType: kind,
		Display:     display,
		Token:       "tok_" + uuid.New().String(),
		IsDefault:   len(existing) == 0,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.stg.Payment().Create(ctx, method)
	if err != nil {
		return nil, err
	}

	s.log.Info("payment method added",
		logger.String("user_id", actor.ID),
		logger.String("type", string(kind)))
	return created, nil
}

func (s *paymentService) ownedMethod(ctx context.Context, actor *models.User, methodID string) (*models.PaymentMethod, error) {
	method, err := s.stg.Payment().GetByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method.UserID != actor.ID {
		return nil, apperrors.Forbidden("you do not own this payment method")
	}
	return method, nil
}

func validateCard(number string, month, year int, cvv string) error {
	if len(number) < 13 || len(number) > 19 || !digitsOnly(number) {
		return apperrors.Validation("invalid card number")
	}
	if !luhnValid(number) {
		return apperrors.Validation("card number failed validation")
	}
	if month < 1 || month > 12 {
		return apperrors.Validation("invalid expiry month")
	}
	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return apperrors.Validation("card is expired")
	}
	if l := len(cvv); (l != 3 && l != 4) || !digitsOnly(cvv) {
		return apperrors.Validation("invalid CVV")
	}
	return nil
}

func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func digitsOnly(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func detectCardType(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "Visa"
	case strings.HasPrefix(number, "5"):
		return "Mastercard"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "American Express"
	case strings.HasPrefix(number, "6"):
		return "Discover"
	}
	return "Card"
}
