package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cabcab/pkg/apperrors"
	"cabcab/pkg/logger"
	"cabcab/pkg/models"
	"cabcab/pkg/token"
	"cabcab/storage"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, string, error)
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	Authenticate(ctx context.Context, tokenStr string) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *models.User, input ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, actor *models.User, oldPassword, newPassword string) error
	SetAvailability(ctx context.Context, actor *models.User, available bool) (*models.User, error)
}

type RegisterInput struct {
	Email         string          `validate:"required,email"`
	Password      string          `validate:"required,min=8"`
	FirstName     string          `validate:"required"`
	LastName      string          `validate:"required"`
	Phone         string          `validate:"required,min=7,max=20"`
	UserType      models.UserType `validate:"required,oneof=passenger driver admin"`
	LicenseNumber string          `validate:"required_if=UserType driver"`
}

// ProfileUpdate carries the only fields a user may change about
// themselves. Everything else (id, email, password, user_type, the
// driver flags) is protected.
type ProfileUpdate struct {
	FirstName     *string
	LastName      *string
	Phone         *string
	LicenseNumber *string
}

type authService struct {
	stg      storage.IStorage
	tokens   *token.Manager
	validate *validator.Validate
	log      logger.ILogger
}

func NewAuthService(stg storage.IStorage, tokens *token.Manager, log logger.ILogger) AuthService {
	return &authService{
		stg:      stg,
		tokens:   tokens,
		validate: validator.New(),
		log:      log,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.CodeValidation, "invalid registration input")
	}

	existing, err := s.stg.User().GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperrors.DuplicateEmail(input.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Password:  string(hash),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		UserType:  input.UserType,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.UserType == models.UserTypeDriver {
		user.LicenseNumber = input.LicenseNumber
		// Drivers start unverified and unavailable; an admin flips
		// is_verified, the driver flips is_available.
		user.IsVerified = false
		user.IsAvailable = false
	}

	created, err := s.stg.User().Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Generate(created.ID, created.UserType)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered",
		logger.String("email", created.Email),
		logger.String("user_type", string(created.UserType)))

	sanitized := created.Sanitized()
	return &sanitized, tok, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.stg.User().GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", apperrors.InvalidCredentials()
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", apperrors.InvalidCredentials()
	}

	// Only after the password checks out; the ban reason is not for
	// unauthenticated callers.
	if err := rejectBanned(user); err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Generate(user.ID, user.UserType)
	if err != nil {
		return nil, "", err
	}

	sanitized := user.Sanitized()
	return &sanitized, tok, nil
}

// Authenticate resolves a session token to its user. This backs both
// whoami and the actor lookup every other command performs first.
func (s *authService) Authenticate(ctx context.Context, tokenStr string) (*models.User, error) {
	claims, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := s.stg.User().GetByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			return nil, apperrors.NotAuthenticated("session user no longer exists")
		}
		return nil, err
	}

	if err := rejectBanned(user); err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *authService) UpdateProfile(ctx context.Context, actor *models.User, input ProfileUpdate) (*models.User, error) {
	if actor == nil {
		return nil, apperrors.NotAuthenticated("you are not signed in")
	}

	user, err := s.stg.User().GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.LicenseNumber != nil {
		if !user.IsDriver() {
			return nil, apperrors.Forbidden("only drivers have a license number")
		}
		user.LicenseNumber = *input.LicenseNumber
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.stg.User().Update(ctx, user)
	if err != nil {
		return nil, err
	}
	sanitized := updated.Sanitized()
	return &sanitized, nil
}

func (s *authService) ChangePassword(ctx context.Context, actor *models.User, oldPassword, newPassword string) error {
	if actor == nil {
		return apperrors.NotAuthenticated("you are not signed in")
	}
	if len(newPassword) < 8 {
		return apperrors.Validation("new password must be at least 8 characters")
	}

	user, err := s.stg.User().GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return apperrors.InvalidCredentials()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.UpdatedAt = time.Now().UTC()

	_, err = s.stg.User().Update(ctx, user)
	return err
}

func (s *authService) SetAvailability(ctx context.Context, actor *models.User, available bool) (*models.User, error) {
	if err := requireRole(actor, models.UserTypeDriver); err != nil {
		return nil, err
	}

	user, err := s.stg.User().GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	user.IsAvailable = available
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.stg.User().Update(ctx, user)
	if err != nil {
		return nil, err
	}
	sanitized := updated.Sanitized()
	return &sanitized, nil
}

func rejectBanned(user *models.User) error {
	if user.IsPassenger() && user.IsBanned {
		reason := user.BanReason
		if reason == "" {
			reason = "no reason provided"
		}
		kind := "temporarily"
		if user.IsPermanentBan {
			kind = "permanently"
		}
		return apperrors.Forbidden("your account has been %s banned, reason: %s", kind, reason)
	}
	return nil
}
