package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen  = 8
	confirmTokenTTL = 24 * time.Hour
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	DB         TxStarter
	Customers  *repository.CustomerRepository
	Spending   *repository.TotalSpendingRepository
	Tokens     *repository.ConfirmationTokenRepository
	Notifier   Notifier
	Log        *zap.Logger
	ConfirmURL string // base URL the confirmation token is appended to
}

func NewAuthService(db TxStarter, cr *repository.CustomerRepository, sp *repository.TotalSpendingRepository, tr *repository.ConfirmationTokenRepository, n Notifier, log *zap.Logger, confirmURL string) *AuthService {
	return &AuthService{
		DB:         db,
		Customers:  cr,
		Spending:   sp,
		Tokens:     tr,
		Notifier:   n,
		Log:        log,
		ConfirmURL: confirmURL,
	}
}

type RegisterCommand struct {
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CustomerType string `json:"customertype"`
}

func (s *AuthService) validate(cmd RegisterCommand) error {
	if cmd.FirstName == "" || cmd.LastName == "" {
		return errors.New("first and last name are required")
	}
	if !emailRegex.MatchString(cmd.Email) {
		return errors.New("invalid email format")
	}
	if len(cmd.Password) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
	}
	if !model.ValidCustomerType(cmd.CustomerType) {
		return fmt.Errorf("unknown customer type %q", cmd.CustomerType)
	}
	return nil
}

// Register creates the customer, their spending accumulator and a
// confirmation token in one transaction, then mails the confirmation
// link. The token is returned so callers can surface it in dev setups.
func (s *AuthService) Register(ctx context.Context, cmd RegisterCommand) (string, error) {
	if err := s.validate(cmd); err != nil {
		return "", err
	}
	exists, err := s.Customers.EmailExists(ctx, cmd.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", errors.New("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	customerID, err := s.Customers.CreateTx(ctx, tx, &model.Customer{
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		Email:        cmd.Email,
		PasswordHash: string(hash),
		Roles:        []string{model.RoleBasic},
		CustomerType: cmd.CustomerType,
	})
	if err != nil {
		return "", err
	}
	if err := s.Spending.CreateTx(ctx, tx, customerID); err != nil {
		return "", err
	}
	if err := s.Tokens.CreateTx(ctx, tx, customerID, token, time.Now().Add(confirmTokenTTL)); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}

	if err := s.Notifier.SendConfirmation(ctx, cmd.Email, s.ConfirmURL+token); err != nil {
		s.Log.Warn("confirmation email failed", zap.String("email", cmd.Email), zap.Error(err))
	}
	return token, nil
}

// Confirm activates the account behind a registration token.
func (s *AuthService) Confirm(ctx context.Context, token string) error {
	t, err := s.Tokens.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if t.ConfirmedAt != nil {
		return errors.New("token already confirmed")
	}
	if time.Now().After(t.ExpiresAt) {
		return errors.New("token expired")
	}
	if err := s.Customers.Confirm(ctx, t.CustomerID); err != nil {
		return err
	}
	return s.Tokens.MarkConfirmed(ctx, t.ID)
}

// Login verifies credentials and returns the customer for the endpoint
// to mint a token from.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Customer, error) {
	c, err := s.Customers.GetByEmail(ctx, email)
	if err != nil {
		// do not reveal whether email exists
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !c.Confirmed {
		return nil, errors.New("email not confirmed")
	}
	if !c.Active {
		return nil, errors.New("account is deactivated")
	}
	c.PasswordHash = ""
	return c, nil
}

// CleanupExpiredTokens removes unconfirmed registrations' expired
// tokens; invoked by an external scheduler.
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.Tokens.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.Log.Info("expired confirmation tokens removed", zap.Int64("count", n))
	}
	return n, nil
}
