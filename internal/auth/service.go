package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadforge/leadforge/jobs"
	"github.com/leadforge/leadforge/internal/shared"
)

// TaskQueue enqueues background delivery tasks. Satisfied by *asynq.Client.
type TaskQueue interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// CompanyDirectory resolves the company a user belongs to, for display.
type CompanyDirectory interface {
	GetRef(ctx context.Context, id int64) (*CompanyRef, error)
}

// RegisterRequest is the input for the OTP registration flow.
type RegisterRequest struct {
	CompanyID    int64
	Email        string
	Password     string
	FirstName    string
	LastName     string
	MobileNumber string
}

// Service implements login, OTP registration, and account lookup.
type Service struct {
	repo      Repository
	otps      *OTPStore
	tokens    *TokenIssuer
	queue     TaskQueue
	companies CompanyDirectory
	logger    *slog.Logger
}

func NewService(repo Repository, otps *OTPStore, tokens *TokenIssuer, queue TaskQueue, companies CompanyDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		otps:      otps,
		tokens:    tokens,
		queue:     queue,
		companies: companies,
		logger:    logger,
	}
}

// Login checks credentials and returns an access token with the user.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil, shared.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, shared.ErrInvalidCredentials
	}
	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("update last_login failed", slog.Any("error", err), slog.Int64("user", user.ID))
	}
	token, err := s.tokens.Issue(*user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Register starts the OTP flow: reject duplicates, stash the pending
// registration in Redis, and queue the OTP text message. No user row exists
// until the code is verified.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	exists, err := s.repo.ExistsByEmailOrMobile(ctx, req.Email, req.MobileNumber)
	if err != nil {
		return err
	}
	if exists {
		return shared.Structural("A user with this email or mobile number already exists.")
	}

	otp, err := NewOTP()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	if err := s.otps.Save(ctx, Challenge{
		OTP:          otp,
		CompanyID:    req.CompanyID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
	}); err != nil {
		return err
	}

	task, err := jobs.NewOTPSMSTask(req.MobileNumber, otp)
	if err != nil {
		return err
	}
	if _, err := s.queue.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("auth: enqueue otp sms: %w", err)
	}
	return nil
}

// VerifyOTP completes registration: the code must match the pending
// challenge, then the account is created and a welcome email queued.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) (string, *User, error) {
	ch, err := s.otps.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrChallengeExpired) {
			return "", nil, shared.Structural("Session expired. Please register again.")
		}
		return "", nil, err
	}
	if otp != ch.OTP {
		return "", nil, shared.Structural("Invalid OTP.")
	}

	user, err := s.repo.Create(ctx, User{
		CompanyID:    ch.CompanyID,
		FirstName:    ch.FirstName,
		LastName:     ch.LastName,
		Email:        ch.Email,
		MobileNumber: ch.MobileNumber,
		PasswordHash: ch.PasswordHash,
		IsActive:     true,
	})
	if err != nil {
		return "", nil, err
	}
	if err := s.otps.Delete(ctx, email); err != nil {
		s.logger.Warn("delete otp challenge failed", slog.Any("error", err))
	}

	if task, err := jobs.NewWelcomeEmailTask(user.Email, user.FirstName, user.LastName); err != nil {
		s.logger.Warn("build welcome email task failed", slog.Any("error", err))
	} else if _, err := s.queue.EnqueueContext(ctx, task); err != nil {
		s.logger.Warn("enqueue welcome email failed", slog.Any("error", err))
	}

	token, err := s.tokens.Issue(*user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Me returns the authenticated user with its company reference.
func (s *Service) Me(ctx context.Context, actor shared.Actor) (*User, *CompanyRef, error) {
	if !actor.Authenticated() {
		return nil, nil, shared.ErrUnauthenticated
	}
	user, err := s.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, nil, err
	}
	ref := s.companyRef(ctx, user.CompanyID)
	return user, ref, nil
}

// CompanyRefFor exposes the company lookup to handlers rendering user views.
func (s *Service) CompanyRefFor(ctx context.Context, user User) *CompanyRef {
	return s.companyRef(ctx, user.CompanyID)
}

func (s *Service) companyRef(ctx context.Context, companyID int64) *CompanyRef {
	if s.companies == nil || companyID == 0 {
		return nil
	}
	ref, err := s.companies.GetRef(ctx, companyID)
	if err != nil {
		s.logger.Warn("resolve company failed", slog.Any("error", err), slog.Int64("company", companyID))
		return nil
	}
	return ref
}
