package auth

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrChallengeExpired marks a verification attempt whose pending
// registration is gone from Redis.
var ErrChallengeExpired = errors.New("auth: registration challenge expired")

// Challenge is a pending registration awaiting OTP verification. The
// password is stored already hashed.
type Challenge struct {
	OTP          string `json:"otp"`
	CompanyID    int64  `json:"company_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
}

// OTPStore keeps registration challenges in Redis with a TTL, keyed by the
// registrant's email.
type OTPStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOTPStore(rdb *redis.Client, ttl time.Duration) *OTPStore {
	return &OTPStore{rdb: rdb, ttl: ttl}
}

func (s *OTPStore) key(email string) string {
	return "auth:otp:" + email
}

// Save stores the challenge, replacing any earlier one for the same email.
func (s *OTPStore) Save(ctx context.Context, ch Challenge) error {
	payload, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("auth: marshal challenge: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(ch.Email), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("auth: store challenge: %w", err)
	}
	return nil
}

// Get loads the pending challenge for an email, or ErrChallengeExpired.
func (s *OTPStore) Get(ctx context.Context, email string) (*Challenge, error) {
	payload, err := s.rdb.Get(ctx, s.key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrChallengeExpired
	}
	if err != nil {
		return nil, fmt.Errorf("auth: load challenge: %w", err)
	}
	var ch Challenge
	if err := json.Unmarshal(payload, &ch); err != nil {
		return nil, fmt.Errorf("auth: unmarshal challenge: %w", err)
	}
	return &ch, nil
}

// Delete removes a consumed challenge.
func (s *OTPStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, s.key(email)).Err()
}

// NewOTP returns a random 6-digit code between 100000 and 999999.
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("auth: random otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
