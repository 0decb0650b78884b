package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadforge/leadforge/internal/shared"
	"github.com/leadforge/leadforge/jobs"
)

type memoryUserRepo struct {
	users  map[int64]User
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[int64]User)}
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryUserRepo) ExistsByEmailOrMobile(ctx context.Context, email, mobile string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email || user.MobileNumber == mobile {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepo) Create(ctx context.Context, user User) (*User, error) {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return &user, nil
}

func (r *memoryUserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	user, ok := r.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	user.LastLogin = time.Now().UTC()
	r.users[id] = user
	return nil
}

func (r *memoryUserRepo) ListByCompany(ctx context.Context, companyID int64) ([]User, error) {
	var users []User
	for _, user := range r.users {
		if user.CompanyID == companyID {
			users = append(users, user)
		}
	}
	return users, nil
}

type recordingQueue struct {
	tasks []*asynq.Task
}

func (q *recordingQueue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newAuthService(t *testing.T) (*Service, *memoryUserRepo, *OTPStore, *recordingQueue) {
	t.Helper()
	repo := newMemoryUserRepo()
	otps, _ := newTestOTPStore(t, time.Minute)
	queue := &recordingQueue{}
	svc := NewService(repo, otps, NewTokenIssuer("test-secret", time.Hour), queue, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo, otps, queue
}

func seedUser(t *testing.T, repo *memoryUserRepo, email, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := repo.Create(context.Background(), User{
		CompanyID:    1,
		Email:        email,
		PasswordHash: string(hash),
		MobileNumber: "9876543210",
		IsActive:     true,
	})
	require.NoError(t, err)
	return user
}

func TestLoginSuccess(t *testing.T) {
	svc, repo, _, _ := newAuthService(t)
	seeded := seedUser(t, repo, "agent@acme.test", "hunter2")

	token, user, err := svc.Login(context.Background(), "agent@acme.test", "hunter2")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)
	require.False(t, repo.users[seeded.ID].LastLogin.IsZero())

	actor, err := NewTokenIssuer("test-secret", time.Hour).Verify(token)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, actor.UserID)
	require.Equal(t, int64(1), actor.CompanyID)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, repo, _, _ := newAuthService(t)
	seedUser(t, repo, "agent@acme.test", "hunter2")

	_, _, err := svc.Login(context.Background(), "agent@acme.test", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@acme.test", "hunter2")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestRegisterStoresChallengeAndQueuesSMS(t *testing.T) {
	svc, _, otps, queue := newAuthService(t)

	err := svc.Register(context.Background(), RegisterRequest{
		CompanyID:    1,
		Email:        "new@acme.test",
		Password:     "hunter2",
		FirstName:    "Ada",
		MobileNumber: "9876543210",
	})
	require.NoError(t, err)

	ch, err := otps.Get(context.Background(), "new@acme.test")
	require.NoError(t, err)
	require.Len(t, ch.OTP, 6)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(ch.PasswordHash), []byte("hunter2")))

	require.Len(t, queue.tasks, 1)
	require.Equal(t, jobs.TaskTypeSendOTPSMS, queue.tasks[0].Type())
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, repo, _, queue := newAuthService(t)
	seedUser(t, repo, "agent@acme.test", "hunter2")

	err := svc.Register(context.Background(), RegisterRequest{
		CompanyID:    1,
		Email:        "agent@acme.test",
		Password:     "hunter2",
		FirstName:    "Ada",
		MobileNumber: "1112223334",
	})
	require.ErrorIs(t, err, shared.ErrStructural)
	require.Empty(t, queue.tasks)
}

func TestVerifyOTPCreatesUser(t *testing.T) {
	svc, repo, otps, queue := newAuthService(t)
	require.NoError(t, svc.Register(context.Background(), RegisterRequest{
		CompanyID:    1,
		Email:        "new@acme.test",
		Password:     "hunter2",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		MobileNumber: "9876543210",
	}))
	ch, err := otps.Get(context.Background(), "new@acme.test")
	require.NoError(t, err)

	token, user, err := svc.VerifyOTP(context.Background(), "new@acme.test", ch.OTP)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, user.IsActive)
	require.Equal(t, "Ada", user.FirstName)
	require.Len(t, repo.users, 1)

	// Challenge is consumed.
	_, err = otps.Get(context.Background(), "new@acme.test")
	require.ErrorIs(t, err, ErrChallengeExpired)

	// OTP SMS followed by welcome email.
	require.Len(t, queue.tasks, 2)
	require.Equal(t, jobs.TaskTypeSendEmail, queue.tasks[1].Type())
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc, repo, _, _ := newAuthService(t)
	require.NoError(t, svc.Register(context.Background(), RegisterRequest{
		CompanyID:    1,
		Email:        "new@acme.test",
		Password:     "hunter2",
		FirstName:    "Ada",
		MobileNumber: "9876543210",
	}))

	_, _, err := svc.VerifyOTP(context.Background(), "new@acme.test", "000000")
	require.ErrorIs(t, err, shared.ErrStructural)
	require.EqualError(t, err, "Invalid OTP.")
	require.Empty(t, repo.users)
}

func TestVerifyOTPExpiredChallenge(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	_, _, err := svc.VerifyOTP(context.Background(), "gone@acme.test", "123456")
	require.ErrorIs(t, err, shared.ErrStructural)
	require.EqualError(t, err, "Session expired. Please register again.")
}

func TestMe(t *testing.T) {
	svc, repo, _, _ := newAuthService(t)
	seeded := seedUser(t, repo, "agent@acme.test", "hunter2")

	user, _, err := svc.Me(context.Background(), shared.Actor{UserID: seeded.ID, CompanyID: 1})
	require.NoError(t, err)
	require.Equal(t, "agent@acme.test", user.Email)

	_, _, err = svc.Me(context.Background(), shared.Actor{})
	require.ErrorIs(t, err, shared.ErrUnauthenticated)
}
