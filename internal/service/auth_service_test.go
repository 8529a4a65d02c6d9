package service

import (
	"context"
	"os"
	"testing"

	"otakupal-be/internal/dto"
	"otakupal-be/internal/repository/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newAuthHarness() (IAuthService, *fakeStore, *memory.ConversationRepository) {
	store := &fakeStore{}
	convStore := memory.NewConversationRepository()
	return NewAuthService(&fakeFactory{store: store}, convStore), store, convStore
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	svc, store, _ := newAuthHarness()

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "kenji",
		Email:    "kenji@example.com",
		Password: "supersecret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "kenji", res.Username)
	assert.Equal(t, "kenji@example.com", res.Email)
	assert.NotEqual(t, uuid.Nil, res.Id)

	assert.Len(t, store.users, 1)
	stored := store.users[0]
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))
}

func TestRegister_DuplicateUsernameRejected(t *testing.T) {
	svc, _, _ := newAuthHarness()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "kenji", Email: "kenji@example.com", Password: "supersecret",
	})
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "kenji", Email: "other@example.com", Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	svc, _, _ := newAuthHarness()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "kenji", Email: "kenji@example.com", Password: "supersecret",
	})
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "other", Email: "kenji@example.com", Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_ByUsernameAndByEmail(t *testing.T) {
	os.Setenv("JWT_SECRET", "test_secret")
	defer os.Unsetenv("JWT_SECRET")

	svc, _, _ := newAuthHarness()
	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "kenji", Email: "kenji@example.com", Password: "supersecret",
	})
	assert.NoError(t, err)

	for _, identifier := range []string{"kenji", "kenji@example.com"} {
		res, err := svc.Login(context.Background(), &dto.LoginRequest{
			UsernameOrEmail: identifier,
			Password:        "supersecret",
		})
		assert.NoError(t, err)
		assert.Equal(t, "kenji", res.Username)
		assert.Equal(t, reg.Id, res.UserId)

		token, err := jwt.Parse(res.Token, func(*jwt.Token) (interface{}, error) {
			return []byte("test_secret"), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, reg.Id.String(), claims["user_id"])
		assert.Equal(t, "kenji", claims["username"])
	}
}

func TestLogin_WrongPasswordRejected(t *testing.T) {
	svc, _, _ := newAuthHarness()
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "kenji", Email: "kenji@example.com", Password: "supersecret",
	})
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		UsernameOrEmail: "kenji",
		Password:        "wrongpassword",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserRejected(t *testing.T) {
	svc, _, _ := newAuthHarness()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		UsernameOrEmail: "nobody",
		Password:        "supersecret",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_ClearsActiveConversationPointer(t *testing.T) {
	svc, _, convStore := newAuthHarness()
	userId := uuid.New()
	convStore.Set(context.Background(), userId, uuid.New())

	svc.Logout(context.Background(), userId)

	_, ok := convStore.Get(context.Background(), userId)
	assert.False(t, ok)
}
