package services

import (
	"FocusLock/models"
	"FocusLock/repositories"
	"FocusLock/repositories/mocks"
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeVerifier struct {
	uid string
	err error
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Token{UID: f.uid}, nil
}

func TestRegisterDevice(t *testing.T) {
	deviceRepo := new(mocks.DeviceRepository)
	service := NewAuthService(deviceRepo, nil, "test-secret", time.Hour)

	deviceRepo.On("FindByName", "pixel-8").Return(models.Device{}, repositories.ErrNotFound)
	deviceRepo.On("Save", mock.MatchedBy(func(d *models.Device) bool {
		return d.Name == "pixel-8" && bcrypt.CompareHashAndPassword([]byte(d.Secret), []byte("hunter22")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Device).ID = 42
	}).Return(nil)

	device, token, err := service.RegisterDevice("pixel-8", "hunter22", "UTC")
	require.NoError(t, err)
	assert.Equal(t, uint(42), device.ID)

	claims, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.DeviceID)
	assert.Equal(t, "pixel-8", claims.Subject)
}

func TestRegisterDeviceValidation(t *testing.T) {
	deviceRepo := new(mocks.DeviceRepository)
	service := NewAuthService(deviceRepo, nil, "test-secret", time.Hour)
	deviceRepo.On("FindByName", "taken").Return(models.Device{ID: 1, Name: "taken"}, nil)

	_, _, err := service.RegisterDevice("", "hunter22", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = service.RegisterDevice("pixel", "123", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = service.RegisterDevice("pixel", "hunter22", "Mars/Olympus")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = service.RegisterDevice("taken", "hunter22", "")
	assert.ErrorIs(t, err, ErrDeviceExists)
}

func TestLoginDevice(t *testing.T) {
	deviceRepo := new(mocks.DeviceRepository)
	service := NewAuthService(deviceRepo, nil, "test-secret", time.Hour)
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	deviceRepo.On("FindByName", "pixel").Return(models.Device{ID: 3, Name: "pixel", Secret: string(hashed)}, nil)
	deviceRepo.On("FindByName", "ghost").Return(models.Device{}, repositories.ErrNotFound)

	_, token, err := service.LoginDevice("pixel", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = service.LoginDevice("pixel", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = service.LoginDevice("ghost", "hunter22")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	issuer := NewAuthService(nil, nil, "other-secret", time.Hour)
	token, err := issuer.IssueToken(models.Device{ID: 1, Name: "pixel"})
	require.NoError(t, err)

	service := NewAuthService(nil, nil, "test-secret", time.Hour)
	_, err = service.ParseToken(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	service := NewAuthService(nil, nil, "test-secret", time.Hour)
	service.tokenTTL = -time.Minute
	token, err := service.IssueToken(models.Device{ID: 1})
	require.NoError(t, err)

	_, err = service.ParseToken(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateFirebase(t *testing.T) {
	t.Run("disabled without firebase", func(t *testing.T) {
		service := NewAuthService(new(mocks.DeviceRepository), nil, "test-secret", time.Hour)
		_, _, err := service.AuthenticateFirebase(context.Background(), "id-token", "pixel", "")
		assert.ErrorIs(t, err, ErrFirebaseDisabled)
	})

	t.Run("creates and links device", func(t *testing.T) {
		deviceRepo := new(mocks.DeviceRepository)
		service := NewAuthService(deviceRepo, fakeVerifier{uid: "firebase-uid"}, "test-secret", time.Hour)
		deviceRepo.On("FindByName", "pixel").Return(models.Device{}, repositories.ErrNotFound)
		deviceRepo.On("Save", mock.MatchedBy(func(d *models.Device) bool { return d.OwnerID == "firebase-uid" })).Return(nil)

		device, token, err := service.AuthenticateFirebase(context.Background(), "id-token", "pixel", "UTC")
		require.NoError(t, err)
		assert.Equal(t, "firebase-uid", device.OwnerID)

		claims, err := service.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "firebase-uid", claims.OwnerID)
	})

	t.Run("refuses device of another owner", func(t *testing.T) {
		deviceRepo := new(mocks.DeviceRepository)
		service := NewAuthService(deviceRepo, fakeVerifier{uid: "firebase-uid"}, "test-secret", time.Hour)
		deviceRepo.On("FindByName", "pixel").Return(models.Device{ID: 1, OwnerID: "someone-else"}, nil)

		_, _, err := service.AuthenticateFirebase(context.Background(), "id-token", "pixel", "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("invalid id token", func(t *testing.T) {
		service := NewAuthService(new(mocks.DeviceRepository), fakeVerifier{err: errors.New("token expired")}, "test-secret", time.Hour)
		_, _, err := service.AuthenticateFirebase(context.Background(), "id-token", "pixel", "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
