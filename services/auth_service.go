package services

import (
	"FocusLock/models"
	"FocusLock/repositories"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 30 * 24 * time.Hour

type Claims struct {
	DeviceID uint   `json:"device_id"`
	OwnerID  string `json:"owner_id,omitempty"`
	jwt.StandardClaims
}

// TokenVerifier checks Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthService struct {
	DeviceRepo   repositories.DeviceRepository
	FirebaseAuth TokenVerifier
	jwtKey       []byte
	tokenTTL     time.Duration
}

func NewAuthService(deviceRepo repositories.DeviceRepository, firebaseAuth TokenVerifier, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{DeviceRepo: deviceRepo, FirebaseAuth: firebaseAuth, jwtKey: []byte(jwtSecret), tokenTTL: tokenTTL}
}

// RegisterDevice pairs a new device protected by a secret and returns its token.
func (s *AuthService) RegisterDevice(name, secret, timeZone string) (models.Device, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(secret) < 6 {
		return models.Device{}, "", fmt.Errorf("%w: name is required and secret must be at least 6 characters", ErrInvalidInput)
	}
	if timeZone != "" {
		if _, err := time.LoadLocation(timeZone); err != nil {
			return models.Device{}, "", fmt.Errorf("%w: unknown time zone %q", ErrInvalidInput, timeZone)
		}
	}
	if _, err := s.DeviceRepo.FindByName(name); err == nil {
		return models.Device{}, "", ErrDeviceExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return models.Device{}, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return models.Device{}, "", err
	}
	device := models.Device{Name: name, Secret: string(hashed), TimeZone: timeZone}
	if err := s.DeviceRepo.Save(&device); err != nil {
		return models.Device{}, "", err
	}

	token, err := s.IssueToken(device)
	if err != nil {
		return models.Device{}, "", err
	}
	return device, token, nil
}

func (s *AuthService) LoginDevice(name, secret string) (models.Device, string, error) {
	device, err := s.DeviceRepo.FindByName(name)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Device{}, "", ErrUnauthorized
	}
	if err != nil {
		return models.Device{}, "", err
	}
	if device.Secret == "" {
		return models.Device{}, "", ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(device.Secret), []byte(secret)); err != nil {
		return models.Device{}, "", ErrUnauthorized
	}

	token, err := s.IssueToken(device)
	if err != nil {
		return models.Device{}, "", err
	}
	return device, token, nil
}

// AuthenticateFirebase exchanges a Firebase ID token for a device token. The
// device is created on first use and linked to the Firebase user, whose uid
// is also the Supabase user id used for sync.
func (s *AuthService) AuthenticateFirebase(ctx context.Context, idToken, deviceName, timeZone string) (models.Device, string, error) {
	if s.FirebaseAuth == nil {
		return models.Device{}, "", ErrFirebaseDisabled
	}
	deviceName = strings.TrimSpace(deviceName)
	if idToken == "" || deviceName == "" {
		return models.Device{}, "", fmt.Errorf("%w: id_token and device_name are required", ErrInvalidInput)
	}

	verified, err := s.FirebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return models.Device{}, "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	device, err := s.DeviceRepo.FindByName(deviceName)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		device = models.Device{Name: deviceName, OwnerID: verified.UID, TimeZone: timeZone}
	case err != nil:
		return models.Device{}, "", err
	case device.OwnerID != "" && device.OwnerID != verified.UID:
		return models.Device{}, "", ErrUnauthorized
	default:
		device.OwnerID = verified.UID
		if timeZone != "" {
			device.TimeZone = timeZone
		}
	}
	if err := s.DeviceRepo.Save(&device); err != nil {
		return models.Device{}, "", err
	}

	token, err := s.IssueToken(device)
	if err != nil {
		return models.Device{}, "", err
	}
	return device, token, nil
}

func (s *AuthService) IssueToken(device models.Device) (string, error) {
	claims := &Claims{
		DeviceID: device.ID,
		OwnerID:  device.OwnerID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
			Subject:   device.Name,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// UpdatePushToken stores the FCM registration token of the device.
func (s *AuthService) UpdatePushToken(deviceID uint, fcmToken string) error {
	device, err := s.DeviceRepo.FindByID(deviceID)
	if err != nil {
		return err
	}
	device.FCMToken = fcmToken
	return s.DeviceRepo.Save(&device)
}
