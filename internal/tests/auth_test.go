package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tastehaven/internal/domain"
	"tastehaven/internal/mocks"
	"tastehaven/internal/service"
)

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		mockSess  *domain.Session
		mockError error
		wantErr   bool
	}{
		{
			name:     "valid credentials",
			mockSess: &domain.Session{UserID: "u1", Email: "ana@tastehaven.com"},
		},
		{
			name:      "provider rejection",
			mockError: errors.New("Invalid login credentials"),
			wantErr:   true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			provider := new(mocks.IdentityProvider)
			provider.On("SignIn", mock.Anything, "ana@tastehaven.com", "secret").
				Return(testCase.mockSess, testCase.mockError).Once()

			auth := service.NewAuthService(provider)
			sess, err := auth.Login(context.Background(), "ana@tastehaven.com", "secret")

			if testCase.wantErr {
				assert.ErrorIs(t, err, service.ErrAuthentication)
				assert.Contains(t, err.Error(), "Invalid login credentials")
				assert.Nil(t, auth.CurrentSession())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testCase.mockSess, sess)
				assert.Equal(t, testCase.mockSess, auth.CurrentSession())
			}
			provider.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignupAttachesMetadata(t *testing.T) {
	provider := new(mocks.IdentityProvider)
	provider.On("SignUp", mock.Anything, "ana@tastehaven.com", "secret", "Taste Haven").
		Return(&domain.Session{UserID: "u1", Email: "ana@tastehaven.com", RestaurantName: "Taste Haven"}, nil).Once()

	auth := service.NewAuthService(provider)
	sess, err := auth.Signup(context.Background(), "ana@tastehaven.com", "secret", "Taste Haven")

	assert.NoError(t, err)
	assert.Equal(t, "Taste Haven", sess.RestaurantName)
	provider.AssertExpectations(t)
}

func TestAuthService_SessionChangeNotifications(t *testing.T) {
	provider := new(mocks.IdentityProvider)
	provider.On("SignIn", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Session{UserID: "u1"}, nil)
	provider.On("SignOut", mock.Anything).Return(nil)

	auth := service.NewAuthService(provider)

	var notified []*domain.Session
	unsubscribe := auth.OnSessionChange(func(sess *domain.Session) {
		notified = append(notified, sess)
	})

	auth.Login(context.Background(), "ana@tastehaven.com", "secret")
	assert.Len(t, notified, 1)
	assert.Equal(t, "u1", notified[0].UserID)

	// logout reports none
	assert.NoError(t, auth.Logout(context.Background()))
	assert.Len(t, notified, 2)
	assert.Nil(t, notified[1])
	assert.Nil(t, auth.CurrentSession())

	// disposer stops notifications and is safe to call twice
	unsubscribe()
	unsubscribe()
	auth.Login(context.Background(), "ana@tastehaven.com", "secret")
	assert.Len(t, notified, 2)
}

func TestAuthService_LogoutRejection(t *testing.T) {
	provider := new(mocks.IdentityProvider)
	provider.On("SignIn", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Session{UserID: "u1"}, nil).Once()
	provider.On("SignOut", mock.Anything).Return(errors.New("session expired")).Once()

	auth := service.NewAuthService(provider)
	auth.Login(context.Background(), "ana@tastehaven.com", "secret")

	err := auth.Logout(context.Background())
	assert.ErrorIs(t, err, service.ErrAuthentication)
	// local mirror unchanged on provider rejection
	assert.NotNil(t, auth.CurrentSession())
}

func TestAuthService_InitMirrorsProvider(t *testing.T) {
	provider := new(mocks.IdentityProvider)
	provider.On("CurrentUser", mock.Anything).
		Return(&domain.Session{UserID: "u1", Email: "ana@tastehaven.com"}, nil).Once()

	auth := service.NewAuthService(provider)
	auth.Init(context.Background())

	sess := auth.CurrentSession()
	if assert.NotNil(t, sess) {
		assert.Equal(t, "u1", sess.UserID)
	}
	provider.AssertExpectations(t)
}
