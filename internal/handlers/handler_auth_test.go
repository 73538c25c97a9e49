package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/julianojcs/ibs/internal/apperrors"
	"github.com/julianojcs/ibs/internal/core/domain"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockAuthService) CheckCredentials(ctx context.Context, email, password string) (portssvc.CredentialStatus, *domain.User, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(1) != nil {
		user = args.Get(1).(*domain.User)
	}
	return args.Get(0).(portssvc.CredentialStatus), user, args.Error(2)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *MockAuthService) CompleteProfile(ctx context.Context, req dto.CompleteProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Mint(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockSessionService) Refresh(ctx context.Context, claims *domain.SessionClaims, update dto.UpdateUserRequest) (string, time.Time, error) {
	args := m.Called(ctx, claims, update)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockSessionService) Rehydrate(ctx context.Context, token string) (*domain.SessionClaims, error) {
	args := m.Called(ctx, token)
	var claims *domain.SessionClaims
	if args.Get(0) != nil {
		claims = args.Get(0).(*domain.SessionClaims)
	}
	return claims, args.Error(1)
}

type MockAuthProvider struct {
	mock.Mock
}

func (m *MockAuthProvider) Authenticate(ctx context.Context, req portssvc.AuthRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

type AuthHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockAuth    *MockAuthService
	mockSession *MockSessionService
	mockCreds   *MockAuthProvider
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	RegisterCustomValidators()

	suite.mockAuth = new(MockAuthService)
	suite.mockSession = new(MockSessionService)
	suite.mockCreds = new(MockAuthProvider)

	svc := &portssvc.ServiceContainer{
		Auth:                suite.mockAuth,
		Session:             suite.mockSession,
		CredentialsProvider: suite.mockCreds,
	}

	suite.router = gin.New()
	registerAuthRoutes(suite.router.Group("/api/auth"), svc)
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func activeUser() *domain.User {
	return &domain.User{
		UserID:        "u1",
		Email:         "jane@example.com",
		Name:          "Jane Doe",
		Role:          domain.RoleStudent,
		EmailVerified: true,
		IsActive:      true,
	}
}

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	suite.mockAuth.On("Register", mock.Anything, mock.MatchedBy(func(r dto.RegisterRequest) bool {
		return r.Email == "jane@example.com"
	})).Return(activeUser(), nil).Once()

	w := suite.postJSON("/api/auth/register", gin.H{
		"name": "Jane Doe", "email": "jane@example.com",
		"password": "Sup3rSecret", "confirmPassword": "Sup3rSecret",
		"courseName": "IBS London 2024", "city": "London", "country": "UK",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RegisterResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("u1", resp.UserID)
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	suite.mockAuth.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.postJSON("/api/auth/register", gin.H{
		"name": "Jane Doe", "email": "jane@example.com",
		"password": "Sup3rSecret", "confirmPassword": "Sup3rSecret",
		"courseName": "IBS London 2024", "city": "London", "country": "UK",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), apperrors.CodeEmailExists)
}

func (suite *AuthHandlerTestSuite) TestRegister_WeakPasswordRejectedBeforeService() {
	w := suite.postJSON("/api/auth/register", gin.H{
		"name": "Jane Doe", "email": "jane@example.com",
		"password": "short", "confirmPassword": "short",
		"courseName": "IBS London 2024", "city": "London", "country": "UK",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogin_MintsSession() {
	user := activeUser()
	expires := time.Now().Add(720 * time.Hour).UTC().Truncate(time.Second)
	suite.mockCreds.On("Authenticate", mock.Anything, portssvc.AuthRequest{
		Email: "jane@example.com", Password: "Sup3rSecret",
	}).Return(user, nil).Once()
	suite.mockSession.On("Mint", mock.Anything, user).Return("signed-token", expires, nil).Once()

	w := suite.postJSON("/api/auth/login", gin.H{"email": "jane@example.com", "password": "Sup3rSecret"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.Token)
	suite.Equal("jane@example.com", resp.User.Email)
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockCreds.On("Authenticate", mock.Anything, mock.Anything).Return(nil, &apperrors.AppError{
		Code:    http.StatusUnauthorized,
		AppCode: apperrors.CodeInvalidCredentials,
		Message: "Invalid email or password",
		Err:     apperrors.ErrUnauthorized,
	}).Once()

	w := suite.postJSON("/api/auth/login", gin.H{"email": "jane@example.com", "password": "wrong-One1"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), apperrors.CodeInvalidCredentials)
	suite.mockSession.AssertNotCalled(suite.T(), "Mint", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestVerifyEmail_InvalidToken() {
	suite.mockAuth.On("VerifyEmail", mock.Anything, "stale").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.postJSON("/api/auth/verify-email", gin.H{"token": "stale"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), apperrors.CodeTokenInvalidOrExpired)
}

func (suite *AuthHandlerTestSuite) TestForgotPassword_GenericResponseForUnknownEmail() {
	suite.mockAuth.On("ForgotPassword", mock.Anything, "ghost@example.com").Return(nil).Once()

	w := suite.postJSON("/api/auth/forgot-password", gin.H{"email": "ghost@example.com"})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "If an account exists")
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
