package services_test

import (
	"context"
	"io"
	"time"

	"github.com/julianojcs/ibs/internal/core/domain"
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, filter portsrepo.ListUsersFilter) ([]domain.User, int64, error) {
	args := m.Called(ctx, filter)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, userID string, avatarURL string) error {
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetVerificationToken(ctx context.Context, userID string, token string, expires time.Time) error {
	args := m.Called(ctx, userID, token, expires)
	return args.Error(0)
}

func (m *MockUserRepository) ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID string, token string, expires time.Time) error {
	args := m.Called(ctx, userID, token, expires)
	return args.Error(0)
}

func (m *MockUserRepository) ConsumeResetToken(ctx context.Context, token string, newPasswordHash string) (*domain.User, error) {
	args := m.Called(ctx, token, newPasswordHash)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) LinkGoogleAccount(ctx context.Context, userID string, googleID string) error {
	args := m.Called(ctx, userID, googleID)
	return args.Error(0)
}

// --- Mock PhotoRepository ---

type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) CreatePhoto(ctx context.Context, photo domain.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepository) FindPhotoByID(ctx context.Context, photoID string) (*domain.Photo, error) {
	args := m.Called(ctx, photoID)
	var photo *domain.Photo
	if args.Get(0) != nil {
		photo = args.Get(0).(*domain.Photo)
	}
	return photo, args.Error(1)
}

func (m *MockPhotoRepository) FindPhotos(ctx context.Context, filter portsrepo.ListPhotosFilter) ([]domain.Photo, int64, error) {
	args := m.Called(ctx, filter)
	var photos []domain.Photo
	if args.Get(0) != nil {
		photos = args.Get(0).([]domain.Photo)
	}
	return photos, args.Get(1).(int64), args.Error(2)
}

func (m *MockPhotoRepository) AddLike(ctx context.Context, photoID string, userID string) error {
	args := m.Called(ctx, photoID, userID)
	return args.Error(0)
}

func (m *MockPhotoRepository) RemoveLike(ctx context.Context, photoID string, userID string) error {
	args := m.Called(ctx, photoID, userID)
	return args.Error(0)
}

func (m *MockPhotoRepository) ReplaceTags(ctx context.Context, photoID string, userIDs []string) error {
	args := m.Called(ctx, photoID, userIDs)
	return args.Error(0)
}

func (m *MockPhotoRepository) DeletePhoto(ctx context.Context, photoID string) error {
	args := m.Called(ctx, photoID)
	return args.Error(0)
}

// --- Mock MailerSvc ---

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationEmail(ctx context.Context, to string, token string) error {
	args := m.Called(ctx, to, token)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordResetEmail(ctx context.Context, to string, token string) error {
	args := m.Called(ctx, to, token)
	return args.Error(0)
}

// --- Mock ImageStorageSvc ---

type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) UploadGalleryImage(ctx context.Context, file io.Reader) (*portssvc.UploadResult, error) {
	args := m.Called(ctx, file)
	var result *portssvc.UploadResult
	if args.Get(0) != nil {
		result = args.Get(0).(*portssvc.UploadResult)
	}
	return result, args.Error(1)
}

func (m *MockImageStorage) UploadAvatar(ctx context.Context, file io.Reader, userID string) (*portssvc.UploadResult, error) {
	args := m.Called(ctx, file, userID)
	var result *portssvc.UploadResult
	if args.Get(0) != nil {
		result = args.Get(0).(*portssvc.UploadResult)
	}
	return result, args.Error(1)
}

func (m *MockImageStorage) DeleteImage(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}
