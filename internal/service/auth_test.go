package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"archira/internal/model"
	repoMocks "archira/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(mRepo *repoMocks.MockUserRepository)
		wantErr    error
		checkUser  func(t *testing.T, u *model.User)
	}{
		{
			name:     "happy path with derived defaults",
			email:    "ana@example.com",
			password: "s3cret",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByEmail", ctx, "ana@example.com").Return(nil, sql.ErrNoRows)
				mRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "ana@example.com" &&
						u.Name == "ana" &&
						u.Photo == model.DefaultUserPhoto &&
						u.PasswordHash != "s3cret" &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")) == nil
				})).Return(&model.User{
					ID:    "gen-id",
					Email: "ana@example.com",
					Name:  "ana",
					Photo: model.DefaultUserPhoto,
				}, nil)
			},
			checkUser: func(t *testing.T, u *model.User) {
				assert.Equal(t, "ana", u.Name)
				assert.NotEmpty(t, u.ID)
			},
		},
		{
			name:     "duplicate email is a rejection, nothing stored",
			email:    "ana@example.com",
			password: "s3cret",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByEmail", ctx, "ana@example.com").
					Return(&model.User{ID: "existing", Email: "ana@example.com"}, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name:       "empty email",
			email:      "",
			password:   "s3cret",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {},
			wantErr:    ErrEmailRequired,
		},
		{
			name:       "empty password",
			email:      "ana@example.com",
			password:   "",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {},
			wantErr:    ErrPasswordRequired,
		},
		{
			name:     "lookup failure propagates",
			email:    "ana@example.com",
			password: "s3cret",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByEmail", ctx, "ana@example.com").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockUserRepository)
			svc := NewAuthService(mRepo)

			tt.setupMocks(mRepo)

			user, err := svc.Register(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrEmailTaken) || errors.Is(tt.wantErr, ErrEmailRequired) || errors.Is(tt.wantErr, ErrPasswordRequired) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, user)
				mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				if tt.checkUser != nil {
					tt.checkUser(t, user)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}
	stored := &model.User{ID: "id-1", Email: "ana@example.com", PasswordHash: string(hash), Name: "ana"}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(mRepo *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:     "exact email and password match",
			email:    "ana@example.com",
			password: "s3cret",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByEmail", ctx, "ana@example.com").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "ana@example.com",
			password: "nope",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByEmail", ctx, "ana@example.com").Return(stored, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email yields the same error",
			email:    "ghost@example.com",
			password: "s3cret",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:       "empty input",
			email:      "",
			password:   "",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {},
			wantErr:    ErrInvalidCredentials,
		},
		{
			name:     "lookup failure propagates",
			email:    "ana@example.com",
			password: "s3cret",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByEmail", ctx, "ana@example.com").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockUserRepository)
			svc := NewAuthService(mRepo)

			tt.setupMocks(mRepo)

			user, err := svc.Authenticate(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrInvalidCredentials) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "id-1", user.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "ana", emailLocalPart("ana@example.com"))
	assert.Equal(t, "no-at-sign", emailLocalPart("no-at-sign"))
}
