package userservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/haguru/shashin/internal/apperrors"
	"github.com/haguru/shashin/internal/interfaces/mocks"
	"github.com/haguru/shashin/internal/models"
	"github.com/haguru/shashin/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, hashPasswords bool) (*UserService, *mocks.MockUserRepository, *mocks.MockFileStore) {
	t.Helper()
	repo := mocks.NewMockUserRepository(t)
	store := mocks.NewMockFileStore(t)
	return NewUserService(repo, store, zerolog.NewNopLogger(), hashPasswords), repo, store
}

func storedUser(username, password string) *models.User {
	return &models.User{
		ID:         "1",
		Username:   username,
		Password:   password,
		Question:   "first pet?",
		Answer:     "rex",
		ProfilePic: models.PlaceholderProfilePic(username),
	}
}

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		setup    func(repo *mocks.MockUserRepository)
		wantKind error
	}{
		{
			name:     "creates user with placeholder picture",
			username: "alice",
			password: "pw",
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").Return(nil, nil)
				repo.On("AddUser", mock.Anything, models.User{
					Username:   "alice",
					Password:   "pw",
					Question:   "q",
					Answer:     "a",
					ProfilePic: "https://placehold.co/192x192/EFEFEF/3A3A3A?text=a",
				}).Return("id-1", nil)
			},
		},
		{
			name:     "duplicate username",
			username: "alice",
			password: "pw",
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser("alice", "old"), nil)
			},
			wantKind: apperrors.ErrConflict,
		},
		{
			name:     "unique index race is still a conflict",
			username: "alice",
			password: "pw",
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").Return(nil, nil)
				repo.On("AddUser", mock.Anything, mock.Anything).Return("", apperrors.ErrConflict)
			},
			wantKind: apperrors.ErrConflict,
		},
		{
			name:     "missing password",
			username: "alice",
			setup:    func(repo *mocks.MockUserRepository) {},
			wantKind: apperrors.ErrBadRequest,
		},
		{
			name:     "missing username",
			password: "pw",
			setup:    func(repo *mocks.MockUserRepository) {},
			wantKind: apperrors.ErrBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t, false)
			tt.setup(repo)

			err := svc.RegisterUser(context.Background(), tt.username, tt.password, "q", "a")
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegisterUser_StoreFailureIsServerError(t *testing.T) {
	svc, repo, _ := newTestService(t, false)
	repo.On("GetUserByUsername", mock.Anything, "alice").Return(nil, errors.New("connection reset"))

	err := svc.RegisterUser(context.Background(), "alice", "pw", "", "")
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.HTTPStatus(err))
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	svc, repo, _ := newTestService(t, true)

	var saved models.User
	repo.On("GetUserByUsername", mock.Anything, "alice").Return(nil, nil)
	repo.On("AddUser", mock.Anything, mock.AnythingOfType("models.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(models.User) }).
		Return("id-1", nil)

	require.NoError(t, svc.RegisterUser(context.Background(), "alice", "secret", "", ""))
	assert.NotEqual(t, "secret", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("secret")))
}

func TestAuthenticateUser(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name          string
		hashPasswords bool
		stored        *models.User
		password      string
		wantUser      *models.SanitizedUser
		wantKind      error
		wantQuestion  string
	}{
		{
			name:     "plaintext success",
			stored:   storedUser("alice", "pw"),
			password: "pw",
			wantUser: &models.SanitizedUser{Username: "alice", ProfilePic: models.PlaceholderProfilePic("alice")},
		},
		{
			name:          "bcrypt success",
			hashPasswords: true,
			stored:        storedUser("alice", string(hashed)),
			password:      "pw",
			wantUser:      &models.SanitizedUser{Username: "alice", ProfilePic: models.PlaceholderProfilePic("alice")},
		},
		{
			name:     "unknown user",
			stored:   nil,
			password: "pw",
			wantKind: apperrors.ErrUnauthorized,
		},
		{
			name:         "wrong password needs recovery",
			stored:       storedUser("alice", "pw"),
			password:     "nope",
			wantKind:     apperrors.ErrUnauthorized,
			wantQuestion: "first pet?",
		},
		{
			name:          "bcrypt wrong password needs recovery",
			hashPasswords: true,
			stored:        storedUser("alice", string(hashed)),
			password:      "nope",
			wantKind:      apperrors.ErrUnauthorized,
			wantQuestion:  "first pet?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t, tt.hashPasswords)
			if tt.stored != nil {
				repo.On("GetUserByUsername", mock.Anything, "alice").Return(tt.stored, nil)
			} else {
				repo.On("GetUserByUsername", mock.Anything, "alice").Return(nil, nil)
			}

			got, err := svc.AuthenticateUser(context.Background(), "alice", tt.password)
			if tt.wantKind != nil {
				require.ErrorIs(t, err, tt.wantKind)
				var recovery *apperrors.RecoveryRequiredError
				if tt.wantQuestion != "" {
					require.ErrorAs(t, err, &recovery)
					assert.Equal(t, tt.wantQuestion, recovery.Question)
					// the answer and password never leak through the error
					assert.NotContains(t, err.Error(), "rex")
					assert.NotContains(t, err.Error(), tt.stored.Password)
				} else {
					assert.False(t, errors.As(err, &recovery))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, got)
		})
	}
}

func TestRecoverUser(t *testing.T) {
	t.Run("matching answer", func(t *testing.T) {
		svc, repo, _ := newTestService(t, false)
		repo.On("GetUserByRecovery", mock.Anything, "alice", "rex").Return(storedUser("alice", "pw"), nil)

		got, err := svc.RecoverUser(context.Background(), "alice", "rex")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("answer is case sensitive", func(t *testing.T) {
		svc, repo, _ := newTestService(t, false)
		repo.On("GetUserByRecovery", mock.Anything, "alice", "Rex").Return(nil, nil)

		_, err := svc.RecoverUser(context.Background(), "alice", "Rex")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestRenameUser(t *testing.T) {
	tests := []struct {
		name       string
		oldName    string
		newName    string
		setup      func(repo *mocks.MockUserRepository)
		want       string
		wantKind   error
		storeFails bool
	}{
		{
			name:    "renames and cascades",
			oldName: "alice",
			newName: "bob",
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser("alice", "pw"), nil)
				repo.On("GetUserByUsername", mock.Anything, "bob").Return(nil, nil)
				repo.On("RenameUser", mock.Anything, "alice", "bob").Return(nil)
			},
			want: "bob",
		},
		{
			name:    "same name is a no-op",
			oldName: "alice",
			newName: "alice",
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser("alice", "pw"), nil)
			},
			want: "alice",
		},
		{
			name:    "new name taken leaves everything unchanged",
			oldName: "alice",
			newName: "bob",
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser("alice", "pw"), nil)
				repo.On("GetUserByUsername", mock.Anything, "bob").Return(storedUser("bob", "pw"), nil)
			},
			wantKind: apperrors.ErrConflict,
		},
		{
			name:    "unknown old name",
			oldName: "alice",
			newName: "bob",
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").Return(nil, nil)
			},
			wantKind: apperrors.ErrNotFound,
		},
		{
			name:     "empty new name",
			oldName:  "alice",
			newName:  "",
			setup:    func(repo *mocks.MockUserRepository) {},
			wantKind: apperrors.ErrBadRequest,
		},
		{
			name:    "conflict raised by the store",
			oldName: "alice",
			newName: "bob",
			setup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser("alice", "pw"), nil)
				repo.On("GetUserByUsername", mock.Anything, "bob").Return(nil, nil)
				repo.On("RenameUser", mock.Anything, "alice", "bob").Return(apperrors.ErrConflict)
			},
			wantKind:   apperrors.ErrConflict,
			storeFails: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t, false)
			tt.setup(repo)

			got, err := svc.RenameUser(context.Background(), tt.oldName, tt.newName)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				if !tt.storeFails {
					repo.AssertNotCalled(t, "RenameUser", mock.Anything, mock.Anything, mock.Anything)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Username)
			assert.Equal(t, models.PlaceholderProfilePic("alice"), got.ProfilePic)
		})
	}
}

func TestUploadProfilePicture(t *testing.T) {
	file := func() *models.UploadedFile {
		return &models.UploadedFile{Filename: "me.png", Content: strings.NewReader("png")}
	}

	t.Run("stores file and updates user", func(t *testing.T) {
		svc, repo, store := newTestService(t, false)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser("alice", "pw"), nil)
		store.On("Save", ProfilePicField, "me.png", mock.Anything).Return("/uploads/profilePic/1.png", nil)
		repo.On("UpdateProfilePic", mock.Anything, "alice", "/uploads/profilePic/1.png").Return(int64(1), nil)

		url, err := svc.UploadProfilePicture(context.Background(), "alice", file())
		require.NoError(t, err)
		assert.Equal(t, "/uploads/profilePic/1.png", url)
	})

	t.Run("missing file", func(t *testing.T) {
		svc, _, _ := newTestService(t, false)
		_, err := svc.UploadProfilePicture(context.Background(), "alice", nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("unknown user writes no file", func(t *testing.T) {
		svc, repo, store := newTestService(t, false)
		repo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, nil)

		_, err := svc.UploadProfilePicture(context.Background(), "ghost", file())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("user vanished before update removes the file", func(t *testing.T) {
		svc, repo, store := newTestService(t, false)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser("alice", "pw"), nil)
		store.On("Save", ProfilePicField, "me.png", mock.Anything).Return("/uploads/profilePic/1.png", nil)
		repo.On("UpdateProfilePic", mock.Anything, "alice", "/uploads/profilePic/1.png").Return(int64(0), nil)
		store.On("Remove", "/uploads/profilePic/1.png").Return(nil)

		_, err := svc.UploadProfilePicture(context.Background(), "alice", file())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestGetPublicProfile(t *testing.T) {
	svc, repo, _ := newTestService(t, false)
	repo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser("alice", "pw"), nil)
	repo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, nil)

	got, err := svc.GetPublicProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.SanitizedUser{Username: "alice", ProfilePic: models.PlaceholderProfilePic("alice")}, got)

	_, err = svc.GetPublicProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
