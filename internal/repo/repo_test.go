package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func TestRegisterUser_FirstIsAdmin(t *testing.T) {
	r := GormRepo{DB: initTestDB(t)}
	ctx := context.Background()

	alice := models.User{Email: "alice@example.com", Name: "alice", PasswordHash: "x"}
	require.NoError(t, r.RegisterUser(ctx, &alice))
	require.Equal(t, models.RoleAdmin, alice.Role)
	require.NotEqual(t, uuid.Nil, alice.ID)

	bob := models.User{Email: "bob@example.com", Name: "bob", PasswordHash: "x"}
	require.NoError(t, r.RegisterUser(ctx, &bob))
	require.Equal(t, models.RoleUser, bob.Role)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	r := GormRepo{DB: initTestDB(t)}
	ctx := context.Background()

	alice := models.User{Email: "alice@example.com", Name: "alice", PasswordHash: "x"}
	require.NoError(t, r.RegisterUser(ctx, &alice))

	again := models.User{Email: "alice@example.com", Name: "other", PasswordHash: "y"}
	err := r.RegisterUser(ctx, &again)
	require.ErrorIs(t, err, ErrEmailTaken)

	count, err := r.CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestSessionLifecycle(t *testing.T) {
	r := GormRepo{DB: initTestDB(t)}
	ctx := context.Background()

	userID := uuid.New()
	sess := models.Session{UserID: userID, RefreshSecret: "secret-1", IsValid: true, IP: "1.2.3.4", UserAgent: "test"}
	require.NoError(t, r.CreateSession(ctx, &sess))

	got, err := r.FindSessionByUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "secret-1", got.RefreshSecret)
	require.True(t, got.IsValid)

	require.NoError(t, r.MarkSessionInvalid(ctx, userID))
	got, err = r.FindSessionByUser(ctx, userID)
	require.NoError(t, err)
	require.False(t, got.IsValid)

	require.NoError(t, r.DeleteSessionByUser(ctx, userID))
	_, err = r.FindSessionByUser(ctx, userID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSessionUniquePerUser(t *testing.T) {
	r := GormRepo{DB: initTestDB(t)}
	ctx := context.Background()

	userID := uuid.New()
	first := models.Session{UserID: userID, RefreshSecret: "secret-1", IsValid: true}
	require.NoError(t, r.CreateSession(ctx, &first))

	second := models.Session{UserID: userID, RefreshSecret: "secret-2", IsValid: true}
	require.Error(t, r.CreateSession(ctx, &second))
}
