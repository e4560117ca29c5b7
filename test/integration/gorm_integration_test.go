package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/repository/specification"
	"orgnotes-be/internal/repository/unitofwork"
	"orgnotes-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.OrganizationRepository())
	assert.NotNil(t, uow.MembershipRepository())
	assert.NotNil(t, uow.NoteRepository())
	assert.NotNil(t, uow.AttachmentRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("org and membership round trip", func(t *testing.T) {
		ctx := context.Background()

		userID := uuid.New()
		user := &entity.User{
			Id:        userID,
			Email:     "it-" + userID.String() + "@example.com",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		org := &entity.Organization{
			Id:        uuid.New(),
			Name:      "it-org-" + userID.String(),
			OwnerId:   userID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, uow.OrganizationRepository().Create(ctx, org))

		require.NoError(t, uow.MembershipRepository().Create(ctx, &entity.Membership{
			Id:        uuid.New(),
			OrgId:     org.Id,
			UserId:    userID,
			Role:      entity.MembershipRoleOwner,
			CreatedAt: time.Now(),
		}))

		// The join specification only surfaces orgs the user belongs to.
		orgs, err := uow.OrganizationRepository().FindAll(ctx,
			specification.MemberOrgs{UserID: userID},
			specification.OrderBy{Field: "organizations.name"},
		)
		require.NoError(t, err)
		require.Len(t, orgs, 1)
		assert.Equal(t, org.Id, orgs[0].Id)

		// Cleanup
		gormDB.Exec("DELETE FROM memberships WHERE org_id = ?", org.Id)
		gormDB.Exec("DELETE FROM organizations WHERE id = ?", org.Id)
		gormDB.Exec("DELETE FROM users WHERE id = ?", userID)
	})
}
