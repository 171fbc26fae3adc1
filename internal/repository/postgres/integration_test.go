//go:build integration

package postgres_test

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/avasquez/furniture-store-api/internal/model"
	repo "github.com/avasquez/furniture-store-api/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "furniture_store_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/furniture_store_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createUser(t *testing.T, ctx context.Context, ur *repo.UserRepository, email string) model.User {
	t.Helper()
	u := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: []byte("$2a$10$fakefakefakefakefakefake"),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	return saved
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		u := createUser(t, ctx, ur, "user@example.com")

		byEmail, err := ur.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)
		require.False(t, byEmail.EmailConfirmed)

		byID, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, byID.Email)

		require.NoError(t, ur.SetEmailConfirmed(ctx, u.ID))
		confirmed, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, confirmed.EmailConfirmed)

		_, err = ur.GetByEmail(ctx, "missing@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("confirmation_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		cr := repo.NewConfirmationRepository(conn)
		u := createUser(t, ctx, ur, "confirm@example.com")

		h := sha256.Sum256([]byte("code"))
		require.NoError(t, cr.Create(ctx, model.EmailConfirmation{
			UserID:    u.ID,
			CodeHash:  h[:],
			ExpiresAt: time.Now().Add(time.Hour),
		}))

		require.NoError(t, cr.Consume(ctx, u.ID, h[:]))

		// A code is one-time.
		require.ErrorIs(t, cr.Consume(ctx, u.ID, h[:]), model.ErrNotFound)

		// An expired code never consumes.
		expired := sha256.Sum256([]byte("expired"))
		require.NoError(t, cr.Create(ctx, model.EmailConfirmation{
			UserID:    u.ID,
			CodeHash:  expired[:],
			ExpiresAt: time.Now().Add(-time.Minute),
		}))
		require.ErrorIs(t, cr.Consume(ctx, u.ID, expired[:]), model.ErrNotFound)
	})

	t.Run("refresh_token_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		rr := repo.NewRefreshTokenRepository(conn)
		u := createUser(t, ctx, ur, "tokens@example.com")

		rt := model.RefreshToken{
			ID:         uuid.New(),
			JWTID:      uuid.NewString(),
			TokenValue: "refresh-value-1",
			UserID:     u.ID,
			AddedAt:    time.Now(),
			ExpiryAt:   time.Now().Add(time.Hour),
		}
		require.NoError(t, rr.Create(ctx, rt))

		got, err := rr.GetByValue(ctx, rt.TokenValue)
		require.NoError(t, err)
		require.Equal(t, rt.JWTID, got.JWTID)
		require.False(t, got.IsUsed)

		// CAS: exactly one consumption succeeds.
		ok, err := rr.MarkUsed(ctx, rt.TokenValue)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = rr.MarkUsed(ctx, rt.TokenValue)
		require.NoError(t, err)
		require.False(t, ok)

		spent, err := rr.GetByValue(ctx, rt.TokenValue)
		require.NoError(t, err)
		require.True(t, spent.IsUsed)

		_, err = rr.GetByValue(ctx, "no-such-value")
		require.ErrorIs(t, err, model.ErrNotFound)

		second := model.RefreshToken{
			ID:         uuid.New(),
			JWTID:      uuid.NewString(),
			TokenValue: "refresh-value-2",
			UserID:     u.ID,
			AddedAt:    time.Now(),
			ExpiryAt:   time.Now().Add(time.Hour),
		}
		require.NoError(t, rr.Create(ctx, second))
		require.NoError(t, rr.MarkRevoked(ctx, second.TokenValue))

		revoked, err := rr.GetByValue(ctx, second.TokenValue)
		require.NoError(t, err)
		require.True(t, revoked.IsRevoked)

		// A revoked token cannot be consumed.
		ok, err = rr.MarkUsed(ctx, second.TokenValue)
		require.NoError(t, err)
		require.False(t, ok)

		third := model.RefreshToken{
			ID:         uuid.New(),
			JWTID:      uuid.NewString(),
			TokenValue: "refresh-value-3",
			UserID:     u.ID,
			AddedAt:    time.Now(),
			ExpiryAt:   time.Now().Add(time.Hour),
		}
		require.NoError(t, rr.Create(ctx, third))
		require.NoError(t, rr.RevokeAllByUser(ctx, u.ID))

		all, err := rr.GetByValue(ctx, third.TokenValue)
		require.NoError(t, err)
		require.True(t, all.IsRevoked)
	})

	t.Run("catalog_repositories", func(t *testing.T) {
		cr := repo.NewCategoryRepository(conn)
		pr := repo.NewProductRepository(conn)

		category, err := cr.Create(ctx, model.ProductCategory{ID: uuid.New(), Name: "Chairs"})
		require.NoError(t, err)

		categories, err := cr.GetAll(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, categories)

		product, err := pr.Create(ctx, model.Product{
			ID:         uuid.New(),
			Name:       "Armchair",
			Price:      199.99,
			CategoryID: category.ID,
			CreatedAt:  time.Now(),
		})
		require.NoError(t, err)

		byID, err := pr.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.Equal(t, "Armchair", byID.Name)
		require.Nil(t, byID.ImageObject)

		byCategory, err := pr.GetByCategory(ctx, category.ID)
		require.NoError(t, err)
		require.Len(t, byCategory, 1)

		require.NoError(t, pr.SetImageObject(ctx, product.ID, "products/"+product.ID.String()))
		withImage, err := pr.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, withImage.ImageObject)

		product.Name = "Recliner"
		product.Price = 249.99
		require.NoError(t, pr.Update(ctx, product))
		updated, err := pr.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.Equal(t, "Recliner", updated.Name)

		require.NoError(t, pr.Delete(ctx, product.ID))
		_, err = pr.GetByID(ctx, product.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("order_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		cr := repo.NewCategoryRepository(conn)
		pr := repo.NewProductRepository(conn)
		or := repo.NewOrderRepository(conn)

		u := createUser(t, ctx, ur, "orders@example.com")
		category, err := cr.Create(ctx, model.ProductCategory{ID: uuid.New(), Name: "Tables"})
		require.NoError(t, err)
		product, err := pr.Create(ctx, model.Product{
			ID:         uuid.New(),
			Name:       "Dining table",
			Price:      499.00,
			CategoryID: category.ID,
			CreatedAt:  time.Now(),
		})
		require.NoError(t, err)

		order, err := or.Create(ctx, model.Order{
			ID:          uuid.New(),
			UserID:      u.ID,
			OrderNumber: "ORD-1",
			CreatedAt:   time.Now(),
			Details: []model.OrderDetail{
				{ProductID: product.ID, Quantity: 2, Price: 499.00},
			},
		})
		require.NoError(t, err)

		byID, err := or.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.Equal(t, "ORD-1", byID.OrderNumber)
		require.Len(t, byID.Details, 1)
		require.Equal(t, 2, byID.Details[0].Quantity)

		byUser, err := or.GetByUserID(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, byUser, 1)

		order.Details = []model.OrderDetail{
			{OrderID: order.ID, ProductID: product.ID, Quantity: 3, Price: 499.00},
		}
		require.NoError(t, or.Update(ctx, order))
		updated, err := or.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.Equal(t, 3, updated.Details[0].Quantity)

		require.NoError(t, or.Delete(ctx, order.ID))
		_, err = or.GetByID(ctx, order.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}
