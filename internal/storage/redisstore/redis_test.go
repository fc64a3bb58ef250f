package redisstore

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/boatfinance/internal/models"
	"github.com/mmynk/boatfinance/internal/storage"
)

// newTestStore connects to REDIS_ADDR using database 15, which is flushed
// before and after the test.
func newTestStore(t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	require.NoError(t, client.FlushDB(ctx).Err(), "flush test database")

	store := NewWithClient(client)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		store.Close()
	})
	return store
}

func newCalculation(userID string, createdAt time.Time) *models.FinanceCalculation {
	return &models.FinanceCalculation{
		UserID:         userID,
		BoatPrice:      50000,
		DownPayment:    10000,
		LoanAmount:     40000,
		InterestRate:   7,
		TermMonths:     1,
		MonthlyPayment: 40233.33,
		TotalInterest:  233.33,
		TotalCost:      50233.33,
		Saved:          true,
		CreatedAt:      createdAt,
		PaymentSchedule: []models.PaymentScheduleItem{
			{PaymentNumber: 1, PaymentDate: createdAt.AddDate(0, 1, 0), PrincipalAmount: 40000, InterestAmount: 233.33, TotalPayment: 40233.33},
		},
	}
}

func TestRedisStore_Calculations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)

	t.Run("create and get round trip", func(t *testing.T) {
		calc := newCalculation("alice", created)
		calc.CalculationNotes = "call the broker"

		require.NoError(t, store.CreateCalculation(ctx, calc))
		require.NotEmpty(t, calc.ID)

		got, err := store.GetCalculation(ctx, calc.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.UserID)
		assert.Equal(t, "call the broker", got.CalculationNotes)
		assert.True(t, got.CreatedAt.Equal(created), "CreatedAt = %v", got.CreatedAt)
		assert.Len(t, got.PaymentSchedule, 1)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := store.GetCalculation(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		var ids []string
		for i := 0; i < 3; i++ {
			calc := newCalculation("bob", created.Add(time.Duration(i)*time.Minute))
			require.NoError(t, store.CreateCalculation(ctx, calc))
			ids = append(ids, calc.ID)
		}

		got, err := store.ListCalculationsByUser(ctx, "bob", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, ids[2], got[0].ID)
		assert.Equal(t, ids[1], got[1].ID)
	})

	t.Run("concurrent shares converge on one token", func(t *testing.T) {
		calc := newCalculation("carol", created)
		require.NoError(t, store.CreateCalculation(ctx, calc))

		tokens := make([]string, 5)
		var wg sync.WaitGroup
		for i := range tokens {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				tok, err := store.ShareCalculation(ctx, calc.ID, string(rune('a'+i))+"-token", created)
				if assert.NoError(t, err) {
					tokens[i] = tok
				}
			}(i)
		}
		wg.Wait()

		for _, tok := range tokens[1:] {
			require.Equal(t, tokens[0], tok, "tokens diverged: %v", tokens)
		}

		got, err := store.GetCalculationByShareToken(ctx, tokens[0])
		require.NoError(t, err)
		assert.Equal(t, calc.ID, got.ID)
		assert.True(t, got.Shared)
	})

	t.Run("delete removes indexes", func(t *testing.T) {
		calc := newCalculation("dave", created)
		require.NoError(t, store.CreateCalculation(ctx, calc))
		tok, err := store.ShareCalculation(ctx, calc.ID, "dave-token", created)
		require.NoError(t, err)

		require.NoError(t, store.DeleteCalculation(ctx, calc.ID))
		_, err = store.GetCalculationByShareToken(ctx, tok)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		list, err := store.ListCalculationsByUser(ctx, "dave", 10)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestRedisStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("captain@example.com", "Captain", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUserByEmail(ctx, "captain@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	err = store.CreateUser(ctx, models.NewUser("captain@example.com", "Other", "x"))
	assert.Error(t, err, "duplicate email accepted")

	_, err = store.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
