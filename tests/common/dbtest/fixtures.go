//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotel-reservation/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DefaultPassword is the plain password of every user created by CreateTestUser.
const DefaultPassword = "password123"

var (
	defaultHashOnce sync.Once
	defaultHash     string
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	defaultHashOnce.Do(func() {
		hash, err := password.HashPassword(DefaultPassword)
		require.NoError(t, err)
		defaultHash = hash
	})

	userID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, defaultHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// CreateTestRoom inserts an active room of a seeded type, copying the type's attributes like the service does.
func CreateTestRoom(t *testing.T, db DBLike, number, typeName string) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx, `
		INSERT INTO rooms (id, number, type_name, type_capacity, type_base_rate_cents, type_amenities,
		                   base_price_cents, currency, active, floor)
		SELECT $1, $2, name, capacity, base_rate_cents, amenities, base_rate_cents, currency, true, 1
		FROM room_types WHERE name = $3`,
		roomID, number, typeName)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected(), "room type %q is not seeded", typeName)

	return roomID
}

func CreateTestCoupon(t *testing.T, db DBLike, code string, percentOff float64) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO coupons (id, code, percent_off) VALUES ($1, $2, $3)",
		couponID, code, percentOff)
	require.NoError(t, err)

	return couponID
}

// SeedReferenceData inserts the room catalog every test starts from.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO room_types (name, capacity, base_rate_cents, currency, amenities) VALUES
		    ('deluxe', 2, 15000, 'USD', ARRAY['wifi', 'minibar']),
		    ('suite', 4, 40000, 'USD', ARRAY['wifi', 'minibar', 'jacuzzi'])
		ON CONFLICT (name) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
