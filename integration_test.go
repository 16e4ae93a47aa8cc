//go:build integration

package sqlbuilder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/maxshaw/sqlbuilder/conn"
	"github.com/maxshaw/sqlbuilder/qb"
)

// startPostgres runs a throwaway server and returns a pgsql: connection.
func startPostgres(t *testing.T) *conn.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("shop"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := conn.Open("pgsql:" + dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping(ctx))
	return db
}

func TestIntegration_Postgres(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	// Unquoted identifiers fold to lower case on both sides, so the
	// builder's Id and Name reach id and name.
	_, err := db.Exec(ctx, "CREATE TABLE users (Id SERIAL PRIMARY KEY, Name TEXT, Email TEXT)", nil)
	require.NoError(t, err)

	for _, name := range []string{"Jane", "John", "Joan"} {
		_, err := InsertTable("users").
			Set("Name", name).
			Set("Email", name+"@example.com").
			Exec(ctx, db)
		require.NoError(t, err)
	}

	res, err := UpdateTable("users").
		Set("Name", "Janet").
		Where(qb.Eq("Id", 1)).
		WhereGroup(func(c *Cond) {
			c.Where(qb.Eq("Email", "Jane@example.com")).OrWhere(qb.Eq("Email", "janet@example.com"))
		}).
		Exec(ctx, db)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := SelectTable("users").
		Select("Name").
		Where(qb.Contains("Email", "@example.com")).
		OrderBy("Id").
		Query(ctx, db)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Janet", rows[0]["name"])

	total, err := SelectTable("users").Where(qb.Neq("Name", "John")).Total(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, err = DeleteTable("users").Where(qb.Eq("Id", 2)).Exec(ctx, db)
	require.NoError(t, err)

	total, err = SelectTable("users").Count().Total(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
