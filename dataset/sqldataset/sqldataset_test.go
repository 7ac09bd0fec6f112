package sqldataset

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`CREATE TABLE "weather data" (outlook TEXT, humidity REAL, windy INTEGER, play TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO "weather data" VALUES ('sunny', 85.5, 0, 'no'), ('rainy', 70, 1, 'yes')`)
	require.NoError(t, err)
	return db
}

func TestLoadTable(t *testing.T) {
	db := testDB(t)
	frame, labels, err := LoadTable(context.Background(), db, "weather data", "play")
	require.NoError(t, err)
	assert.Equal(t, []string{"outlook", "humidity", "windy"}, frame.Columns)
	assert.Equal(t, []string{"no", "yes"}, labels)
	require.Len(t, frame.Rows, 2)
	assert.Equal(t, []interface{}{"sunny", 85.5, int64(0)}, frame.Rows[0])
	assert.Equal(t, []interface{}{"rainy", 70.0, int64(1)}, frame.Rows[1])
}

func TestLoadErrors(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, _, err := LoadTable(ctx, db, "weather data", "label")
	assert.ErrorContains(t, err, "class column label not found")

	_, _, err = LoadTable(ctx, db, "missing", "play")
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO "weather data" VALUES (NULL, 1, 0, 'no')`)
	require.NoError(t, err)
	_, _, err = Load(ctx, db, `SELECT * FROM "weather data"`, "play")
	assert.ErrorContains(t, err, "NULL value")
}

func TestLoadQueryWithoutClass(t *testing.T) {
	db := testDB(t)
	frame, labels, err := Load(context.Background(), db, `SELECT outlook FROM "weather data" ORDER BY outlook`, "")
	require.NoError(t, err)
	assert.Nil(t, labels)
	assert.Equal(t, [][]interface{}{{"rainy"}, {"sunny"}}, frame.Rows)
}
