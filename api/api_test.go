package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpupo63/project-catalog-backend/database"
	"github.com/rpupo63/project-catalog-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "s3cret"

func newTestGormDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := database.Open(database.Options{Type: database.TypeSQLite, DSN: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(gdb))
	return gdb
}

func newTestDB(t *testing.T) database.Database {
	t.Helper()
	db := database.New(newTestGormDB(t))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newTestHandler builds the router over a fresh database. extra entries override the base config.
func newTestHandler(t *testing.T, extra map[string]string, opts ...Option) (http.Handler, database.Database) {
	t.Helper()
	c := map[string]string{
		"ADMIN_PASSWORD":   testPassword,
		"ACCEPTED_ORIGINS": "http://localhost:5173",
		"LOGIN_RATE_LIMIT": "",
	}
	for k, v := range extra {
		c[k] = v
	}

	db := newTestDB(t)
	h, err := NewHandler(db, append([]Option{WithConfig(c)}, opts...)...)
	require.NoError(t, err)
	return h, db
}

func request(t *testing.T, h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader).WithContext(context.Background())
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
