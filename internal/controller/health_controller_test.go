package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return db, mock
}

func serveHealth(h *HealthController) (*httptest.ResponseRecorder, map[string]interface{}) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", h.HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body.Data
}

func TestHealthCheck(t *testing.T) {
	t.Run("database up", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing()

		w, data := serveHealth(NewHealthController(db, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", data["status"])
		assert.Equal(t, map[string]interface{}{"database": "up"}, data["components"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database down", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		w, data := serveHealth(NewHealthController(db, nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "degraded", data["status"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis down", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectPing()

		rdb := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			MaxRetries:  -1,
			DialTimeout: 200 * time.Millisecond,
		})
		t.Cleanup(func() { rdb.Close() })

		w, data := serveHealth(NewHealthController(db, rdb))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, map[string]interface{}{"database": "up", "redis": "down"}, data["components"])
	})
}
