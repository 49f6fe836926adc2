// Package testutil 提供测试用的内存数据库
package testutil

import (
	"fmt"
	"microhabits_backend/internal/config"
	"microhabits_backend/pkg/database"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq int64

// NewDB 为每个测试创建独立的内存 sqlite 库并完成迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	n := atomic.AddInt64(&dbSeq, 1)
	cfg := &config.DatabaseConfig{
		Driver:       database.DriverSQLite,
		Path:         fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, n),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
