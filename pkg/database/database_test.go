package database_test

import (
	"microhabits_backend/internal/config"
	"microhabits_backend/internal/model"
	"microhabits_backend/internal/testutil"
	"microhabits_backend/pkg/database"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "plataforma.db?_pragma=foreign_keys(1)", database.SQLiteDSN(""))
	assert.Equal(t, "data/app.db?_pragma=foreign_keys(1)", database.SQLiteDSN("data/app.db"))
	assert.Equal(t,
		"file:test?mode=memory&_pragma=foreign_keys(1)",
		database.SQLiteDSN("file:test?mode=memory"),
	)
}

func TestMySQLDSN(t *testing.T) {
	dsn := database.MySQLDSN(&config.DatabaseConfig{
		User:      "root",
		Password:  "secret",
		Host:      "db.local",
		Port:      3306,
		DBName:    "microhabits",
		Charset:   "utf8mb4",
		ParseTime: true,
	})
	assert.Equal(t,
		"root:secret@tcp(db.local:3306)/microhabits?charset=utf8mb4&parseTime=true&loc=Local&clientFoundRows=true",
		dsn,
	)
}

func TestDialector(t *testing.T) {
	d, err := database.Dialector(&config.DatabaseConfig{Driver: "MySQL", Host: "localhost", Port: 3306})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = database.Dialector(&config.DatabaseConfig{Driver: "sqlite"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	_, err = database.Dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMigrateCreatesAllTables(t *testing.T) {
	db := testutil.NewDB(t)

	for _, table := range []string{"usuarios", "microrretos", "progreso", "gamificacion", "comunidades", "usuarios_comunidad"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasColumn(&model.CommunityMember{}, "usuario_id"))
	assert.True(t, db.Migrator().HasColumn(&model.CommunityMember{}, "comunidad_id"))
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, database.Seed(db))
	require.NoError(t, database.Seed(db))

	var users, challenges int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&model.Challenge{}).Count(&challenges).Error)
	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(4), challenges)

	var ana model.User
	require.NoError(t, db.Where("nombre = ?", "Ana Torres").First(&ana).Error)
	assert.True(t, ana.Active)
	assert.Equal(t, 1, ana.Level)
	assert.Equal(t, "Estudiante", ana.Category)
}

func TestInitRedisDisabled(t *testing.T) {
	rdb, err := database.InitRedis(&config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}
