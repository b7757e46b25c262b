// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	r "github.com/redis/go-redis/v9"
	"github.com/scienceol/labportal/pkg/middleware/db"
	"github.com/scienceol/labportal/pkg/middleware/session"
	"github.com/scienceol/labportal/pkg/repo/migrate"
	"github.com/scienceol/labportal/pkg/repo/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDatastore opens a private in-memory sqlite database with every table
// migrated.
func NewDatastore(t *testing.T) *db.Datastore {
	t.Helper()
	d, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := d.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ds := db.NewDatastore(d)
	require.NoError(t, migrate.Table(context.Background(), ds))
	return ds
}

func CreateUser(t *testing.T, ds *db.Datastore, username string, staff bool) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		PasswordHash: "x",
		IsStaff:      staff,
		IsActive:     true,
	}
	require.NoError(t, ds.DBIns().Create(user).Error)
	return user
}

func NewSessionStore(t *testing.T) (session.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := r.NewClient(&r.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, time.Hour), mr
}

// Date is a calendar date at UTC midnight.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
