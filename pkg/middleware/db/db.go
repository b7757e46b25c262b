package db

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

type LogConf struct {
	Level string
}

type Config struct {
	Driver  string
	Host    string
	Port    int
	User    string
	PW      string
	DBName  string
	Path    string
	LogConf LogConf
}

type Datastore struct {
	db *gorm.DB
}

type txKey struct{}

var ds *Datastore

func InitDB(ctx context.Context, conf *Config) {
	var dialector gorm.Dialector
	switch conf.Driver {
	case "sqlite":
		dialector = sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", conf.Path))
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			conf.Host, conf.Port, conf.User, conf.PW, conf.DBName)
		dialector = postgres.Open(dsn)
	}

	d, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(conf.LogConf.Level),
		TranslateError: true,
	})
	if err != nil {
		logger.Fatalf(ctx, "open %s database err: %+v", conf.Driver, err)
	}
	if err := d.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		logger.Fatalf(ctx, "install gorm tracing err: %+v", err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		logger.Fatalf(ctx, "get sql db err: %+v", err)
	}
	if conf.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Fatalf(ctx, "ping database err: %+v", err)
	}

	ds = &Datastore{db: d}
	logger.Infof(ctx, "database %s connected", conf.Driver)
}

func CloseDB(ctx context.Context) {
	if ds == nil {
		return
	}
	if sqlDB, err := ds.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Errorf(ctx, "close database err: %+v", err)
		}
	}
}

func DB() *Datastore {
	return ds
}

func NewDatastore(d *gorm.DB) *Datastore {
	return &Datastore{db: d}
}

func (d *Datastore) DBIns() *gorm.DB {
	return d.db
}

// DBWithContext returns the transaction bound to ctx by ExecTx, or a fresh
// session on the pool.
func (d *Datastore) DBWithContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// ExecTx runs fn inside one transaction. Nested calls join the outer one.
func (d *Datastore) ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
