package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/labour-intake/internal/config"
	"github.com/fadilmartias/labour-intake/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	storePostgres = "postgres"
	storeRedis    = "redis"
	storeMemory   = "memory"
)

type stores struct {
	sessions repository.SessionRepository
	profiles repository.LabourProfileRepository
	closers  []func() error
}

func (s *stores) Close() {
	for _, c := range s.closers {
		_ = c()
	}
}

// openStores builds the profile store from storage and the session store from
// sessionStore. Postgres is connected and migrated at most once.
func openStores(storage, sessionStore string, log *zap.Logger) (*stores, error) {
	s := &stores{}
	var db *gorm.DB
	postgresDB := func() (*gorm.DB, error) {
		if db != nil {
			return db, nil
		}
		conn, err := connectDB(config.LoadDBConfig(), config.LoadAppConfig())
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(conn); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		if sqlDB, err := conn.DB(); err == nil {
			s.closers = append(s.closers, sqlDB.Close)
		}
		db = conn
		return db, nil
	}

	switch storage {
	case storeMemory:
		log.Warn("profiles are kept in memory and lost on restart")
		s.profiles = repository.NewLabourProfileMemoryRepository()
	case storePostgres, "":
		conn, err := postgresDB()
		if err != nil {
			s.Close()
			return nil, err
		}
		s.profiles = repository.NewLabourProfileRepository(conn)
	default:
		return nil, fmt.Errorf("unknown STORAGE %q", storage)
	}

	switch sessionStore {
	case storeMemory:
		s.sessions = repository.NewSessionMemoryRepository()
	case storeRedis:
		redisConfig := config.LoadRedisConfig()
		client := redis.NewClient(&redis.Options{
			Addr:     redisConfig.Addr,
			Password: redisConfig.Password,
			DB:       redisConfig.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			s.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		s.closers = append(s.closers, client.Close)
		s.sessions = repository.NewSessionRedisRepository(client, redisConfig.SessionTTL)
	case storePostgres, "":
		conn, err := postgresDB()
		if err != nil {
			s.Close()
			return nil, err
		}
		s.sessions = repository.NewSessionRepository(conn)
	default:
		s.Close()
		return nil, fmt.Errorf("unknown SESSION_STORE %q", sessionStore)
	}
	return s, nil
}

func connectDB(dbConfig *config.DBConfig, appConfig *config.AppConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if appConfig.IsProduction() {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get database instance: %w", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}
