// Package store persists simulation records.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-simulator/pkg/constants"
	"github.com/iwvelando/mortgage-simulator/pkg/loans"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("simulation not found")

// Store backend types.
const (
	TypeMemory   = "memory"
	TypeRedis    = "redis"
	TypePostgres = "postgres"
)

// Record is a saved simulation together with the inputs that produced it.
type Record struct {
	ID         string           `json:"id"`
	CreatedAt  time.Time        `json:"createdAt"`
	ClientID   string           `json:"clientId,omitempty"`
	PropertyID string           `json:"propertyId,omitempty"`
	Principal  float64          `json:"principal"`
	Config     loans.LoanConfig `json:"config"`
	Result     loans.Result     `json:"result"`
}

// NewRecord builds a record with a fresh ID and creation time.
func NewRecord(principal float64, config loans.LoanConfig, clientID, propertyID string, result loans.Result) Record {
	return Record{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		ClientID:   clientID,
		PropertyID: propertyID,
		Principal:  principal,
		Config:     config,
		Result:     result,
	}
}

// Store saves and retrieves simulation records. List returns records oldest
// first.
type Store interface {
	Save(ctx context.Context, record Record) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Config selects and configures a store backend.
type Config struct {
	Type         string `yaml:"type"`
	RedisAddress string `yaml:"redisAddress,omitempty"`
	RedisDB      int    `yaml:"redisDb,omitempty"`
	PostgresDSN  string `yaml:"postgresDsn,omitempty"`
}

// New opens the backend named by cfg.Type. An empty type selects the
// in-memory store.
func New(ctx context.Context, logger *zap.Logger, cfg Config) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	storeType := strings.ToLower(strings.TrimSpace(cfg.Type))
	if storeType == "" {
		storeType = constants.DefaultStoreType
	}

	logger.Info("opening simulation store",
		zap.String("op", "store.New"),
		zap.String("type", storeType),
	)

	switch storeType {
	case TypeMemory:
		return NewMemoryStore(), nil
	case TypeRedis:
		if cfg.RedisAddress == "" {
			return nil, fmt.Errorf("redis store requires redisAddress")
		}
		return NewRedisStore(ctx, cfg.RedisAddress, cfg.RedisDB)
	case TypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres store requires postgresDsn")
		}
		return NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported store type %q", cfg.Type)
	}
}
