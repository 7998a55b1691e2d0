package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"mybnb/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService fronts Redis for the two things the app caches: computed
// dashboard stats (short TTL, warmed by the background job) and in-flight
// pending-payment records awaiting the redirect round trip.
type CacheService interface {
	// Pending payments, keyed by transaction reference.
	SetPendingPayment(ctx context.Context, payment *models.PendingPayment, ttl time.Duration) error
	GetPendingPayment(ctx context.Context, transactionRef string) (*models.PendingPayment, error)
	DeletePendingPayment(ctx context.Context, transactionRef string) error

	// Generic string operations; the metrics service stores serialized stats
	// under StatsKey.
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)

	// InvalidateCompanyCache drops every cached entry for one company.
	InvalidateCompanyCache(ctx context.Context, companyUID uuid.UUID) error

	Ping(ctx context.Context) error
}

// StatsKey builds the cache key for a company's period stats.
func StatsKey(companyUID uuid.UUID, start, end time.Time) string {
	return fmt.Sprintf("mybnb:stats:%s:%s:%s", companyUID.String(), start.Format("2006-01-02"), end.Format("2006-01-02"))
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func pendingPaymentKey(transactionRef string) string {
	return fmt.Sprintf("mybnb:pending_payment:%s", transactionRef)
}

func (r *redisCacheService) SetPendingPayment(ctx context.Context, payment *models.PendingPayment, ttl time.Duration) error {
	data, err := json.Marshal(payment)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, pendingPaymentKey(payment.TransactionRef), data, ttl).Err()
}

func (r *redisCacheService) GetPendingPayment(ctx context.Context, transactionRef string) (*models.PendingPayment, error) {
	data, err := r.client.Get(ctx, pendingPaymentKey(transactionRef)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var payment models.PendingPayment
	if err := json.Unmarshal(data, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *redisCacheService) DeletePendingPayment(ctx context.Context, transactionRef string) error {
	return r.client.Del(ctx, pendingPaymentKey(transactionRef)).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) InvalidateCompanyCache(ctx context.Context, companyUID uuid.UUID) error {
	pattern := fmt.Sprintf("mybnb:stats:%s:*", companyUID.String())
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
