// Package redisstore fiber session middleware'i için redis tabanlı storage sağlar.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const defaultOpTimeout = 2 * time.Second

type Config struct {
	Addr        string
	Password    string
	DB          int
	Prefix      string // Tüm anahtarların önüne eklenir, Reset sadece bu önekli anahtarları siler
	DialTimeout time.Duration
	OpTimeout   time.Duration
}

// Storage fiber.Storage arayüzünü redis üzerinde uygular.
type Storage struct {
	client    redis.UniversalClient
	prefix    string
	opTimeout time.Duration
}

var _ fiber.Storage = (*Storage)(nil)

// New redis'e bağlanır ve bağlantıyı ping ile doğrular.
func New(cfg Config) (*Storage, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  defaultOpTimeout,
		WriteTimeout: defaultOpTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis'e bağlanılamadı: %w", err)
	}

	return NewFromClient(client, cfg.Prefix, cfg.OpTimeout), nil
}

// NewFromClient hazır bir redis istemcisini sarar.
func NewFromClient(client redis.UniversalClient, prefix string, opTimeout time.Duration) *Storage {
	if opTimeout == 0 {
		opTimeout = defaultOpTimeout
	}
	return &Storage{client: client, prefix: prefix, opTimeout: opTimeout}
}

func (s *Storage) key(k string) string {
	return s.prefix + k
}

func (s *Storage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.opTimeout)
}

// Get anahtar yoksa nil, nil döndürür.
func (s *Storage) Get(key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set değeri verilen süreyle saklar. exp sıfırsa anahtar süresizdir.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Set(ctx, s.key(key), val, exp).Err()
}

func (s *Storage) Delete(key string) error {
	if len(key) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Del(ctx, s.key(key)).Err()
}

// Reset önekle başlayan tüm anahtarları siler.
func (s *Storage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*s.opTimeout)
	defer cancel()

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 100 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return s.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}
