// Package notify は注文イベントをRedisチャンネルにpublishする。
// Telegram Bot 側のリスナーがこのチャンネルを購読してユーザーに通知する。
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"flora/internal/config"
	"flora/pkg/log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Event struct {
	ID     string `json:"id"`
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

type Publisher interface {
	OrderCreated(ctx context.Context, telegramID int64, orderID int64, totalAmount int64) error
}

func NewRedisClient(cfg config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := client.Ping(context.TODO()).Result(); err != nil {
		log.L.Fatal("connect redis error", zap.Error(err))
	}
	log.L.Info("redis client success")
	return client
}

type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) OrderCreated(ctx context.Context, telegramID int64, orderID int64, totalAmount int64) error {
	ev := Event{
		ID:     uuid.NewString(),
		UserID: telegramID,
		Text:   fmt.Sprintf("Создан новый заказ #%d на сумму %d₽", orderID, totalAmount),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}
