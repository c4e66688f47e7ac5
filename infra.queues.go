package main

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

// Predefinied Queue IDs.
const (
	CreateQueue = "creation"
	UpdateQueue = "updating"
	DeleteQueue = "deletion"
)

// journalJSON encodes the payloads exchanged through the queues and the mirror.
var journalJSON = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	_ Queuer = (*redisQueue)(nil)
	_ Queuer = (*nopQueue)(nil)
)

// Queuer describes a queue.
type Queuer interface {
	Push(ctx context.Context, qid string, book Book) error
	Pop(ctx context.Context, qids ...string) (string, Book, error)
}

// redisQueue represents a queue which implements the Queuer interface.
type redisQueue struct {
	client *redis.Client
	prefix string
}

// NewRedisQueue provides a redis lists based queue. Every queue id is
// namespaced with the prefix so several instances can share a server.
func NewRedisQueue(client *redis.Client, prefix string) Queuer {
	return &redisQueue{client: client, prefix: prefix}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:                  fmt.Sprintf("%s:%s", config.Journal.Redis.Host, config.Journal.Redis.Port),
		DialTimeout:           config.Journal.Redis.DialTimeout,
		ReadTimeout:           config.Journal.Redis.ReadTimeout,
		WriteTimeout:          config.Journal.Redis.WriteTimeout,
		PoolSize:              config.Journal.Redis.PoolSize,
		PoolTimeout:           config.Journal.Redis.PoolTimeout,
		Password:              config.Journal.Redis.Password,
		Username:              config.Journal.Redis.Username,
		DB:                    config.Journal.Redis.DatabaseIndex,
		ContextTimeoutEnabled: true, // lets BLPop return once the consumer context is done.
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Push enqueues a book onto the queue identified by qid.
func (q *redisQueue) Push(ctx context.Context, qid string, book Book) error {
	bookBytes, err := journalJSON.Marshal(book)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, q.key(qid), bookBytes).Err()
}

// Pop blocks until a book is available on one of the queues and
// returns it along with the (unprefixed) queue id it came from.
func (q *redisQueue) Pop(ctx context.Context, qids ...string) (string, Book, error) {
	var book Book
	var qid string
	keys := make([]string, 0, len(qids))
	for _, id := range qids {
		keys = append(keys, q.key(id))
	}
	infos, err := q.client.BLPop(ctx, 0*time.Second, keys...).Result()
	if err != nil {
		return qid, book, err
	}

	if err = journalJSON.Unmarshal([]byte(infos[1]), &book); err != nil {
		return qid, book, err
	}
	qid = infos[0][len(q.prefix):]
	return qid, book, nil
}

func (q *redisQueue) key(qid string) string {
	return q.prefix + qid
}

// nopQueue is used when the journal is disabled.
type nopQueue struct{}

// NewNopQueue provides a queue which drops everything pushed.
func NewNopQueue() Queuer {
	return nopQueue{}
}

func (nopQueue) Push(context.Context, string, Book) error {
	return nil
}

// Pop waits for the context to be done since nothing is ever queued.
func (nopQueue) Pop(ctx context.Context, _ ...string) (string, Book, error) {
	<-ctx.Done()
	return "", Book{}, ctx.Err()
}
