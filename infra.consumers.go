package main

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Consumer interface {
	Consume(ctx context.Context, qids ...string) error
}

// DefaultConsumerRetryDelay is the pause after a failed queue pop.
const DefaultConsumerRetryDelay = 500 * time.Millisecond

type mirrorConsumer struct {
	logger     *zap.Logger
	queue      Queuer
	mirror     MirrorStorage
	retryDelay time.Duration
}

// NewMirrorConsumer provides a consumer which replays journaled changes into the mirror.
func NewMirrorConsumer(logger *zap.Logger, q Queuer, mirror MirrorStorage) Consumer {
	return &mirrorConsumer{logger: logger, queue: q, mirror: mirror, retryDelay: DefaultConsumerRetryDelay}
}

// Consume loops until the context is done. Failures on a single
// event are logged and do not stop the loop. A failed pop is
// retried after retryDelay.
func (mc *mirrorConsumer) Consume(ctx context.Context, qids ...string) error {
	var book Book
	var err error
	var qid string
	for {
		qid, book, err = mc.queue.Pop(ctx, qids...)
		if err != nil && ctx.Err() != nil {
			mc.logger.Info("consumer: queue pop call: context is done: exit", zap.String("reason", ctx.Err().Error()))
			return nil
		}

		if err != nil {
			mc.logger.Error("consumer: error on queue pop call", zap.Error(err))
			select {
			case <-ctx.Done():
				mc.logger.Info("consumer: retry wait: context is done: exit", zap.String("reason", ctx.Err().Error()))
				return nil
			case <-time.After(mc.retryDelay):
			}
			continue
		}

		switch qid {
		case CreateQueue, UpdateQueue:
			if err = mc.mirror.Put(ctx, book); err != nil {
				mc.logger.Error("consumer: failed to save", zap.String("qid", qid), zap.String("book.id", book.ID), zap.Error(err))
			}
		case DeleteQueue:
			if err = mc.mirror.Delete(ctx, book.ID); err != nil {
				mc.logger.Error("consumer: failed to delete", zap.String("book.id", book.ID), zap.Error(err))
			}
		default:
			mc.logger.Warn("consumer: received book on unknown queue id", zap.String("qid", qid), zap.String("book.id", book.ID))
		}
	}
}
