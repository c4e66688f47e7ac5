package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type BookServiceProvider interface {
	Add(ctx context.Context, in BookInput) (string, error)
	List(ctx context.Context, filter BookFilter) ([]BookSummary, error)
	GetOne(ctx context.Context, id string) (Book, error)
	Update(ctx context.Context, id string, in BookInput) (Book, error)
	Delete(ctx context.Context, id string) error
	Count() int
}

// BookService runs the book operations against the storage and
// journals every successful change onto the queue. Writes and their
// journal push happen under mu so events are queued in store order.
type BookService struct {
	logger  *zap.Logger
	config  *Config
	storage BookStorage
	queue   Queuer
	mu      sync.Mutex
}

func NewBookService(logger *zap.Logger, config *Config, storage BookStorage, queue Queuer) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		storage: storage,
		queue:   queue,
	}
}

// Add creates the book and confirms the record is reachable before
// reporting its id. A record missing right after creation is
// reported as ErrBookNotCreated.
func (bs *BookService) Add(ctx context.Context, in BookInput) (string, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	id, err := bs.storage.Create(ctx, in)
	if err != nil {
		return "", err
	}
	if !bs.storage.Exists(ctx, id) {
		return "", ErrBookNotCreated
	}

	book, err := bs.storage.GetByID(ctx, id)
	if err != nil {
		bs.logger.Error("service: failed to load created book", zap.String("book.id", id), zap.Error(err))
		return id, nil
	}
	bs.publish(ctx, CreateQueue, book)
	return id, nil
}

func (bs *BookService) List(ctx context.Context, filter BookFilter) ([]BookSummary, error) {
	return bs.storage.ListFiltered(ctx, filter)
}

func (bs *BookService) GetOne(ctx context.Context, id string) (Book, error) {
	return bs.storage.GetByID(ctx, id)
}

func (bs *BookService) Update(ctx context.Context, id string, in BookInput) (Book, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	book, err := bs.storage.UpdateByID(ctx, id, in)
	if err != nil {
		return book, err
	}
	bs.publish(ctx, UpdateQueue, book)
	return book, nil
}

func (bs *BookService) Delete(ctx context.Context, id string) error {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	if err := bs.storage.DeleteByID(ctx, id); err != nil {
		return err
	}
	bs.publish(ctx, DeleteQueue, Book{ID: id})
	return nil
}

// Count returns the number of books currently stored.
func (bs *BookService) Count() int {
	return bs.storage.Len()
}

func (bs *BookService) publish(ctx context.Context, qid string, book Book) {
	if err := bs.queue.Push(ctx, qid, book); err != nil {
		bs.logger.Error("service: failed to push book to queue", zap.String("qid", qid), zap.String("book.id", book.ID), zap.Error(err))
	}
}
