package main

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

var _ MirrorStorage = (*boltMirrorStorage)(nil)

// MirrorStorage keeps the latest known state of each journaled book.
type MirrorStorage interface {
	Put(ctx context.Context, book Book) error
	Get(ctx context.Context, id string) (Book, error)
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]Book, error)
	Close() error
}

type boltMirrorStorage struct {
	logger *zap.Logger
	client *bolt.DB
	bucket []byte
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *BoltDBConfig) (*bolt.DB, error) {
	db, err := bolt.Open(config.FilePath, 0o600, &bolt.Options{Timeout: config.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltMirrorStorage provides an instance of bolt-based mirror storage.
func NewBoltMirrorStorage(logger *zap.Logger, config *BoltDBConfig, client *bolt.DB) MirrorStorage {
	return &boltMirrorStorage{
		logger: logger,
		client: client,
		bucket: []byte(config.BucketName),
	}
}

// Close shuts down the bolt-based storage.
func (bs *boltMirrorStorage) Close() error {
	return bs.client.Close()
}

// Put inserts or replaces the book record.
func (bs *boltMirrorStorage) Put(_ context.Context, book Book) error {
	bookBytes, err := journalJSON.Marshal(book)
	if err != nil {
		return err
	}
	return bs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bs.bucket).Put([]byte(book.ID), bookBytes)
	})
}

// Get retrieves a book record based on its ID.
func (bs *boltMirrorStorage) Get(_ context.Context, id string) (Book, error) {
	var book Book
	// initialize a readable transaction.
	tx, err := bs.client.Begin(false)
	if err != nil {
		return book, err
	}
	defer tx.Rollback()

	result := tx.Bucket(bs.bucket).Get([]byte(id))
	if result == nil {
		return book, ErrBookNotFound
	}
	err = journalJSON.Unmarshal(result, &book)
	return book, err
}

// Delete removes a book record. Removing an unknown id is not an error.
func (bs *boltMirrorStorage) Delete(_ context.Context, id string) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bs.bucket).Delete([]byte(id))
	})
}

// GetAll retrieves all mirrored books ordered by id.
func (bs *boltMirrorStorage) GetAll(_ context.Context) ([]Book, error) {
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := tx.Bucket(bs.bucket).Cursor()

	books := []Book{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var book Book
		if err = journalJSON.Unmarshal(v, &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}
