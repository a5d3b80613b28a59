package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whitesvil1-lab/JustCani/internal/repository"
)

// entryDocument представляет документ в коллекции cart_storage
type entryDocument struct {
	Key       string    `bson:"key"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store реализует repository.Store используя MongoDB
type Store struct {
	col *mongo.Collection
}

// NewStore создаёт MongoDB store
// Создаёт уникальный индекс на key при инициализации
func NewStore(client *mongo.Client, dbName string) *Store {
	col := client.Database(dbName).Collection("cart_storage")

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Индекс уже может существовать - ошибку игнорируем
	_, _ = col.Indexes().CreateOne(ctx, indexModel)

	return &Store{col: col}
}

// Get читает значение по ключу
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc entryDocument
	err := s.col.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return doc.Value, nil
}

// Set заменяет документ ключа (upsert)
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	doc := entryDocument{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.col.ReplaceOne(ctx, bson.M{"key": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

// Remove удаляет документ ключа
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"key": key}); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
