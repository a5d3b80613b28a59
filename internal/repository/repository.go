package repository

import (
	"context"
	"errors"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=Store --dir=. --output=./mocks --outpkg=mocks

// Store определяет key-value хранилище байтов, в котором живёт персистентная корзина.
// Аналог localStorage: get/set/remove по строковому ключу
type Store interface {
	// Get возвращает значение по ключу
	// Возвращает ErrNotFound, если ключа нет
	Get(ctx context.Context, key string) ([]byte, error)

	// Set перезаписывает значение по ключу
	Set(ctx context.Context, key string, value []byte) error

	// Remove удаляет ключ; отсутствие ключа не является ошибкой
	Remove(ctx context.Context, key string) error
}

// ErrNotFound возвращается, когда ключ отсутствует в хранилище
var ErrNotFound = errors.New("key not found")
