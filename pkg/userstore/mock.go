package userstore

import (
	"context"
)

// MockStore permite simular o Store em testes de outros pacotes.
type MockStore[T any] struct {
	CreateFn   func(ctx context.Context, item T) error
	ScanPageFn func(ctx context.Context, limit int32, token string) ([]T, string, error)
}

func (m *MockStore[T]) Create(ctx context.Context, item T) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}
	return nil
}

func (m *MockStore[T]) ScanPage(ctx context.Context, limit int32, token string) ([]T, string, error) {
	if m.ScanPageFn != nil {
		return m.ScanPageFn(ctx, limit, token)
	}
	return nil, "", nil
}
