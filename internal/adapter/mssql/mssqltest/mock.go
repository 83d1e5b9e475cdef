// Package mssqltest содержит мок mssql.Client для тестов.
package mssqltest

import (
	"context"

	"github.com/Kargones/v8run/internal/adapter/mssql"
)

var _ mssql.Client = (*MockMSSQLClient)(nil)

// MockMSSQLClient - мок mssql.Client с функциональными полями.
// Незаданные функции возвращают нулевые значения.
type MockMSSQLClient struct {
	ConnectFunc        func(ctx context.Context) error
	CloseFunc          func() error
	DatabaseExistsFunc func(ctx context.Context, name string) (bool, error)

	// Closed - был ли вызван Close.
	Closed bool
}

// Connect вызывает ConnectFunc.
func (m *MockMSSQLClient) Connect(ctx context.Context) error {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx)
	}
	return nil
}

// Close вызывает CloseFunc.
func (m *MockMSSQLClient) Close() error {
	m.Closed = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// DatabaseExists вызывает DatabaseExistsFunc.
func (m *MockMSSQLClient) DatabaseExists(ctx context.Context, name string) (bool, error) {
	if m.DatabaseExistsFunc != nil {
		return m.DatabaseExistsFunc(ctx, name)
	}
	return false, nil
}
