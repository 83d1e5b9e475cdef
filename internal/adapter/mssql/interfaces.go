// Package mssql предоставляет клиент Microsoft SQL Server для предварительной
// проверки базы данных перед созданием серверной информационной базы.
package mssql

import "context"

// Коды ошибок для MSSQL операций.
const (
	// ErrMSSQLConnect - ошибка подключения к серверу MSSQL
	ErrMSSQLConnect = "MSSQL.CONNECT_FAILED"
	// ErrMSSQLQuery - ошибка выполнения SQL запроса
	ErrMSSQLQuery = "MSSQL.QUERY_FAILED"
)

// DatabaseConnector предоставляет операции для подключения к серверу MSSQL.
type DatabaseConnector interface {
	// Connect устанавливает соединение с сервером MSSQL.
	Connect(ctx context.Context) error
	// Close закрывает соединение с сервером.
	Close() error
}

// DatabaseInspector предоставляет сведения о базах данных сервера.
type DatabaseInspector interface {
	// DatabaseExists сообщает, есть ли на сервере база данных с именем name.
	DatabaseExists(ctx context.Context, name string) (bool, error)
}

// Client объединяет DatabaseConnector и DatabaseInspector.
type Client interface {
	DatabaseConnector
	DatabaseInspector
}
