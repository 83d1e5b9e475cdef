package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	// blank import для драйвера SQL Server
	_ "github.com/denisenkom/go-mssqldb"
)

// Compile-time проверка реализации интерфейса
var _ Client = (*client)(nil)

// ClientOptions содержит параметры для создания MSSQL клиента.
type ClientOptions struct {
	// Server - адрес сервера MSSQL, допускается server\instance
	Server string
	// Port - порт сервера (по умолчанию 1433)
	Port     int
	User     string
	Password string
	// Database - база для подключения (по умолчанию master)
	Database string
	// Timeout - таймаут подключения (по умолчанию 30 секунд)
	Timeout time.Duration
	// Encrypt - использовать TLS
	Encrypt bool
}

type client struct {
	db   *sql.DB
	opts ClientOptions
}

// NewClient создаёт MSSQL клиент. Подключение выполняется в Connect.
func NewClient(opts ClientOptions) (Client, error) {
	if opts.Server == "" {
		return nil, fmt.Errorf("%s: server is required", ErrMSSQLConnect)
	}
	if opts.Port == 0 {
		opts.Port = 1433
	}
	if opts.Port < 1 || opts.Port > 65535 {
		return nil, fmt.Errorf("%s: invalid port %d, must be between 1 and 65535", ErrMSSQLConnect, opts.Port)
	}
	if opts.Database == "" {
		opts.Database = "master"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &client{opts: opts}, nil
}

// connString формирует строку подключения go-mssqldb.
func (c *client) connString() string {
	encryptMode := "true"
	if !c.opts.Encrypt {
		encryptMode = "disable"
	}
	return fmt.Sprintf(
		"server=%s;user id=%s;password=%s;port=%d;database=%s;encrypt=%s;connection timeout=%d",
		escapeConnStringParam(c.opts.Server),
		escapeConnStringParam(c.opts.User),
		escapeConnStringParam(c.opts.Password),
		c.opts.Port,
		escapeConnStringParam(c.opts.Database),
		encryptMode,
		int(c.opts.Timeout.Seconds()),
	)
}

// Connect устанавливает соединение с сервером MSSQL.
func (c *client) Connect(ctx context.Context) error {
	db, err := sql.Open("sqlserver", c.connString())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMSSQLConnect, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		if ctx.Err() != nil {
			return fmt.Errorf("%s: context cancelled during ping: %w", ErrMSSQLConnect, ctx.Err())
		}
		return fmt.Errorf("%s: ping failed: %w", ErrMSSQLConnect, err)
	}

	c.db = db
	return nil
}

// escapeConnStringParam экранирует ; и = в значениях строки подключения.
func escapeConnStringParam(s string) string {
	return url.QueryEscape(s)
}

// Close закрывает соединение с сервером.
func (c *client) Close() error {
	if c.db != nil {
		err := c.db.Close()
		c.db = nil
		return err
	}
	return nil
}

// DatabaseExists проверяет наличие базы данных в sys.databases.
func (c *client) DatabaseExists(ctx context.Context, name string) (bool, error) {
	if c.db == nil {
		return false, fmt.Errorf("%s: connection not established", ErrMSSQLQuery)
	}

	var id int
	err := c.db.QueryRowContext(ctx, `SELECT database_id FROM sys.databases WHERE name = @p1;`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMSSQLQuery, err)
	}
	return true, nil
}
