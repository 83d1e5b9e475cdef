package infobase

import (
	"context"
	"strings"
)

// Creation создаёт информационную базу (режим CREATEINFOBASE).
type Creation struct {
	base
	fileDB   FileDBParams
	serverDB ServerDBParams
	cluster  ClusterParams
}

// NewCreation создаёт построитель команды создания базы.
func NewCreation(target Target, exec *Executor) *Creation {
	return &Creation{base: newBase(target, exec)}
}

// SetFileDBParams задаёт параметры файловой базы.
func (c *Creation) SetFileDBParams(p FileDBParams) { c.fileDB = p }

// SetServerDBParams задаёт параметры СУБД серверной базы.
func (c *Creation) SetServerDBParams(p ServerDBParams) { c.serverDB = p }

// SetClusterParams задаёт параметры кластера.
func (c *Creation) SetClusterParams(p ClusterParams) { c.cluster = p }

// ServerDBParams возвращает текущие параметры СУБД.
func (c *Creation) ServerDBParams() ServerDBParams { return c.serverDB }

// ConnectionString возвращает строку соединения для создания базы.
func (c *Creation) ConnectionString() string {
	var sb strings.Builder
	writeBaseConnectionString(&sb, c.target, c.auth, c.other.Locale)
	writeCreationConnectionString(&sb, c.serverDB, c.cluster, c.fileDB)
	return sb.String()
}

// commonParams: строка соединения идёт сразу за CREATEINFOBASE.
func (c *Creation) commonParams() []string {
	return append([]string{ModeCreateInfobase, c.ConnectionString()}, c.base.commonParams()...)
}

func (c *Creation) createBaseParams(listName, template string) []string {
	params := c.commonParams()
	if listName != "" {
		params = append(params, "/AddInList "+listName)
	}
	if template != "" {
		params = append(params, "/UseTemplate "+template)
	}
	return params
}

// CreateBase создаёт базу. listName - имя базы в списке баз (/AddInList),
// template - файл .cf или .dt, на основании которого создаётся база.
func (c *Creation) CreateBase(ctx context.Context, listName, template string) bool {
	return c.run(ctx, "CreateBase", c.createBaseParams(listName, template))
}
