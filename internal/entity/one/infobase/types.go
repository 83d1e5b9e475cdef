// Package infobase формирует командные строки запуска платформы 1С:Предприятие
// в режимах CREATEINFOBASE, DESIGNER и ENTERPRISE и выполняет их.
package infobase

import (
	"fmt"
	"strings"
)

// DBServerType - тип сервера СУБД для серверной информационной базы.
type DBServerType string

// Поддерживаемые типы СУБД.
const (
	DBServerMSSQL      DBServerType = "MSSQLServer"
	DBServerPostgreSQL DBServerType = "PostgreSQL"
	DBServerIBMDB2     DBServerType = "IBMDB2"
	DBServerOracle     DBServerType = "OracleDatabase"
)

// SQLYearOffset - смещение дат для хранения дат в Microsoft SQL Server.
type SQLYearOffset string

// Допустимые смещения дат.
const (
	SQLYearOffsetZero SQLYearOffset = "0"
	SQLYearOffset2000 SQLYearOffset = "2000"
)

// FileDBFormat - формат создаваемой файловой базы.
type FileDBFormat string

// Допустимые форматы файловой базы.
const (
	FileDBFormat8214 FileDBFormat = "8.2.14"
	FileDBFormat838  FileDBFormat = "8.3.8"
)

// SupportRule - правило поддержки объектов при создании хранилища.
type SupportRule string

// Правила поддержки.
const (
	// SupportObjectNotEditable - объект поставщика не редактируется.
	SupportObjectNotEditable SupportRule = "ObjectNotEditable"
	// SupportObjectIsEditableSupportEnabled - объект редактируется с сохранением поддержки.
	SupportObjectIsEditableSupportEnabled SupportRule = "ObjectIsEditableSupportEnabled"
	// SupportObjectNotSupported - объект снят с поддержки.
	SupportObjectNotSupported SupportRule = "ObjectNotSupported"
)

// ConfigDumpFormat - формат выгрузки конфигурации в файлы.
type ConfigDumpFormat string

// Форматы выгрузки.
const (
	ConfigDumpPlain        ConfigDumpFormat = "Plain"
	ConfigDumpHierarchical ConfigDumpFormat = "Hierarchical"
)

var (
	dbServerTypes     = []DBServerType{DBServerMSSQL, DBServerPostgreSQL, DBServerIBMDB2, DBServerOracle}
	sqlYearOffsets    = []SQLYearOffset{SQLYearOffsetZero, SQLYearOffset2000}
	fileDBFormats     = []FileDBFormat{FileDBFormat8214, FileDBFormat838}
	supportRules      = []SupportRule{SupportObjectNotEditable, SupportObjectIsEditableSupportEnabled, SupportObjectNotSupported}
	configDumpFormats = []ConfigDumpFormat{ConfigDumpPlain, ConfigDumpHierarchical}
)

// Valid сообщает, является ли значение допустимым типом СУБД.
func (t DBServerType) Valid() bool { return contains(dbServerTypes, t) }

// Valid сообщает, является ли значение допустимым смещением дат.
func (o SQLYearOffset) Valid() bool { return contains(sqlYearOffsets, o) }

// Valid сообщает, является ли значение допустимым форматом файловой базы.
func (f FileDBFormat) Valid() bool { return contains(fileDBFormats, f) }

// Valid сообщает, является ли значение допустимым правилом поддержки.
func (r SupportRule) Valid() bool { return contains(supportRules, r) }

// Valid сообщает, является ли значение допустимым форматом выгрузки.
func (f ConfigDumpFormat) Valid() bool { return contains(configDumpFormats, f) }

// ParseDBServerType разбирает тип СУБД без учёта регистра.
func ParseDBServerType(s string) (DBServerType, error) {
	return parseEnum("тип СУБД", s, dbServerTypes)
}

// ParseSQLYearOffset разбирает смещение дат.
func ParseSQLYearOffset(s string) (SQLYearOffset, error) {
	return parseEnum("смещение дат", s, sqlYearOffsets)
}

// ParseFileDBFormat разбирает формат файловой базы.
func ParseFileDBFormat(s string) (FileDBFormat, error) {
	return parseEnum("формат файловой базы", s, fileDBFormats)
}

// ParseSupportRule разбирает правило поддержки без учёта регистра.
func ParseSupportRule(s string) (SupportRule, error) {
	return parseEnum("правило поддержки", s, supportRules)
}

// ParseConfigDumpFormat разбирает формат выгрузки без учёта регистра.
func ParseConfigDumpFormat(s string) (ConfigDumpFormat, error) {
	return parseEnum("формат выгрузки", s, configDumpFormats)
}

func contains[T ~string](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](kind, s string, values []T) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	allowed := make([]string, len(values))
	for i, v := range values {
		allowed[i] = string(v)
	}
	return "", fmt.Errorf("недопустимое значение %q для параметра %s, допустимы: %s", s, kind, strings.Join(allowed, ", "))
}
