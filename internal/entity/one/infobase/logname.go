package infobase

import "strconv"

// LogFileNameGenerator выдаёт имена служебных логов платформы
// с порядковым номером: <prefix>1.log, <prefix>2.log, ...
// Не предназначен для конкурентного использования.
type LogFileNameGenerator struct {
	prefix string
	n      int
}

// NewLogFileNameGenerator создаёт генератор с префиксом полного имени файла,
// например /var/log/v8run/load-cfg.20240101120000.IB.
func NewLogFileNameGenerator(prefix string) *LogFileNameGenerator {
	return &LogFileNameGenerator{prefix: prefix}
}

// Next возвращает очередное имя файла лога.
func (g *LogFileNameGenerator) Next() string {
	g.n++
	return g.prefix + strconv.Itoa(g.n) + ".log"
}
