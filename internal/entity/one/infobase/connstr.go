package infobase

import "strings"

// Значения в строке соединения подставляются без экранирования:
// апостроф в пути или пароле сломает строку.

func quoted(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString("='")
	b.WriteString(value)
	b.WriteString("';")
}

func unquoted(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(value)
	b.WriteString(";")
}

// writeBaseConnectionString пишет адрес базы, пользователя, пароль и локаль.
func writeBaseConnectionString(b *strings.Builder, t Target, a AuthParams, locale string) {
	switch {
	case t.Dir != "":
		quoted(b, "FILE", t.Dir)
	case t.Server != "":
		quoted(b, "Srvr", t.Server)
		quoted(b, "Ref", t.Infobase)
	case t.WSURL != "":
		quoted(b, "ws", t.WSURL)
	}

	if a.User != "" {
		quoted(b, "Usr", a.User)
	}
	if a.Password != "" {
		quoted(b, "Pwd", a.Password)
	}
	if locale != "" {
		unquoted(b, "Locale", locale)
	}
}

// writeCreationConnectionString дописывает параметры СУБД и кластера для CREATEINFOBASE.
func writeCreationConnectionString(b *strings.Builder, db ServerDBParams, cl ClusterParams, file FileDBParams) {
	if db.Type != "" {
		unquoted(b, "DBMS", string(db.Type))
	}
	if db.ServerName != "" {
		quoted(b, "DBSrvr", db.ServerName)
	}
	if db.Database != "" {
		quoted(b, "DB", db.Database)
	}
	if db.User != "" {
		quoted(b, "DBUID", db.User)
	}
	if db.YearOffset != "" {
		unquoted(b, "SQLYOffs", string(db.YearOffset))
	}
	if db.Password != "" {
		quoted(b, "DBPwd", db.Password)
	}
	if db.CreateIfNotExist {
		unquoted(b, "CrSQLDB", "Y")
	}
	if cl.DenyScheduledJobs {
		unquoted(b, "SchJobDn", "Y")
	}
	if cl.AdminUser != "" {
		quoted(b, "SUsr", cl.AdminUser)
	}
	if cl.AdminPassword != "" {
		quoted(b, "SPwd", cl.AdminPassword)
	}
	if file.Format != "" {
		unquoted(b, "DBFormat", string(file.Format))
	}
}

// String возвращает адрес базы в формате строки соединения без учётных данных.
func (t Target) String() string {
	var sb strings.Builder
	writeBaseConnectionString(&sb, t, AuthParams{}, "")
	return sb.String()
}
