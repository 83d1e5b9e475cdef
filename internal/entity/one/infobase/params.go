package infobase

// Target - адрес информационной базы. Используется первое непустое из:
// Dir, Server (вместе с Infobase), WSURL.
type Target struct {
	// Dir - каталог файловой базы.
	Dir string
	// Server - имя сервера 1С.
	Server string
	// Infobase - имя базы на сервере 1С.
	Infobase string
	// WSURL - адрес базы на веб-сервере.
	WSURL string
}

// AuthParams - параметры аутентификации пользователя базы.
// Нулевое значение: без пользователя, с аутентификацией ОС.
type AuthParams struct {
	User     string
	Password string
	// DisableOSAuth запрещает аутентификацию ОС при старте (/WA-).
	DisableOSAuth bool
}

// DialogSettings - параметры окон и диалогов платформы.
// Нулевое значение подходит для пакетного запуска: окно скрыто,
// стартовые сообщения и диалоги подавлены.
type DialogSettings struct {
	// Visible открывает окно заставки на время работы (/Visible).
	Visible bool
	// ShowStartupMessages отменяет /DisableStartupMessages.
	ShowStartupMessages bool
	// ShowStartupDialogs отменяет /DisableStartupDialogs.
	ShowStartupDialogs bool
}

// LogIBParams - параметры служебного лога, который пишет платформа.
type LogIBParams struct {
	// FileName - файл для вывода служебных сообщений (/Out). Пусто = без лога.
	FileName string
	// NoTruncate дописывает в файл вместо очистки (-NoTruncate).
	NoTruncate bool
	// ResultFileName - файл для записи кода результата (/DumpResult).
	ResultFileName string
}

// PlatformParams - исполняемый файл платформы и его версия.
type PlatformParams struct {
	ExeName string
	// Version определяет кодировку служебного лога; пусто = современная платформа.
	Version string
}

// OtherParams - прочие параметры запуска.
type OtherParams struct {
	// AccessCode - код доступа при заблокированных соединениях (/UC).
	AccessCode string
	// Locale - язык (страна) базы, попадает в строку соединения.
	Locale string
	// Extra - произвольные токены, добавляемые в конец общих параметров.
	Extra []string
}

// FileDBParams - параметры создания файловой базы.
type FileDBParams struct {
	// Format - формат базы (DBFormat). Пусто = не указывать.
	Format FileDBFormat
}

// ServerDBParams - параметры СУБД для создания серверной базы.
type ServerDBParams struct {
	Type       DBServerType
	ServerName string
	Database   string
	User       string
	Password   string
	// YearOffset - смещение дат (SQLYOffs). Пусто = не указывать.
	YearOffset SQLYearOffset
	// CreateIfNotExist создаёт базу данных при её отсутствии (CrSQLDB=Y).
	CreateIfNotExist bool
}

// ClusterParams - параметры кластера для создания серверной базы.
type ClusterParams struct {
	// DenyScheduledJobs запрещает регламентные задания в созданной базе (SchJobDn=Y).
	DenyScheduledJobs bool
	AdminUser         string
	AdminPassword     string
}

// RepoParams - подключение к хранилищу конфигурации.
// Флаги хранилища попадают в командную строку только при заданном Dir.
type RepoParams struct {
	Dir      string
	User     string
	Password string
}

// UpdateDBCfgParams - обновление конфигурации базы данных после получения из хранилища.
type UpdateDBCfgParams struct {
	// Update добавляет /UpdateDBCfg.
	Update bool
	// SkipServer отменяет -Server (обновление на сервере).
	SkipServer bool
}

// LaunchParams - параметры запуска в режиме предприятия.
type LaunchParams struct {
	// Param передаётся в прикладное решение (/C).
	Param string
}
