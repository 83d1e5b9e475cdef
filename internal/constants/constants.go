// Package constants содержит константы v8run, сгруппированные по назначению.
package constants

// Константы сообщений приложения
const (
	// MsgAppExit - сообщение о завершении работы программы
	MsgAppExit = "Завершение работы программы"
	// MsgErrProcessing - сообщение об обработке ошибки
	MsgErrProcessing = "Обработка ошибки"
)

// Имена команд.
const (
	ActCreateInfobase = "create-infobase"
	ActLoadCfg        = "load-cfg"
	ActDumpCfgFiles   = "dump-cfg-files"
	ActDumpRepoCfg    = "dump-repo-cfg"
	ActUpdateFromRepo = "update-from-repo"
	ActCreateRepo     = "create-repo"
	ActSetRepoLabel   = "set-repo-label"
	ActRunEnterprise  = "run-enterprise"
	ActSetBaseList    = "set-base-list"
	ActVersion        = "version"
)

// Коды завершения процесса.
const (
	ExitOK = 0
	// ExitUsage - неизвестная команда или неверные флаги.
	ExitUsage = 2
	// ExitConfig - ошибка конфигурации или файла параметров.
	ExitConfig = 5
	// ExitFailure - операция завершилась неуспешно.
	ExitFailure = 8
)

// Значения по умолчанию.
const (
	DefaultBin1cv8 = "1cv8"
	DefaultWorkDir = ""
)

// Общие ключи файла параметров.
const (
	ParamExeName         = "exename"
	ParamPlatformVersion = "platform_version"
)

// Ключи подключения к базе, общие для команд работы с базой.
const (
	ParamBaseDir        = "base_dir"
	ParamBaseServer     = "base_server"
	ParamBaseInfobase   = "base_infobase"
	ParamBaseWS         = "base_ws"
	ParamBaseUser       = "base_user"
	ParamBasePassword   = "base_password"
	ParamBaseUseOSAuth  = "base_use_os_auth"
	ParamBaseLocale     = "base_locale"
	ParamBaseAccessCode = "base_access_code"
	ParamBaseDumpResult = "base_dump_result"
	ParamBaseVisible    = "base_visible"
	ParamBaseExtra      = "base_extra"
	// ParamIBLog - писать служебный лог платформы в сгенерированный файл (/Out).
	ParamIBLog = "ib_log"
)

// Ключи создания базы.
const (
	ParamBaseListName    = "base_list_name"
	ParamBaseTemplate    = "base_template"
	ParamDBType          = "db_type"
	ParamDBServer        = "db_server"
	ParamDBName          = "db_name"
	ParamDBUser          = "db_user"
	ParamDBPassword      = "db_password"
	ParamDBYearOffset    = "db_year_offset"
	ParamDBCreate        = "db_create"
	ParamClusterDenyJobs = "cluster_deny_jobs"
	ParamClusterUser     = "cluster_user"
	ParamClusterPassword = "cluster_password"
	ParamFileFormat      = "file_format"
)

// Ключи команд конфигуратора.
const (
	ParamRepoDir                = "repo_dir"
	ParamRepoUser               = "repo_user"
	ParamRepoPassword           = "repo_password"
	ParamCfgFile                = "cfg_file"
	ParamDumpDir                = "dump_dir"
	ParamDumpFormat             = "dump_format"
	ParamDumpUpdate             = "dump_update"
	ParamDumpForce              = "dump_force"
	ParamRepoDumpFile           = "repo_dump_file"
	ParamRepoVersion            = "repo_version"
	ParamRepoRevised            = "repo_revised"
	ParamRepoForce              = "repo_force"
	ParamRepoObjects            = "repo_objects"
	ParamUpdateDBCfg            = "update_db_cfg"
	ParamUpdateServer           = "update_server"
	ParamRepoAllowChanges       = "repo_allow_changes"
	ParamRepoAllowedRule        = "repo_allowed_rule"
	ParamRepoNotRecommendedRule = "repo_not_recommended_rule"
	ParamRepoNoBind             = "repo_no_bind"
	ParamLabelName              = "label_name"
	ParamLabelVersion           = "label_version"
	ParamLabelComment           = "label_comment"
)

// Ключи запуска предприятия и списка баз.
const (
	ParamEnterpriseLaunch         = "enterprise_launch_param"
	ParamListFile                 = "list_file"
	ParamListName                 = "list_name"
	ParamListAdditionalParameters = "list_additional_parameters"
	ParamListVersion              = "list_version"
)
