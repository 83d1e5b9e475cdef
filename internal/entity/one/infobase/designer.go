package infobase

import (
	"context"
	"strconv"
	"strings"
)

// Designer работает с базой в режиме конфигуратора.
type Designer struct {
	base
	repo        RepoParams
	updateDBCfg UpdateDBCfgParams
}

// NewDesigner создаёт построитель команд конфигуратора.
func NewDesigner(target Target, exec *Executor) *Designer {
	return &Designer{base: newBase(target, exec)}
}

// SetRepoParams задаёт подключение к хранилищу конфигурации.
func (d *Designer) SetRepoParams(p RepoParams) { d.repo = p }

// SetUpdateDBCfgParams задаёт обновление конфигурации БД после UpdateFromRepo.
func (d *Designer) SetUpdateDBCfgParams(p UpdateDBCfgParams) { d.updateDBCfg = p }

// ConnectionString возвращает значение /IBConnectionString.
func (d *Designer) ConnectionString() string { return d.connectionString() }

// commonParams: DESIGNER, общие флаги, строка соединения, затем флаги хранилища.
func (d *Designer) commonParams() []string {
	params := append([]string{ModeDesigner}, d.base.commonParams()...)
	params = append(params, "/IBConnectionString "+d.connectionString())

	if d.repo.Dir != "" {
		params = append(params,
			"/ConfigurationRepositoryF "+d.repo.Dir,
			"/ConfigurationRepositoryN "+d.repo.User,
		)
		if d.repo.Password != "" {
			params = append(params, "/ConfigurationRepositoryP "+d.repo.Password)
		}
	}
	return params
}

// DumpOptions - параметры выгрузки конфигурации в файлы.
type DumpOptions struct {
	// Format - формат выгрузки. Пусто = не указывать.
	Format ConfigDumpFormat
	// NoUpdate отменяет -update (обновление ранее сделанной выгрузки).
	NoUpdate bool
	// NoForce отменяет -force (полная выгрузка при смене версии формата).
	NoForce bool
}

// UpdateFromRepoOptions - параметры обновления конфигурации из хранилища.
type UpdateFromRepoOptions struct {
	// Version - номер версии хранилища; 0 = не указывать.
	Version int
	// Revised получает захваченные объекты.
	Revised bool
	// Force подтверждает получение новых и удаление существующих объектов.
	Force bool
	// Objects - файл со списком объектов операции.
	Objects string
}

// CreateRepoOptions - параметры создания хранилища.
// Нулевое значение разрешает изменение конфигурации с правилами
// ObjectIsEditableSupportEnabled и подключает базу к хранилищу.
type CreateRepoOptions struct {
	// DenyConfigurationChanges отменяет -AllowConfigurationChanges и правила поддержки.
	DenyConfigurationChanges bool
	// ChangesAllowedRule - правило для объектов, изменение которых разрешено поставщиком.
	ChangesAllowedRule SupportRule
	// ChangesNotRecommendedRule - правило для объектов, изменение которых не рекомендуется.
	ChangesNotRecommendedRule SupportRule
	// NoBind не подключает базу к созданному хранилищу.
	NoBind bool
}

func (d *Designer) loadCfgParams(file string) []string {
	return append(d.commonParams(), "/LoadCfg "+file)
}

// LoadCfg загружает конфигурацию из файла .cf или .cfe.
func (d *Designer) LoadCfg(ctx context.Context, file string) bool {
	return d.run(ctx, "LoadCfg", d.loadCfgParams(file))
}

func (d *Designer) dumpConfigToFilesParams(dir string, opts DumpOptions) []string {
	params := append(d.commonParams(), "/DumpConfigToFiles "+dir)
	if opts.Format != "" {
		params = append(params, "-Format "+string(opts.Format))
	}
	if !opts.NoUpdate {
		params = append(params, "-update")
	}
	if !opts.NoForce {
		params = append(params, "-force")
	}
	return params
}

// DumpConfigToFiles выгружает конфигурацию в каталог dir.
func (d *Designer) DumpConfigToFiles(ctx context.Context, dir string, opts DumpOptions) bool {
	return d.run(ctx, "DumpConfigToFiles", d.dumpConfigToFilesParams(dir, opts))
}

func (d *Designer) dumpRepoToFileParams(file, version string) []string {
	params := append(d.commonParams(), "/ConfigurationRepositoryDumpCfg "+file)
	if version != "" {
		params = append(params, "-v "+version)
	}
	return params
}

// DumpRepoToFile сохраняет конфигурацию из хранилища в файл.
// Пустая версия или -1 означает последнюю версию.
func (d *Designer) DumpRepoToFile(ctx context.Context, file, version string) bool {
	return d.run(ctx, "DumpRepoToFile", d.dumpRepoToFileParams(file, version))
}

func (d *Designer) updateFromRepoParams(opts UpdateFromRepoOptions) []string {
	params := append(d.commonParams(), "/ConfigurationRepositoryUpdateCfg")
	if opts.Version != 0 {
		params = append(params, "-v "+strconv.Itoa(opts.Version))
	}
	if opts.Revised {
		params = append(params, "-revised")
	}
	if opts.Force {
		params = append(params, "-force")
	}
	if opts.Objects != "" {
		params = append(params, `-objects "`+opts.Objects+`"`)
	}
	if d.updateDBCfg.Update {
		params = append(params, "/UpdateDBCfg")
		if !d.updateDBCfg.SkipServer {
			params = append(params, "-Server")
		}
	}
	return params
}

// UpdateFromRepo обновляет конфигурацию из хранилища.
func (d *Designer) UpdateFromRepo(ctx context.Context, opts UpdateFromRepoOptions) bool {
	return d.run(ctx, "UpdateFromRepo", d.updateFromRepoParams(opts))
}

func (d *Designer) createRepoParams(opts CreateRepoOptions) []string {
	params := append(d.commonParams(), "/ConfigurationRepositoryCreate")
	if !opts.DenyConfigurationChanges {
		allowed := opts.ChangesAllowedRule
		if allowed == "" {
			allowed = SupportObjectIsEditableSupportEnabled
		}
		notRecommended := opts.ChangesNotRecommendedRule
		if notRecommended == "" {
			notRecommended = SupportObjectIsEditableSupportEnabled
		}
		params = append(params,
			"-AllowConfigurationChanges",
			"-ChangesAllowedRule "+string(allowed),
			"-ChangesNotRecommendedRule "+string(notRecommended),
		)
	}
	if opts.NoBind {
		params = append(params, "-NoBind")
	}
	return params
}

// CreateRepo создаёт хранилище конфигурации по параметрам SetRepoParams.
func (d *Designer) CreateRepo(ctx context.Context, opts CreateRepoOptions) bool {
	return d.run(ctx, "CreateRepo", d.createRepoParams(opts))
}

func (d *Designer) setRepoLabelParams(label string, version int, comment string) []string {
	params := append(d.commonParams(), "/ConfigurationRepositorySetLabel", "-name "+label)
	if version != 0 {
		params = append(params, "-v "+strconv.Itoa(version))
	}
	for _, line := range splitLines(comment) {
		params = append(params, "-comment "+line)
	}
	return params
}

// SetRepoLabel ставит метку label на версию хранилища version (0 = не указывать).
// Каждая строка комментария передаётся отдельным -comment.
func (d *Designer) SetRepoLabel(ctx context.Context, label string, version int, comment string) bool {
	return d.run(ctx, "SetRepoLabel", d.setRepoLabelParams(label, version, comment))
}

// splitLines делит текст по \n, \r\n и \r без завершающей пустой строки.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
