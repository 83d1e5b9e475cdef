package infobase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/Kargones/v8run/internal/pkg/logging"
	"github.com/Kargones/v8run/internal/pkg/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

// recordingLogger запоминает все сообщения.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.add("DEBUG", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.add("INFO", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.add("WARN", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.add("ERROR", msg, args) }
func (l *recordingLogger) With(_ ...any) logging.Logger  { return l }

func (l *recordingLogger) byLevel(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

// fakeRunner возвращает заданный код и запоминает последний вызов.
type fakeRunner struct {
	code int
	err  error
	name string
	args []string
	// before вызывается перед возвратом, например чтобы записать файл лога.
	before func()
}

func (r *fakeRunner) Run(_ context.Context, name string, args []string) (int, error) {
	r.name = name
	r.args = append([]string(nil), args...)
	if r.before != nil {
		r.before()
	}
	return r.code, r.err
}

func newTestExecutor(r ProcessRunner) (*Executor, *recordingLogger) {
	log := &recordingLogger{}
	return NewExecutor(r, scope.New(log, nil)), log
}

func TestCreation_FileBaseDefaults(t *testing.T) {
	c := NewCreation(Target{Dir: `D:\R`}, nil)
	assert.Equal(t,
		[]string{"CREATEINFOBASE", "FILE='D:\\R';", "/DisableStartupMessages", "/DisableStartupDialogs"},
		c.createBaseParams("", ""))
}

func TestCreation_ServerBaseFullConnectionString(t *testing.T) {
	c := NewCreation(Target{Server: "srv", Infobase: "ib"}, nil)
	c.SetAuthParams(AuthParams{User: "admin", Password: "secret"})
	c.SetOtherParams(OtherParams{Locale: "ru"})
	c.SetServerDBParams(ServerDBParams{
		Type:             DBServerMSSQL,
		ServerName:       "sql",
		Database:         "db",
		User:             "sa",
		Password:         "pw",
		YearOffset:       SQLYearOffset2000,
		CreateIfNotExist: true,
	})
	c.SetClusterParams(ClusterParams{DenyScheduledJobs: true, AdminUser: "ca", AdminPassword: "cp"})

	want := "Srvr='srv';Ref='ib';Usr='admin';Pwd='secret';Locale=ru;" +
		"DBMS=MSSQLServer;DBSrvr='sql';DB='db';DBUID='sa';SQLYOffs=2000;DBPwd='pw';" +
		"CrSQLDB=Y;SchJobDn=Y;SUsr='ca';SPwd='cp';"
	assert.Equal(t, want, c.ConnectionString())
}

func TestCreation_FileFormatAndListOptions(t *testing.T) {
	c := NewCreation(Target{Dir: "/tmp/ib"}, nil)
	c.SetFileDBParams(FileDBParams{Format: FileDBFormat838})

	params := c.createBaseParams("Тестовая база", "/tmp/1Cv8.dt")
	assert.Equal(t, "FILE='/tmp/ib';DBFormat=8.3.8;", params[1])
	assert.Equal(t, []string{"/AddInList Тестовая база", "/UseTemplate /tmp/1Cv8.dt"}, params[len(params)-2:])
}

func TestConnectionString_TargetPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   string
	}{
		{"dir wins", Target{Dir: "d", Server: "s", Infobase: "i", WSURL: "w"}, "FILE='d';"},
		{"server over ws", Target{Server: "s", Infobase: "i", WSURL: "w"}, "Srvr='s';Ref='i';"},
		{"ws only", Target{WSURL: "http://host/ib"}, "ws='http://host/ib';"},
		{"empty", Target{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDesigner(tt.target, nil).ConnectionString())
		})
	}
}

func TestCommonParams_Order(t *testing.T) {
	d := NewDesigner(Target{Dir: "d"}, nil)
	d.SetOtherParams(OtherParams{AccessCode: "123", Extra: []string{"/DisplayAllFunctions"}})
	d.SetAuthParams(AuthParams{DisableOSAuth: true})
	d.SetDialogSettings(DialogSettings{Visible: true})
	d.SetLogIBParams(LogIBParams{FileName: "out.log", NoTruncate: true, ResultFileName: "res.txt"})

	assert.Equal(t, []string{
		"DESIGNER",
		"/UC 123",
		"/WA-",
		"/Visible",
		"/DisableStartupMessages",
		"/DisableStartupDialogs",
		"/Out out.log",
		"-NoTruncate",
		"/DumpResult res.txt",
		"/DisplayAllFunctions",
		"/IBConnectionString FILE='d';",
	}, d.commonParams())
}

func TestCommonParams_DialogsShown(t *testing.T) {
	d := NewDesigner(Target{Dir: "d"}, nil)
	d.SetDialogSettings(DialogSettings{ShowStartupMessages: true, ShowStartupDialogs: true})
	d.SetLogIBParams(LogIBParams{NoTruncate: true})

	// -NoTruncate без /Out не имеет смысла и не выводится.
	assert.Equal(t, []string{"DESIGNER", "/IBConnectionString FILE='d';"}, d.commonParams())
}

func TestSetOtherParams_CopiesExtra(t *testing.T) {
	extra := []string{"/A"}
	d := NewDesigner(Target{Dir: "d"}, nil)
	d.SetOtherParams(OtherParams{Extra: extra})
	extra[0] = "/B"
	assert.Contains(t, d.commonParams(), "/A")
}

func TestDesigner_RepoParams(t *testing.T) {
	t.Run("without dir nothing is emitted", func(t *testing.T) {
		d := NewDesigner(Target{Dir: "d"}, nil)
		d.SetRepoParams(RepoParams{User: "u", Password: "p"})
		for _, p := range d.commonParams() {
			assert.NotContains(t, p, "ConfigurationRepository")
		}
	})

	t.Run("password only when set", func(t *testing.T) {
		d := NewDesigner(Target{Dir: "d"}, nil)
		d.SetRepoParams(RepoParams{Dir: "tcp://repo/x", User: "u"})
		params := d.commonParams()
		assert.Equal(t, []string{"/ConfigurationRepositoryF tcp://repo/x", "/ConfigurationRepositoryN u"}, params[len(params)-2:])

		d.SetRepoParams(RepoParams{Dir: "tcp://repo/x", User: "u", Password: "p"})
		params = d.commonParams()
		assert.Equal(t, "/ConfigurationRepositoryP p", params[len(params)-1])
	})
}

func TestDesigner_LoadCfg(t *testing.T) {
	d := NewDesigner(Target{Dir: "d"}, nil)
	params := d.loadCfgParams("/tmp/1Cv8.cf")
	assert.Equal(t, "/LoadCfg /tmp/1Cv8.cf", params[len(params)-1])
}

func TestDesigner_DumpConfigToFiles(t *testing.T) {
	d := NewDesigner(Target{Dir: "d"}, nil)
	base := len(d.commonParams())

	params := d.dumpConfigToFilesParams("/tmp/src", DumpOptions{})
	assert.Equal(t, []string{"/DumpConfigToFiles /tmp/src", "-update", "-force"}, params[base:])

	params = d.dumpConfigToFilesParams("/tmp/src", DumpOptions{Format: ConfigDumpHierarchical, NoUpdate: true, NoForce: true})
	assert.Equal(t, []string{"/DumpConfigToFiles /tmp/src", "-Format Hierarchical"}, params[base:])
}

func TestDesigner_DumpRepoToFile(t *testing.T) {
	d := NewDesigner(Target{Dir: "d"}, nil)
	base := len(d.commonParams())

	assert.Equal(t, []string{"/ConfigurationRepositoryDumpCfg f.cf"}, d.dumpRepoToFileParams("f.cf", "")[base:])
	assert.Equal(t, []string{"/ConfigurationRepositoryDumpCfg f.cf", "-v 12"}, d.dumpRepoToFileParams("f.cf", "12")[base:])
}

func TestDesigner_UpdateFromRepo(t *testing.T) {
	d := NewDesigner(Target{Dir: "d"}, nil)
	base := len(d.commonParams())

	assert.Equal(t, []string{"/ConfigurationRepositoryUpdateCfg"}, d.updateFromRepoParams(UpdateFromRepoOptions{})[base:])

	d.SetUpdateDBCfgParams(UpdateDBCfgParams{Update: true})
	got := d.updateFromRepoParams(UpdateFromRepoOptions{Version: 5, Revised: true, Force: true, Objects: "obj.xml"})
	assert.Equal(t, []string{
		"/ConfigurationRepositoryUpdateCfg",
		"-v 5",
		"-revised",
		"-force",
		`-objects "obj.xml"`,
		"/UpdateDBCfg",
		"-Server",
	}, got[base:])

	d.SetUpdateDBCfgParams(UpdateDBCfgParams{Update: true, SkipServer: true})
	got = d.updateFromRepoParams(UpdateFromRepoOptions{})
	assert.Equal(t, []string{"/ConfigurationRepositoryUpdateCfg", "/UpdateDBCfg"}, got[base:])
}

func TestDesigner_CreateRepo(t *testing.T) {
	d := NewDesigner(Target{Dir: "d"}, nil)
	base := len(d.commonParams())

	assert.Equal(t, []string{
		"/ConfigurationRepositoryCreate",
		"-AllowConfigurationChanges",
		"-ChangesAllowedRule ObjectIsEditableSupportEnabled",
		"-ChangesNotRecommendedRule ObjectIsEditableSupportEnabled",
	}, d.createRepoParams(CreateRepoOptions{})[base:])

	assert.Equal(t, []string{
		"/ConfigurationRepositoryCreate",
		"-AllowConfigurationChanges",
		"-ChangesAllowedRule ObjectNotEditable",
		"-ChangesNotRecommendedRule ObjectNotSupported",
		"-NoBind",
	}, d.createRepoParams(CreateRepoOptions{
		ChangesAllowedRule:        SupportObjectNotEditable,
		ChangesNotRecommendedRule: SupportObjectNotSupported,
		NoBind:                    true,
	})[base:])

	assert.Equal(t, []string{"/ConfigurationRepositoryCreate"},
		d.createRepoParams(CreateRepoOptions{DenyConfigurationChanges: true})[base:])
}

func TestDesigner_SetRepoLabel(t *testing.T) {
	d := NewDesigner(Target{Dir: "d"}, nil)
	base := len(d.commonParams())

	assert.Equal(t, []string{
		"/ConfigurationRepositorySetLabel",
		"-name v1.0",
		"-v 3",
		"-comment первая",
		"-comment вторая",
	}, d.setRepoLabelParams("v1.0", 3, "первая\r\nвторая\n")[base:])

	assert.Equal(t, []string{"/ConfigurationRepositorySetLabel", "-name v1.0"},
		d.setRepoLabelParams("v1.0", 0, "")[base:])
}

func TestEnterprise_Params(t *testing.T) {
	e := NewEnterprise(Target{Server: "s", Infobase: "i"}, nil)
	e.SetAuthParams(AuthParams{User: "u"})
	e.SetLaunchParams(LaunchParams{Param: "ЗапуститьОбновление"})

	assert.Equal(t, []string{
		"ENTERPRISE",
		"/IBConnectionString Srvr='s';Ref='i';Usr='u';",
		"/DisableStartupMessages",
		"/DisableStartupDialogs",
		"/C ЗапуститьОбновление",
	}, e.commonParams())
}

func TestExecutor_Success(t *testing.T) {
	r := &fakeRunner{}
	exec, log := newTestExecutor(r)

	d := NewDesigner(Target{Dir: "d"}, exec)
	d.SetPlatformParams(PlatformParams{ExeName: "1cv8"})
	d.SetAuthParams(AuthParams{User: "u", Password: "secret"})

	assert.True(t, d.LoadCfg(context.Background(), "1.cf"))
	assert.Equal(t, "1cv8", r.name)
	assert.Equal(t, "DESIGNER", r.args[0])

	debug := log.byLevel("DEBUG")
	require.Len(t, debug, 1)
	assert.True(t, strings.HasPrefix(debug[0], "Параметры запуска: 1cv8 DESIGNER"))
	assert.NotContains(t, debug[0], "secret")

	info := log.byLevel("INFO")
	require.Len(t, info, 2)
	assert.Equal(t, "LoadCfg. Началось", info[0])
	assert.True(t, strings.HasSuffix(info[1], ". Успешно"))
}

func TestExecutor_StartFailure(t *testing.T) {
	exec, log := newTestExecutor(&fakeRunner{code: -1, err: errors.New("exec: not found")})

	assert.False(t, exec.Execute(context.Background(), PlatformParams{ExeName: "nope"}, "", []string{"DESIGNER"}))
	assert.Len(t, log.byLevel("ERROR"), 1)
}

func TestExecutor_FailureWithoutLogFile(t *testing.T) {
	exec, log := newTestExecutor(&fakeRunner{code: 101})

	assert.False(t, exec.Execute(context.Background(), PlatformParams{ExeName: "1cv8"}, "", []string{"DESIGNER"}))
	assert.Equal(t, []string{"Код результата: 101:  "}, log.byLevel("ERROR"))
}

func TestExecutor_LogFileEncoding(t *testing.T) {
	const text = "Ошибка загрузки конфигурации"

	cp1251, err := charmap.Windows1251.NewEncoder().String(text)
	require.NoError(t, err)

	tests := []struct {
		name    string
		version string
		data    []byte
	}{
		{"utf8 bom on 8.3.18", "8.3.18.1208", append([]byte("\xEF\xBB\xBF"), []byte(text+"\r\n")...)},
		{"utf8 bom on empty version", "", append([]byte("\xEF\xBB\xBF"), []byte(text)...)},
		{"cp1251 on 8.3.17", "8.3.17.2256", []byte(cp1251)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), "out.log")
			r := &fakeRunner{code: 1, before: func() {
				require.NoError(t, os.WriteFile(logFile, tt.data, 0o600))
			}}
			exec, log := newTestExecutor(r)

			ok := exec.Execute(context.Background(), PlatformParams{ExeName: "1cv8", Version: tt.version}, logFile, []string{"DESIGNER"})
			assert.False(t, ok)
			assert.Equal(t, []string{fmt.Sprintf("Код результата: 1: %s ", text)}, log.byLevel("ERROR"))
		})
	}
}

func TestExecutor_UnparsableVersionWarns(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "out.log")
	require.NoError(t, os.WriteFile(logFile, []byte("ok"), 0o600))
	exec, log := newTestExecutor(&fakeRunner{code: 1})

	exec.Execute(context.Background(), PlatformParams{ExeName: "1cv8", Version: "latest"}, logFile, []string{"DESIGNER"})
	assert.Len(t, log.byLevel("WARN"), 1)
	assert.Equal(t, []string{"Код результата: 1: ok "}, log.byLevel("ERROR"))
}

func TestExecutor_LogFileMissing(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "absent.log")
	exec, log := newTestExecutor(&fakeRunner{code: 1})

	exec.Execute(context.Background(), PlatformParams{ExeName: "1cv8"}, logFile, []string{"DESIGNER"})
	errs := log.byLevel("ERROR")
	require.Len(t, errs, 1)
	assert.Equal(t, "Код результата: 1:  Для получения текста ошибки не найден файл лога 1С: "+logFile, errs[0])
}

func TestExecutor_LogFileIsDirectory(t *testing.T) {
	dir := t.TempDir()
	exec, log := newTestExecutor(&fakeRunner{code: 1})

	exec.Execute(context.Background(), PlatformParams{ExeName: "1cv8"}, dir, []string{"DESIGNER"})
	errs := log.byLevel("ERROR")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "не удалось прочитать файла лога 1С: "+dir+". Ошибка:")
}

func TestExecutor_LogFileNoPermission(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("права на файл не ограничивают текущего пользователя")
	}
	logFile := filepath.Join(t.TempDir(), "locked.log")
	require.NoError(t, os.WriteFile(logFile, []byte("x"), 0o000))
	exec, log := newTestExecutor(&fakeRunner{code: 1})

	exec.Execute(context.Background(), PlatformParams{ExeName: "1cv8"}, logFile, []string{"DESIGNER"})
	errs := log.byLevel("ERROR")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "не хватило прав для открытия файла лога 1С: "+logFile)
}

func TestOperation_FailureLogged(t *testing.T) {
	exec, log := newTestExecutor(&fakeRunner{code: 1})
	c := NewCreation(Target{Dir: "d"}, exec)

	assert.False(t, c.CreateBase(context.Background(), "", ""))
	errs := log.byLevel("ERROR")
	require.Len(t, errs, 2)
	assert.True(t, strings.HasPrefix(errs[1], "CreateBase. Выполнилось за "))
	assert.True(t, strings.HasSuffix(errs[1], ". Неуспешно"))
}

func TestParsePlatformVersion(t *testing.T) {
	v, err := parsePlatformVersion("8.3.10.2753")
	require.NoError(t, err)
	assert.Equal(t, "8.3.10", v.String())

	_, err = parsePlatformVersion("abc")
	assert.Error(t, err)
}

func TestLogFileNameGenerator(t *testing.T) {
	g := NewLogFileNameGenerator("/var/log/run.20240101120000.IB")
	assert.Equal(t, "/var/log/run.20240101120000.IB1.log", g.Next())
	assert.Equal(t, "/var/log/run.20240101120000.IB2.log", g.Next())
	assert.Equal(t, "/var/log/run.20240101120000.IB3.log", g.Next())
}

func TestParseEnums(t *testing.T) {
	got, err := ParseDBServerType("postgresql")
	require.NoError(t, err)
	assert.Equal(t, DBServerPostgreSQL, got)
	assert.True(t, got.Valid())

	_, err = ParseDBServerType("mysql")
	assert.Error(t, err)

	rule, err := ParseSupportRule(" objectnotsupported ")
	require.NoError(t, err)
	assert.Equal(t, SupportObjectNotSupported, rule)

	format, err := ParseConfigDumpFormat("plain")
	require.NoError(t, err)
	assert.Equal(t, ConfigDumpPlain, format)

	assert.False(t, FileDBFormat("9.0").Valid())
	assert.True(t, SQLYearOffset2000.Valid())
}
