package params

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func writeIni(t *testing.T, content string) string {
	t.Helper()
	encoded, err := charmap.Windows1251.NewEncoder().String(content)
	require.NoError(t, err)
	fileName := filepath.Join(t.TempDir(), "params.ini")
	require.NoError(t, os.WriteFile(fileName, []byte(encoded), 0o600))
	return fileName
}

var fixedNow = func() time.Time { return time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC) }

const sampleIni = `[common]
ini_version = 3
log_dir = /var/log/v8run
ExeName = /opt/1cv8/x86_64/8.3.22.1709/1cv8

[base]
dir = /srv/bases/Бухгалтерия
User = Администратор
use_os_auth = false

[repo]
version = 12
`

func TestLoad(t *testing.T) {
	fileName := writeIni(t, sampleIni)

	p, err := Load(fileName, "/opt/scripts/load-cfg.py", "3", WithClock(fixedNow))
	require.NoError(t, err)

	assert.Equal(t, "3", p.Value(KeyIniVersion))
	assert.Equal(t, "/opt/1cv8/x86_64/8.3.22.1709/1cv8", p.Value("exename"))
	assert.Equal(t, "/srv/bases/Бухгалтерия", p.Value("base_dir"))
	assert.Equal(t, "Администратор", p.Value("BASE_USER"))

	n, err := p.Int("repo_version")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	assert.Equal(t, filepath.Join("/var/log/v8run", "load-cfg.20240305070809.log"), p.LogFileName)
	assert.Equal(t, filepath.Join("/var/log/v8run", "load-cfg.20240305070809.IB"), p.IBLogFileNamePrefix)
}

func TestLoad_DefaultLogDir(t *testing.T) {
	fileName := writeIni(t, "[common]\nini_version=1\n")

	p, err := Load(fileName, "dump-cfg-files", "1", WithClock(fixedNow))
	require.NoError(t, err)
	assert.Equal(t, "dump-cfg-files.20240305070809.log", p.LogFileName)
}

func TestLoad_RootKeysAreTopLevel(t *testing.T) {
	fileName := writeIni(t, "ini_version=1\n[db]\nname=acc\n")

	p, err := Load(fileName, "x", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"db_name", "ini_version"}, p.Keys())
}

func TestLoad_MissingVersion(t *testing.T) {
	fileName := writeIni(t, "[common]\nlog_dir=/tmp\n")

	_, err := Load(fileName, "x", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrongParametersFileVersion))
}

func TestLoad_WrongVersion(t *testing.T) {
	fileName := writeIni(t, "[common]\nini_version=2\n")

	_, err := Load(fileName, "x", "1")
	require.ErrorIs(t, err, ErrWrongParametersFileVersion)
	assert.Contains(t, err.Error(), "Требуется: 1, фактическая: 2")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.ini"), "x", "1")
	require.ErrorIs(t, err, ErrCouldNotReadParametersFile)
}

func TestAccessors(t *testing.T) {
	p := &Params{values: map[string]string{
		"a_yes":   "Yes",
		"a_one":   "1",
		"a_da":    "да",
		"a_no":    "false",
		"a_empty": "",
		"n_bad":   "x1",
		"extra":   "/A  /B /C",
	}}

	assert.True(t, p.Bool("a_yes"))
	assert.True(t, p.Bool("a_one"))
	assert.True(t, p.Bool("a_da"))
	assert.False(t, p.Bool("a_no"))
	assert.False(t, p.Bool("absent"))
	assert.True(t, p.BoolOr("a_empty", true))
	assert.False(t, p.BoolOr("a_no", true))

	_, err := p.Int("n_bad")
	assert.Error(t, err)
	n, err := p.Int("absent")
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, []string{"/A", "/B", "/C"}, p.Fields("extra"))
	assert.Equal(t, "def", p.ValueOr("a_empty", "def"))

	_, ok := p.Get("absent")
	assert.False(t, ok)

	err = p.Require("a_yes", "absent", "a_empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent, a_empty")
}

func TestLoad_TrailingBackslashAndQuotes(t *testing.T) {
	fileName := writeIni(t, "[common]\r\nini_version = 1\r\nlog_dir = C:\\logs\\\r\nexename = C:\\1cv8.exe\r\n"+
		"[base]\r\ndir = D:\\bases\\R\\\r\nuser = admin\r\n"+
		"[enterprise]\r\nlaunch_param = \"abc\"\r\n")

	p, err := Load(fileName, "run-enterprise", "1", WithClock(fixedNow))
	require.NoError(t, err)

	assert.Equal(t, `C:\logs\`, p.Value(KeyLogDir))
	assert.Equal(t, `C:\1cv8.exe`, p.Value("exename"))
	assert.Equal(t, `D:\bases\R\`, p.Value("base_dir"))
	assert.Equal(t, "admin", p.Value("base_user"))
	assert.Equal(t, `"abc"`, p.Value("enterprise_launch_param"))
}
