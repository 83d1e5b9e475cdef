package infobase

import (
	"context"
	"strings"

	"github.com/Kargones/v8run/internal/pkg/scope"
)

// Ключевые слова режимов запуска. Режим обязан быть первым параметром,
// иначе платформа отвечает "Неопределен режим запуска".
const (
	ModeCreateInfobase = "CREATEINFOBASE"
	ModeDesigner       = "DESIGNER"
	ModeEnterprise     = "ENTERPRISE"
)

// base содержит параметры, общие для всех режимов запуска.
type base struct {
	target   Target
	auth     AuthParams
	dialogs  DialogSettings
	logIB    LogIBParams
	platform PlatformParams
	other    OtherParams
	exec     *Executor
}

func newBase(target Target, exec *Executor) base {
	if exec == nil {
		exec = NewExecutor(nil, scope.Scope{})
	}
	return base{target: target, exec: exec}
}

// SetAuthParams задаёт параметры аутентификации.
func (b *base) SetAuthParams(p AuthParams) { b.auth = p }

// SetDialogSettings задаёт параметры окон и диалогов.
func (b *base) SetDialogSettings(p DialogSettings) { b.dialogs = p }

// SetLogIBParams задаёт параметры служебного лога платформы.
func (b *base) SetLogIBParams(p LogIBParams) { b.logIB = p }

// SetPlatformParams задаёт исполняемый файл и версию платформы.
func (b *base) SetPlatformParams(p PlatformParams) { b.platform = p }

// SetOtherParams задаёт код доступа, локаль и произвольные параметры.
func (b *base) SetOtherParams(p OtherParams) {
	p.Extra = append([]string(nil), p.Extra...)
	b.other = p
}

// Target возвращает адрес базы.
func (b *base) Target() Target { return b.target }

func (b *base) connectionString() string {
	var sb strings.Builder
	writeBaseConnectionString(&sb, b.target, b.auth, b.other.Locale)
	return sb.String()
}

// commonParams возвращает общие флаги в фиксированном порядке, без режима и строки соединения.
func (b *base) commonParams() []string {
	var params []string

	if b.other.AccessCode != "" {
		params = append(params, "/UC "+b.other.AccessCode)
	}
	if b.auth.DisableOSAuth {
		params = append(params, "/WA-")
	}
	if b.dialogs.Visible {
		params = append(params, "/Visible")
	}
	if !b.dialogs.ShowStartupMessages {
		params = append(params, "/DisableStartupMessages")
	}
	if !b.dialogs.ShowStartupDialogs {
		params = append(params, "/DisableStartupDialogs")
	}
	if b.logIB.FileName != "" {
		params = append(params, "/Out "+b.logIB.FileName)
		if b.logIB.NoTruncate {
			params = append(params, "-NoTruncate")
		}
	}
	if b.logIB.ResultFileName != "" {
		params = append(params, "/DumpResult "+b.logIB.ResultFileName)
	}

	return append(params, b.other.Extra...)
}

// run выполняет params как измеряемую операцию name.
func (b *base) run(ctx context.Context, name string, params []string) bool {
	return scope.Measure(ctx, b.exec.Scope(), name, func(ctx context.Context) bool {
		return b.exec.Execute(ctx, b.platform, b.logIB.FileName, params)
	})
}
