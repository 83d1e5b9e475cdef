package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Kargones/v8run/internal/command"
	"github.com/Kargones/v8run/internal/command/handlers"
	"github.com/Kargones/v8run/internal/config"
	"github.com/Kargones/v8run/internal/constants"
	"github.com/Kargones/v8run/internal/di"
	"github.com/Kargones/v8run/internal/pkg/apperrors"
	"github.com/Kargones/v8run/internal/pkg/metrics"
	"github.com/Kargones/v8run/internal/pkg/output"
	"github.com/Kargones/v8run/internal/pkg/scope"
	"github.com/Kargones/v8run/internal/pkg/tracing"

	"github.com/spf13/cobra"
)

var (
	registerOnce sync.Once
	errRegister  error
)

// cliOptions - значения глобальных флагов. Пустое значение не переопределяет BR_*.
type cliOptions struct {
	paramsFile    string
	paramsVersion string
	configApp     string
	output        string
}

// run разбирает аргументы, выполняет команду и возвращает exit code.
// Вынесена из main(), чтобы os.Exit() вызывался после отработки defer-ов
// (tracer shutdown, push метрик).
func run(args []string, stdout, stderr io.Writer) int {
	registerOnce.Do(func() { errRegister = handlers.RegisterAll() })
	if errRegister != nil {
		fmt.Fprintf(stderr, "Ошибка регистрации команд: %v\n", errRegister)
		return constants.ExitFailure
	}

	// Без аргументов команда берётся из BR_COMMAND.
	if len(args) == 0 {
		if name := os.Getenv("BR_COMMAND"); name != "" {
			args = []string{name}
		}
	}

	if err := checkCommand(args); err != nil {
		fmt.Fprintf(stderr, "Ошибка: %v\n", err)
		fmt.Fprintln(stderr, "Список команд: v8run --help")
		return constants.ExitUsage
	}

	exitCode := constants.ExitOK
	root := newRootCmd(&cliOptions{}, stdout, stderr, &exitCode)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Ошибка: %v\n", err)
		fmt.Fprintf(stderr, "Список команд: %s --help\n", root.Name())
		return constants.ExitUsage
	}
	return exitCode
}

// checkCommand проверяет, что первый позиционный аргумент - зарегистрированная команда.
func checkCommand(args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") || args[0] == "help" {
		return nil
	}
	if _, ok := command.Get(args[0]); !ok {
		return apperrors.NewAppError(apperrors.ErrCommandNotFound, fmt.Sprintf("неизвестная команда %q", args[0]), nil)
	}
	return nil
}

func newRootCmd(opts *cliOptions, stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "v8run",
		Short:         "Запуск платформы 1С:Предприятие в пакетном режиме по файлу параметров",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&opts.paramsFile, "params", "", "файл параметров (ini, Windows-1251); по умолчанию BR_PARAMS_FILE")
	pf.StringVar(&opts.paramsVersion, "params-version", "", "требуемый ini_version файла параметров; по умолчанию BR_PARAMS_VERSION")
	pf.StringVar(&opts.configApp, "config", "", "файл app.yaml; по умолчанию BR_CONFIG_APP")
	pf.StringVarP(&opts.output, "output", "o", "", "формат вывода: text или json; по умолчанию BR_OUTPUT_FORMAT")

	for _, name := range command.Names() {
		h, ok := command.Get(name)
		if !ok {
			continue
		}
		root.AddCommand(&cobra.Command{
			Use:   h.Name(),
			Short: h.Description(),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				*exitCode = execute(cmd.Context(), h, opts, stdout, stderr)
				return nil
			},
		})
	}
	return root
}

// execute загружает конфигурацию, инициализирует зависимости и выполняет обработчик.
func execute(ctx context.Context, h command.Handler, opts *cliOptions, stdout, stderr io.Writer) int {
	bootstrap := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load(bootstrap, config.Overrides{
		Command:       h.Name(),
		ParamsFile:    opts.paramsFile,
		ParamsVersion: opts.paramsVersion,
		ConfigApp:     opts.configApp,
		OutputFormat:  opts.output,
	})
	if err != nil {
		bootstrap.Error("Не удалось загрузить конфигурацию приложения",
			slog.String("command", h.Name()),
			slog.String("error", err.Error()),
		)
		format := opts.output
		if format == "" {
			format = os.Getenv("BR_OUTPUT_FORMAT")
		}
		_ = writeResult(stdout, output.NewWriter(format), h.Name(), nil, err, 0, "") //nolint:errcheck // stdout
		return constants.ExitConfig
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		bootstrap.Error("Ошибка инициализации зависимостей", slog.String("error", err.Error()))
		return constants.ExitConfig
	}
	log := app.Scope.Log

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.TracerShutdown(shutdownCtx); err != nil {
			log.Error("ошибка завершения tracing", slog.String("error", err.Error()))
		}
	}()

	ctx = tracing.WithTraceID(ctx, app.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, app.TraceID)

	log.Debug("Информация о сборке",
		slog.String("version", constants.Version),
		slog.String("commit", constants.Commit),
	)

	infobase := infobaseLabel(cfg)
	app.MetricsCollector.RecordCommandStart(cfg.Command, infobase)
	start := time.Now()

	var data any
	execErr := scope.Guard(log, func() error {
		var handlerErr error
		scope.Measure(ctx, app.Scope, scope.ScriptName, func(ctx context.Context) bool {
			data, handlerErr = h.Execute(ctx, app.Deps)
			return handlerErr == nil
		})
		return handlerErr
	})

	recordMetrics(ctx, app.MetricsCollector, cfg.Command, infobase, start, execErr == nil)

	if execErr != nil {
		log.Error("Ошибка выполнения команды",
			slog.String("command", cfg.Command),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit),
		)
	}
	if err := writeResult(stdout, app.OutputWriter, cfg.Command, data, execErr, time.Since(start), app.TraceID); err != nil {
		log.Error("Ошибка вывода результата",
			slog.String("code", apperrors.ErrOutputFormat),
			slog.String("error", err.Error()),
		)
		if execErr == nil {
			return constants.ExitFailure
		}
	}
	return exitCodeOf(execErr)
}

// recordMetrics записывает результат выполнения команды и отправляет метрики в Pushgateway.
func recordMetrics(ctx context.Context, collector metrics.Collector, cmd, infobase string, start time.Time, success bool) {
	collector.RecordCommandEnd(cmd, infobase, time.Since(start), success)
	_ = collector.Push(ctx) //nolint:errcheck // ошибки push логируются внутри
}

func writeResult(w io.Writer, writer output.Writer, cmd string, data any, err error, elapsed time.Duration, traceID string) error {
	result := &output.Result{
		Status:  output.StatusSuccess,
		Command: cmd,
		Data:    data,
		Metadata: &output.Metadata{
			DurationMs: elapsed.Milliseconds(),
			TraceID:    traceID,
			APIVersion: output.APIVersion,
		},
	}
	if err != nil {
		code := apperrors.CodeOf(err)
		if code == "" {
			code = apperrors.ErrCommandExec
		}
		result.Status = output.StatusError
		result.Error = &output.ErrorInfo{Code: code, Message: err.Error()}
	}
	return writer.Write(w, result)
}

// exitCodeOf: ошибки конфигурации и файла параметров дают ExitConfig, остальные ExitFailure.
func exitCodeOf(err error) int {
	if err == nil {
		return constants.ExitOK
	}
	if errors.Is(err, scope.ErrPanicRecovered) {
		return constants.ExitFailure
	}
	code := apperrors.CodeOf(err)
	if strings.HasPrefix(code, "CONFIG.") || strings.HasPrefix(code, "PARAMS.") {
		return constants.ExitConfig
	}
	return constants.ExitFailure
}

// infobaseLabel - метка базы для метрик: имя на сервере, каталог или адрес веб-сервера.
func infobaseLabel(cfg *config.Config) string {
	if cfg.Params == nil {
		return ""
	}
	for _, key := range []string{constants.ParamBaseInfobase, constants.ParamBaseDir, constants.ParamBaseWS} {
		if v := cfg.Params.Value(key); v != "" {
			return v
		}
	}
	return ""
}
