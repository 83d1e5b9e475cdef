package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kargones/v8run/internal/constants"
	"github.com/Kargones/v8run/internal/pkg/apperrors"
	"github.com/Kargones/v8run/internal/pkg/output"
	"github.com/Kargones/v8run/internal/pkg/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv убирает BR_* переменные окружения, которые могли остаться от CI.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BR_COMMAND", "BR_PARAMS_FILE", "BR_PARAMS_VERSION", "BR_CONFIG_APP", "BR_OUTPUT_FORMAT"} {
		t.Setenv(key, "")
	}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// writeParams пишет файл параметров с секцией [common] и возвращает его путь.
func writeParams(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf("[common]\nini_version=1\nlog_dir=%s\n%s\n", dir, strings.Join(lines, "\n"))
	fileName := filepath.Join(dir, "params.ini")
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0o600))
	return fileName
}

func lookPath(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s не найден: %v", name, err)
	}
	return path
}

func decodeResult(t *testing.T, out string) output.Result {
	t.Helper()
	var result output.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result), "stdout должен содержать только JSON: %s", out)
	return result
}

func TestRun_NoArgsPrintsHelp(t *testing.T) {
	clearEnv(t)
	code, stdout, _ := runCLI(t)
	assert.Equal(t, constants.ExitOK, code)
	assert.Contains(t, stdout, "load-cfg")
	assert.Contains(t, stdout, "create-infobase")
}

func TestRun_UnknownCommand(t *testing.T) {
	clearEnv(t)
	code, _, stderr := runCLI(t, "store2db")
	assert.Equal(t, constants.ExitUsage, code)
	assert.Contains(t, stderr, "store2db")
}

func TestRun_UnknownFlag(t *testing.T) {
	clearEnv(t)
	code, _, _ := runCLI(t, "version", "--no-such-flag")
	assert.Equal(t, constants.ExitUsage, code)
}

func TestRun_VersionText(t *testing.T) {
	clearEnv(t)
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, constants.ExitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "v8run version "), stdout)
}

func TestRun_VersionJSON(t *testing.T) {
	clearEnv(t)
	code, stdout, _ := runCLI(t, "version", "--output", "json")
	require.Equal(t, constants.ExitOK, code)

	result := decodeResult(t, stdout)
	assert.Equal(t, output.StatusSuccess, result.Status)
	assert.Equal(t, constants.ActVersion, result.Command)
	require.NotNil(t, result.Metadata)
	assert.Len(t, result.Metadata.TraceID, 32)
	assert.Equal(t, output.APIVersion, result.Metadata.APIVersion)
}

func TestRun_CommandFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BR_COMMAND", constants.ActVersion)
	t.Setenv("BR_OUTPUT_FORMAT", "json")

	code, stdout, _ := runCLI(t)
	require.Equal(t, constants.ExitOK, code)
	assert.Equal(t, constants.ActVersion, decodeResult(t, stdout).Command)
}

func TestRun_UnknownCommandFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BR_COMMAND", "sq-scan-branch")

	code, _, stderr := runCLI(t)
	assert.Equal(t, constants.ExitUsage, code)
	assert.Contains(t, stderr, apperrors.ErrCommandNotFound)
	assert.Contains(t, stderr, "sq-scan-branch")
}

func TestRun_MissingParamsFile(t *testing.T) {
	clearEnv(t)
	code, stdout, _ := runCLI(t, "load-cfg", "-o", "json")
	assert.Equal(t, constants.ExitConfig, code)

	result := decodeResult(t, stdout)
	assert.Equal(t, output.StatusError, result.Status)
	require.NotNil(t, result.Error)
	assert.Equal(t, apperrors.ErrParamsKeyMissing, result.Error.Code)
}

func TestRun_ParamsVersionMismatch(t *testing.T) {
	clearEnv(t)
	paramsFile := writeParams(t, "base_dir=/tmp/base")

	code, stdout, _ := runCLI(t, "load-cfg", "--params", paramsFile, "--params-version", "2", "-o", "json")
	assert.Equal(t, constants.ExitConfig, code)

	result := decodeResult(t, stdout)
	require.NotNil(t, result.Error)
	assert.Equal(t, apperrors.ErrParamsVersionMismatch, result.Error.Code)
	assert.Contains(t, result.Error.Message, "Требуется: 2, фактическая: 1")
}

func TestRun_MissingAppConfig(t *testing.T) {
	clearEnv(t)
	code, _, _ := runCLI(t, "version", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, constants.ExitConfig, code)
}

func TestRun_EnterpriseSuccess(t *testing.T) {
	clearEnv(t)
	paramsFile := writeParams(t,
		"exename="+lookPath(t, "true"),
		"base_dir=/tmp/base",
		"ib_log=0",
	)

	code, stdout, _ := runCLI(t, constants.ActRunEnterprise, "--params", paramsFile, "--params-version", "1", "-o", "json")
	require.Equal(t, constants.ExitOK, code, stdout)

	result := decodeResult(t, stdout)
	assert.Equal(t, output.StatusSuccess, result.Status)
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Run", data["operation"])
	assert.Equal(t, "FILE='/tmp/base';", data["infobase"])
}

func TestRun_PlatformEnvFromAppConfig(t *testing.T) {
	clearEnv(t)
	lookPath(t, "sh")
	dir := t.TempDir()
	marker := filepath.Join(dir, "env.txt")
	exe := filepath.Join(dir, "1cv8")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\nprintf '%s' \"$V8RUN_MARK\" > \"$V8RUN_MARK_FILE\"\n"), 0o700))
	appYaml := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(appYaml, []byte(fmt.Sprintf("env:\n  V8RUN_MARK: headless\n  V8RUN_MARK_FILE: %s\n", marker)), 0o600))
	paramsFile := writeParams(t, "exename="+exe, "base_dir=/tmp/base", "ib_log=0")

	code, stdout, _ := runCLI(t, constants.ActRunEnterprise, "--params", paramsFile, "--params-version", "1", "--config", appYaml, "-o", "json")
	require.Equal(t, constants.ExitOK, code, stdout)

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "headless", string(data))
}

func TestRun_DesignerFailure(t *testing.T) {
	clearEnv(t)
	paramsFile := writeParams(t,
		"exename="+lookPath(t, "false"),
		"base_dir=/tmp/base",
		"cfg_file=/tmp/1Cv8.cf",
	)
	t.Setenv("BR_PARAMS_FILE", paramsFile)
	t.Setenv("BR_PARAMS_VERSION", "1")

	code, stdout, _ := runCLI(t, constants.ActLoadCfg, "-o", "json")
	assert.Equal(t, constants.ExitFailure, code)

	result := decodeResult(t, stdout)
	require.NotNil(t, result.Error)
	assert.Equal(t, apperrors.ErrCommandOperation, result.Error.Code)
	assert.Contains(t, result.Error.Message, "LoadCfg")

	// Лог скрипта пишется в log_dir файла параметров.
	logs, err := filepath.Glob(filepath.Join(filepath.Dir(paramsFile), "load-cfg.*.log"))
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	content, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "LoadCfg. Началось")
	assert.Contains(t, string(content), "Код результата: 1")
}

func TestExitCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, constants.ExitOK},
		{"config", apperrors.NewAppError(apperrors.ErrConfigLoad, "x", nil), constants.ExitConfig},
		{"params", apperrors.NewAppError(apperrors.ErrParamsInvalidValue, "x", nil), constants.ExitConfig},
		{"operation", apperrors.NewAppError(apperrors.ErrCommandOperation, "x", nil), constants.ExitFailure},
		{"panic", fmt.Errorf("%w: boom", scope.ErrPanicRecovered), constants.ExitFailure},
		{"plain", errors.New("x"), constants.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeOf(tt.err))
		})
	}
}
