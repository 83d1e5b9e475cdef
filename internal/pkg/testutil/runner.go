package testutil

import (
	"context"
	"sync"
)

// RunnerCall - один запуск через FakeRunner.
type RunnerCall struct {
	Name string
	Args []string
}

// FakeRunner записывает запуски и возвращает заданный код завершения.
type FakeRunner struct {
	mu    sync.Mutex
	Calls []RunnerCall

	// Code - код завершения каждого запуска.
	Code int
	// Err - ошибка запуска процесса.
	Err error
	// OnRun вызывается при каждом запуске, например чтобы записать /Out.
	OnRun func(args []string)
}

// Run реализует infobase.ProcessRunner.
func (r *FakeRunner) Run(_ context.Context, name string, args []string) (int, error) {
	r.mu.Lock()
	r.Calls = append(r.Calls, RunnerCall{Name: name, Args: append([]string(nil), args...)})
	r.mu.Unlock()

	if r.OnRun != nil {
		r.OnRun(args)
	}
	return r.Code, r.Err
}

// Last возвращает последний запуск.
func (r *FakeRunner) Last() RunnerCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Calls) == 0 {
		return RunnerCall{}
	}
	return r.Calls[len(r.Calls)-1]
}
