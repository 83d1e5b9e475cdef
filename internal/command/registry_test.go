package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/Kargones/v8run/internal/adapter/mssql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHandler - тестовый обработчик команды.
type mockHandler struct {
	name string
}

func (m *mockHandler) Name() string        { return m.name }
func (m *mockHandler) Description() string { return "mock: " + m.name }
func (m *mockHandler) Execute(_ context.Context, _ *Deps) (any, error) {
	return nil, nil
}

func TestRegister_Success(t *testing.T) {
	clearRegistry()

	h := &mockHandler{name: "test-command"}
	require.NoError(t, Register(h))

	got, ok := Get("test-command")
	assert.True(t, ok, "команда должна быть найдена в реестре")
	assert.Equal(t, h, got)
}

func TestRegister_Duplicate(t *testing.T) {
	clearRegistry()

	require.NoError(t, Register(&mockHandler{name: "dup-command"}))
	err := Register(&mockHandler{name: "dup-command"})
	assert.ErrorIs(t, err, ErrDuplicateHandler)
}

func TestRegister_Invalid(t *testing.T) {
	clearRegistry()

	assert.Error(t, Register(nil))
	assert.Error(t, Register(&mockHandler{name: ""}))

	for _, name := range []string{"Load-Cfg", "load_cfg", "load--cfg", "load-", "1load"} {
		assert.Error(t, Register(&mockHandler{name: name}), name)
	}
}

func TestGet_NotFound(t *testing.T) {
	clearRegistry()

	got, ok := Get("non-existent")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestNames_Sorted(t *testing.T) {
	clearRegistry()

	for _, n := range []string{"update-from-repo", "create-infobase", "load-cfg"} {
		require.NoError(t, Register(&mockHandler{name: n}))
	}
	assert.Equal(t, []string{"create-infobase", "load-cfg", "update-from-repo"}, Names())

	all := All()
	delete(all, "load-cfg")
	_, ok := Get("load-cfg")
	assert.True(t, ok, "изменение копии не должно влиять на реестр")
}

func TestRegister_Concurrent(t *testing.T) {
	clearRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = Register(&mockHandler{name: fmt.Sprintf("cmd-%d", i)})
		}(i)
	}
	wg.Wait()
	assert.Len(t, Names(), 20)
}

func TestDeps_Defaults(t *testing.T) {
	d := &Deps{}
	assert.Equal(t, os.Stdout, d.Out())
	assert.NotNil(t, d.MSSQL())

	var buf bytes.Buffer
	wantErr := errors.New("boom")
	d = &Deps{
		Stdout:         &buf,
		NewMSSQLClient: func(mssql.ClientOptions) (mssql.Client, error) { return nil, wantErr },
	}
	assert.Equal(t, &buf, d.Out())
	_, err := d.MSSQL()(mssql.ClientOptions{})
	assert.ErrorIs(t, err, wantErr)
}
