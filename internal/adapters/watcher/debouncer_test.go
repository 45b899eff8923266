package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/swatch/internal/adapters/watcher"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls [][]string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			calls = append(calls, paths)
		})

		d.Add("/themes/light.yaml")
		d.Add("/themes/dark.yaml")
		d.Add("/themes/light.yaml")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/themes/dark.yaml", "/themes/light.yaml"}, calls[0])
	})
}

func TestDebouncer_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		count := 0

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			mu.Lock()
			count++
			mu.Unlock()
		})

		d.Add("/themes/app.yaml")
		time.Sleep(50 * time.Millisecond)
		d.Add("/themes/app.yaml")
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 0, count)
		mu.Unlock()

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 1, count)
		mu.Unlock()
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls [][]string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			calls = append(calls, paths)
		})

		d.Add("/themes/app.yaml")
		d.Flush()

		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/themes/app.yaml"}, calls[0])

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, calls, 1, "flushed paths must not fire again")
	})
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	called := false
	d := watcher.NewDebouncer(100*time.Millisecond, func([]string) { called = true })

	d.Flush()

	assert.False(t, called)
}

func TestDebouncer_Flush_AfterFire(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		count := 0
		d := watcher.NewDebouncer(50*time.Millisecond, func([]string) { count++ })

		d.Add("/themes/app.yaml")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, 1, count)

		d.Flush()
		assert.Equal(t, 1, count)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)

		d.Add("/themes/app.yaml")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Flush()
	})
}
