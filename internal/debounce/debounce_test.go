package debounce_test

import (
	"sync"
	"testing"
	"time"

	"github.com/alumniconnect/client-go/internal/debounce"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var mu sync.Mutex
	var got []string

	d := debounce.NewDebouncer(20*time.Millisecond, func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer d.Stop()

	d.Call("a")
	d.Call("al")
	d.Call("alu")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	require.Equal(t, []string{"alu"}, got)
	mu.Unlock()
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	var mu sync.Mutex
	var got []int

	d := debounce.NewDebouncer(10*time.Millisecond, func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer d.Stop()

	d.Call(1)
	time.Sleep(30 * time.Millisecond)
	d.Call(2)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	require.Equal(t, []int{1, 2}, got)
	mu.Unlock()
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var mu sync.Mutex
	fired := false

	d := debounce.NewDebouncer(10*time.Millisecond, func(string) {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	d.Call("x")
	d.Stop()
	d.Call("y") // ignored after Stop

	time.Sleep(40 * time.Millisecond)
	mu.Lock()
	require.False(t, fired)
	mu.Unlock()
}

func TestThrottler_LeadingEdge(t *testing.T) {
	var mu sync.Mutex
	var got []int

	th := debounce.NewThrottler(50*time.Millisecond, func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})

	require.True(t, th.Call(1))
	require.False(t, th.Call(2))
	require.False(t, th.Call(3))

	mu.Lock()
	require.Equal(t, []int{1}, got)
	mu.Unlock()

	time.Sleep(60 * time.Millisecond)
	require.True(t, th.Call(4))

	mu.Lock()
	require.Equal(t, []int{1, 4}, got)
	mu.Unlock()
}
