package gpio

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpiotest"
)

func set(p *gpiotest.Pin, l gpio.Level) {
	p.Lock()
	p.L = l
	p.Unlock()
}

func newKey(t *testing.T, name string) (*Key, *gpiotest.Pin) {
	t.Helper()
	p := &gpiotest.Pin{N: name}
	k, err := NewKey(p)
	require.NoError(t, err)
	set(p, gpio.High)
	return k, p
}

func TestNewKeyPullUp(t *testing.T) {
	k, p := newKey(t, "GPIO13")
	assert.Equal(t, gpio.PullUp, p.P)
	assert.Equal(t, "KEY: GPIO13", k.String())

	assert.False(t, k.Pressed())
	set(p, gpio.Low)
	assert.True(t, k.Pressed())
}

func TestWatchReportsEachPressOnce(t *testing.T) {
	k1, p1 := newKey(t, "GPIO13")
	k2, p2 := newKey(t, "GPIO23")

	var mu sync.Mutex
	var got []int
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []*Key{k1, k2}, func(ix int) {
			mu.Lock()
			got = append(got, ix)
			mu.Unlock()
		})
	}()

	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(got)
	}

	set(p2, gpio.Low)
	require.Eventually(t, func() bool { return count() == 1 }, time.Second, time.Millisecond)

	// held down, no repeat
	time.Sleep(20 * PollDurr)
	assert.Equal(t, 1, count())

	set(p2, gpio.High)
	time.Sleep(20 * PollDurr)
	set(p1, gpio.Low)
	require.Eventually(t, func() bool { return count() == 2 }, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 0}, got)
}
