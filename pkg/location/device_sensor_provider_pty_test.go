//go:build linux

package location

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openPseudoTerminal returns the controlling side and the device path of a fresh pty pair.
func openPseudoTerminal(t *testing.T) (*os.File, string) {
	t.Helper()

	master, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pseudo terminals unavailable: %v", err)
	}
	t.Cleanup(func() {
		tty.Close()
		master.Close()
	})
	return master, tty.Name()
}

func TestDeviceSensorProvider_SilentTerminal(t *testing.T) {
	_, device := openPseudoTerminal(t)
	provider := NewDeviceSensorProvider(device, 9600)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := provider.GetLocation(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrTimeout)
	case <-time.After(2 * time.Second):
		t.Fatal("GetLocation did not return after the deadline")
	}
}

func TestDeviceSensorProvider_TerminalFix(t *testing.T) {
	master, device := openPseudoTerminal(t)
	provider := NewDeviceSensorProvider(device, 9600)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if _, err := master.WriteString(ggaFix + "\r\n"); err != nil {
					return
				}
			}
		}
	}()

	loc, err := provider.GetLocation(ctx)

	require.NoError(t, err)
	assert.InDelta(t, -23.55, loc.Latitude, 1e-9)
	assert.InDelta(t, -46.63, loc.Longitude, 1e-9)
}
