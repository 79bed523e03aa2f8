package location

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/adrianmo/go-nmea"
	"github.com/tarm/serial"
)

// readPollInterval bounds a single serial read, so a silent device cannot outlive the capture deadline.
const readPollInterval = 500 * time.Millisecond

// maxSentenceLength is well above the 82 characters NMEA 0183 allows per sentence.
const maxSentenceLength = 1024

var errReadTimeout = errors.New("serial read timed out")

// DeviceSensorProvider is responsible for retrieving location data from a GPS device connected via serial port.
type DeviceSensorProvider struct {
	port     string // Serial port to which the GPS device is connected
	baudRate int    // Baud rate for the serial communication

	openPort func(c *serial.Config) (io.ReadCloser, error)
}

// NewDeviceSensorProvider creates a new instance of DeviceSensorProvider with the specified port and baud rate.
func NewDeviceSensorProvider(port string, baudRate int) *DeviceSensorProvider {
	return &DeviceSensorProvider{
		port:     port,
		baudRate: baudRate,
		openPort: func(c *serial.Config) (io.ReadCloser, error) {
			p, err := serial.OpenPort(c)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	}
}

// RequestPermission checks whether the process can open the serial device.
// A missing device is not a permission problem; it surfaces from GetLocation instead.
func (d *DeviceSensorProvider) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDenied, err
	}

	f, err := os.OpenFile(d.port, os.O_RDONLY|syscall.O_NONBLOCK, 0)
	switch {
	case err == nil:
		f.Close()
		return PermissionGranted, nil
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied, nil
	case errors.Is(err, fs.ErrNotExist):
		return PermissionGranted, nil
	default:
		return PermissionDenied, fmt.Errorf("failed to check access to %s: %w", d.port, err)
	}
}

// GetLocation reads GPS data from the device and returns the device's location.
// Reads time out every readPollInterval so that ctx is honoured even when the device stays silent.
func (d *DeviceSensorProvider) GetLocation(ctx context.Context) (Location, error) {
	s, err := d.openPort(&serial.Config{Name: d.port, Baud: d.baudRate, ReadTimeout: readPollInterval})
	if err != nil {
		return Location{}, fmt.Errorf("failed to open GPS port %s: %w", d.port, err)
	}
	defer s.Close() // Ensure the port is closed when done

	loc, err := readFix(ctx, timedPort{s})
	if err != nil && ctx.Err() != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Location{}, ErrTimeout
		}
		return Location{}, ctx.Err()
	}
	return loc, err
}

// Close is a no-op; the port is only held open for the duration of GetLocation.
func (d *DeviceSensorProvider) Close() error {
	return nil
}

// timedPort reports an expired serial ReadTimeout as errReadTimeout.
// tarm/serial returns a zero-byte read in that case, which os.File turns into io.EOF.
type timedPort struct {
	io.ReadCloser
}

func (p timedPort) Read(b []byte) (int, error) {
	n, err := p.ReadCloser.Read(b)
	if n == 0 && (err == nil || errors.Is(err, io.EOF)) {
		return 0, errReadTimeout
	}
	return n, err
}

// readFix reads NMEA output until it finds a GGA or RMC sentence that carries a valid fix.
// ctx is checked between reads; io.EOF ends the stream.
func readFix(ctx context.Context, r io.Reader) (Location, error) {
	var lastErr error
	var pending []byte
	buf := make([]byte, 512)

	for {
		if err := ctx.Err(); err != nil {
			return Location{}, err
		}

		n, readErr := r.Read(buf)
		pending = append(pending, buf[:n]...)

		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}
			loc, ok, err := parseFix(string(pending[:i]))
			pending = pending[i+1:]
			if err != nil {
				lastErr = err
			}
			if ok {
				return loc, nil
			}
		}
		if len(pending) > maxSentenceLength {
			// Noise without line breaks, not NMEA
			pending = nil
		}

		switch {
		case readErr == nil, errors.Is(readErr, errReadTimeout):
			continue
		case errors.Is(readErr, io.EOF):
			if loc, ok, err := parseFix(string(pending)); ok {
				return loc, nil
			} else if err != nil {
				lastErr = err
			}
			if lastErr != nil {
				return Location{}, fmt.Errorf("%w: last parse error: %v", ErrNoFix, lastErr)
			}
			return Location{}, ErrNoFix
		default:
			return Location{}, fmt.Errorf("failed to read GPS output: %w", readErr)
		}
	}
}

// parseFix reports whether line is a GGA or RMC sentence with a valid fix.
// Serial lines are often truncated on open, so parse errors are returned for logging only.
func parseFix(line string) (Location, bool, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "$") {
		return Location{}, false, nil
	}

	sentence, err := nmea.Parse(line)
	if err != nil {
		return Location{}, false, err
	}

	switch s := sentence.(type) {
	case nmea.GGA:
		if s.FixQuality == "" || s.FixQuality == "0" {
			return Location{}, false, nil
		}
		return Location{
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Accuracy:  s.HDOP, // Use HDOP as a proxy for accuracy
		}, true, nil
	case nmea.RMC:
		if s.Validity != "A" {
			return Location{}, false, nil
		}
		return Location{
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		}, true, nil
	}
	return Location{}, false, nil
}
