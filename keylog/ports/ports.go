package ports

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dasdy/nuhxboard/logging"
	"go.bug.st/serial"
)

var logCtx = logging.PackageCtx("ports")

var zmkDevicePattern = regexp.MustCompile(`^/dev/(tty|cu)\.usbmodem\d+$`)

func LooksLikeZMKDevice(path string) bool {
	return zmkDevicePattern.MatchString(path)
}

// Open connects to a serial port at the speed ZMK logs over USB.
func Open(path string) (io.ReadCloser, error) {
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: 9600,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open serial port %s: %w", path, err)
	}

	// TODO make this configurable.
	if err := port.SetReadTimeout(10 * time.Hour); err != nil {
		port.Close()

		return nil, fmt.Errorf("could not set read timeout on %s: %w", path, err)
	}

	return port, nil
}

// ReadFile streams r line by line. The channel is closed once r is exhausted.
func ReadFile(r io.Reader) <-chan string {
	ch := make(chan string)

	go func() {
		defer close(ch)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			ch <- scanner.Text()
		}

		if err := scanner.Err(); err != nil {
			slog.WarnContext(logCtx, "Stopped reading input", "error", err)
		}
	}()

	return ch
}

// ReadFiles merges the lines of every reader. The channel is closed when all of them are done.
func ReadFiles(readers ...io.Reader) <-chan string {
	outputChan := make(chan string)

	var wg sync.WaitGroup

	for _, r := range readers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for line := range ReadFile(r) {
				outputChan <- line
			}
		}()
	}

	go func() {
		wg.Wait()
		close(outputChan)
	}()

	return outputChan
}

// Read from two files at the same time line-by-line.
func ReadTwoFiles(f1, f2 io.Reader) <-chan string {
	return ReadFiles(f1, f2)
}

// OpenFiles opens every serial port in paths and merges their output.
func OpenFiles(paths ...string) (<-chan string, func(), error) {
	closers := make([]io.Closer, 0, len(paths))
	readers := make([]io.Reader, 0, len(paths))

	closer := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				slog.ErrorContext(logCtx, "Could not close port", "error", err)
			}
		}
	}

	for _, path := range paths {
		port, err := Open(path)
		if err != nil {
			closer()

			return nil, func() {}, err
		}

		closers = append(closers, port)
		readers = append(readers, port)
	}

	return ReadFiles(readers...), closer, nil
}

func GetAvailableDevices() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("could not get list of serial ports: %w", err)
	}

	result := make([]string, 0)

	for _, n := range names {
		if strings.Contains(n, "usbmodem") {
			result = append(result, n)
		}
	}

	return result, nil
}

// XInputCommand is the X11 utility used to observe raw key events.
var XInputCommand = []string{"xinput", "test-xi2", "--root"}

// StartXInput spawns xinput and streams its output until ctx is cancelled or the process exits.
func StartXInput(ctx context.Context) (<-chan string, error) {
	cmd := exec.CommandContext(ctx, XInputCommand[0], XInputCommand[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("could not attach to xinput output: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("could not start xinput: %w", err)
	}

	slog.InfoContext(logCtx, "Started xinput", "pid", cmd.Process.Pid)

	out := make(chan string)

	go func() {
		defer close(out)

		for line := range ReadFile(stdout) {
			out <- line
		}

		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			slog.ErrorContext(logCtx, "xinput exited", "error", err)
		}
	}()

	return out, nil
}
