package ports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"sync"
	"time"

	"go.bug.st/serial"
)

// DeviceReader streams lines from one connected device.
type DeviceReader interface {
	Channel() <-chan string
	Close() error
}

type DeviceOpener interface {
	Open(devicePath string) (DeviceReader, error)
}

type RealDeviceReader struct {
	port  io.ReadCloser
	lines <-chan string
	once  sync.Once
}

func (r *RealDeviceReader) Channel() <-chan string {
	return r.lines
}

func (r *RealDeviceReader) Close() error {
	var err error

	r.once.Do(func() {
		err = r.port.Close()
	})

	return err
}

type RealDeviceOpener struct{}

func (RealDeviceOpener) Open(devicePath string) (DeviceReader, error) {
	port, err := Open(devicePath)
	if err != nil {
		return nil, err
	}

	return &RealDeviceReader{port: port, lines: ReadFile(port)}, nil
}

// MonitoringDeviceReader polls for ZMK devices and merges the output of every one it finds.
// Keyboards that disconnect are dropped and picked up again once they reappear.
type MonitoringDeviceReader struct {
	pathToLookup string

	devicesList map[string]DeviceReader
	lock        sync.RWMutex
	deviceLoops sync.WaitGroup

	opener      DeviceOpener
	listSerial  func() ([]string, error)
	looksLikeFn func(string) bool

	pollingInterval time.Duration
}

func DefaultMonitoringDeviceReader() *MonitoringDeviceReader {
	return NewMonitoringDeviceReader("/dev/", RealDeviceOpener{})
}

func NewMonitoringDeviceReader(pathToLookup string, opener DeviceOpener) *MonitoringDeviceReader {
	return &MonitoringDeviceReader{
		pathToLookup:    pathToLookup,
		devicesList:     make(map[string]DeviceReader),
		lock:            sync.RWMutex{},
		opener:          opener,
		listSerial:      serial.GetPortsList,
		looksLikeFn:     LooksLikeZMKDevice,
		pollingInterval: 5 * time.Second,
	}
}

// WithPolling overrides the poll interval and the device filter.
func (r *MonitoringDeviceReader) WithPolling(interval time.Duration, accept func(string) bool) *MonitoringDeviceReader {
	r.pollingInterval = interval
	r.looksLikeFn = accept
	r.listSerial = func() ([]string, error) { return nil, nil }

	return r
}

func (r *MonitoringDeviceReader) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	var errs []error

	for i, device := range r.devicesList {
		if err := device.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing device %s: %w", i, err))
		}

		delete(r.devicesList, i)
	}

	return errors.Join(errs...)
}

func (r *MonitoringDeviceReader) CloseDevice(devicePath string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	device, exists := r.devicesList[devicePath]
	if !exists {
		slog.DebugContext(logCtx, "Device not found in list", "path", devicePath)

		return nil
	}

	delete(r.devicesList, devicePath)

	if err := device.Close(); err != nil {
		return fmt.Errorf("error closing device %s: %w", devicePath, err)
	}

	slog.InfoContext(logCtx, "Device closed and removed from list", "path", devicePath)

	return nil
}

func (r *MonitoringDeviceReader) AddDevice(ctx context.Context, devicePath string, out chan<- string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, exists := r.devicesList[devicePath]; exists {
		slog.DebugContext(logCtx, "Device already exists, skipping", "path", devicePath)

		return nil
	}

	device, err := r.opener.Open(devicePath)
	if err != nil {
		return fmt.Errorf("error opening device %s: %w", devicePath, err)
	}

	r.devicesList[devicePath] = device
	r.deviceLoops.Add(1)

	go func() {
		defer r.deviceLoops.Done()

		slog.InfoContext(logCtx, "Device loop started", "path", devicePath)

	loop:
		for {
			select {
			case line, ok := <-device.Channel():
				if !ok {
					break loop
				}

				select {
				case out <- line:
				case <-ctx.Done():
					break loop
				}
			case <-ctx.Done():
				break loop
			}
		}

		slog.InfoContext(logCtx, "Device loop ended", "path", devicePath)

		if err := r.CloseDevice(devicePath); err != nil {
			slog.ErrorContext(logCtx, "Could not close device", "path", devicePath, "error", err)
		}
	}()

	return nil
}

func (r *MonitoringDeviceReader) FindDevices() ([]string, error) {
	serialDevices, err := r.listSerial()
	if err != nil {
		return nil, fmt.Errorf("could not get list of serial ports: %w", err)
	}

	entries, err := os.ReadDir(r.pathToLookup)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", r.pathToLookup, err)
	}

	newDevices := make(map[string]bool)

	for _, devicePath := range serialDevices {
		if r.shouldOpenDevice(devicePath) {
			newDevices[devicePath] = true
		}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		devicePath := path.Join(r.pathToLookup, entry.Name())
		if r.shouldOpenDevice(devicePath) {
			newDevices[devicePath] = true
		}
	}

	keys := make([]string, 0, len(newDevices))
	for k := range newDevices {
		keys = append(keys, k)
	}

	return keys, nil
}

// Channel starts polling in the background. Polling stops and the channel closes when ctx is done.
func (r *MonitoringDeviceReader) Channel(ctx context.Context) <-chan string {
	slog.InfoContext(logCtx, "Starting monitoring", "path", r.pathToLookup)

	outputChan := make(chan string, 5)

	go func() {
		defer close(outputChan)
		defer slog.InfoContext(logCtx, "End monitoring", "path", r.pathToLookup)

		ticker := time.NewTicker(r.pollingInterval)
		defer ticker.Stop()

		for {
			devices, err := r.FindDevices()
			if err != nil {
				slog.ErrorContext(logCtx, "Error finding devices", "error", err)
			}

			for _, devicePath := range devices {
				slog.InfoContext(logCtx, "Found device", "path", devicePath)

				if err := r.AddDevice(ctx, devicePath, outputChan); err != nil {
					slog.ErrorContext(logCtx, "Could not add device", "path", devicePath, "error", err)
				}
			}

			select {
			case <-ctx.Done():
				if err := r.Close(); err != nil {
					slog.ErrorContext(logCtx, "Could not close devices", "error", err)
				}

				r.deviceLoops.Wait()

				return
			case <-ticker.C:
			}
		}
	}()

	return outputChan
}

func (r *MonitoringDeviceReader) shouldOpenDevice(devicePath string) bool {
	if !r.looksLikeFn(devicePath) {
		return false
	}

	r.lock.RLock()
	defer r.lock.RUnlock()

	_, ok := r.devicesList[devicePath]

	return !ok
}
