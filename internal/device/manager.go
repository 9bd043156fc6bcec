// Package device manages the USB receipt printers visible to the
// agent: enumeration, default selection and the write transport.
package device

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"printagent/internal/core"
	"printagent/internal/db"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrNoDefault      = errors.New("no default device configured")
	ErrOpenTimeout    = errors.New("timed out opening printer")
)

const settingDefaultDevice = "default_device"

// Info describes one enumerated USB printer.
type Info struct {
	VendorID     uint16 `json:"vendor_id"`
	ProductID    uint16 `json:"product_id"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Product      string `json:"product,omitempty"`
	Path         string `json:"-"`
	IsDefault    bool   `json:"is_default"`
}

// Lister enumerates attached printers.
type Lister interface {
	List() ([]Info, error)
}

// Opener yields a write transport for a device reference.
type Opener interface {
	Open(ref core.DeviceRef) (io.WriteCloser, error)
}

// Manager tracks the configured default device, persisting the
// selection so it survives restarts.
type Manager struct {
	lister Lister
	logger *slog.Logger

	mu         sync.RWMutex
	defaultRef *core.DeviceRef
}

func NewManager(lister Lister, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		lister: lister,
		logger: logger,
	}
	m.loadDefault()
	return m
}

func (m *Manager) loadDefault() {
	value, err := db.Settings.GetSetting(context.Background(), settingDefaultDevice)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			m.logger.Warn("failed to load default device", "error", err)
		}
		return
	}

	var ref core.DeviceRef
	if err := json.Unmarshal([]byte(value), &ref); err != nil {
		m.logger.Warn("invalid default device setting", "error", err)
		return
	}

	m.mu.Lock()
	m.defaultRef = &ref
	m.mu.Unlock()
}

// SetDefault records the given device as the default output target.
func (m *Manager) SetDefault(ctx context.Context, ref core.DeviceRef) error {
	value, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("failed to encode device ref: %w", err)
	}

	if err := db.Settings.SetSetting(ctx, settingDefaultDevice, string(value)); err != nil {
		return err
	}

	m.mu.Lock()
	m.defaultRef = &ref
	m.mu.Unlock()

	m.logger.Info("default device set", "vendor_id", ref.VendorID, "product_id", ref.ProductID)
	return nil
}

// DefaultDevice implements core.DeviceLookup. It reports the stored
// selection without probing physical connectivity.
func (m *Manager) DefaultDevice() (core.DeviceRef, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.defaultRef == nil {
		return core.DeviceRef{}, false
	}
	return *m.defaultRef, true
}

// List enumerates attached printers, flagging the default.
func (m *Manager) List() ([]Info, error) {
	devices, err := m.lister.List()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	def, hasDefault := m.DefaultDevice()
	for i := range devices {
		devices[i].IsDefault = hasDefault &&
			devices[i].VendorID == def.VendorID &&
			devices[i].ProductID == def.ProductID
	}
	return devices, nil
}

// Connected reports whether the default device is currently attached.
func (m *Manager) Connected() (bool, *Info) {
	def, ok := m.DefaultDevice()
	if !ok {
		return false, nil
	}

	devices, err := m.lister.List()
	if err != nil {
		return false, nil
	}

	for _, d := range devices {
		if d.VendorID == def.VendorID && d.ProductID == def.ProductID {
			found := d
			return true, &found
		}
	}
	return false, nil
}
