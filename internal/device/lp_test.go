package device

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printagent/internal/core"
)

// buildSysfs lays out a fake usblp sysfs tree: a usb device directory
// with descriptor files, an interface subdirectory, and the class
// entry whose "device" link points at the interface.
func buildSysfs(t *testing.T, name, vendor, product, manufacturer, productName string) (devDir, sysRoot string) {
	t.Helper()
	root := t.TempDir()

	devDir = filepath.Join(root, "dev")
	require.NoError(t, os.MkdirAll(devDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(devDir, name), nil, 0o644))

	usbDev := filepath.Join(root, "usbdev")
	iface := filepath.Join(usbDev, "1-1:1.0")
	require.NoError(t, os.MkdirAll(iface, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(usbDev, "idVendor"), []byte(vendor+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(usbDev, "idProduct"), []byte(product+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(usbDev, "manufacturer"), []byte(manufacturer+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(usbDev, "product"), []byte(productName+"\n"), 0o644))

	sysRoot = filepath.Join(root, "sys")
	classDir := filepath.Join(sysRoot, name)
	require.NoError(t, os.MkdirAll(classDir, 0o755))
	require.NoError(t, os.Symlink(iface, filepath.Join(classDir, "device")))

	return devDir, sysRoot
}

func TestLPListReadsDescriptors(t *testing.T) {
	devDir, sysRoot := buildSysfs(t, "lp0", "04b8", "0202", "EPSON", "TM-T20II")

	l := &LPDevices{
		Glob:      filepath.Join(devDir, "lp*"),
		SysfsRoot: sysRoot,
	}

	devices, err := l.List()
	require.NoError(t, err)
	require.Len(t, devices, 1)

	assert.Equal(t, uint16(0x04b8), devices[0].VendorID)
	assert.Equal(t, uint16(0x0202), devices[0].ProductID)
	assert.Equal(t, "EPSON", devices[0].Manufacturer)
	assert.Equal(t, "TM-T20II", devices[0].Product)
}

func TestLPListEmpty(t *testing.T) {
	l := &LPDevices{
		Glob:      filepath.Join(t.TempDir(), "lp*"),
		SysfsRoot: t.TempDir(),
	}
	devices, err := l.List()
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestLPListMissingSysfs(t *testing.T) {
	devDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(devDir, "lp0"), nil, 0o644))

	l := &LPDevices{
		Glob:      filepath.Join(devDir, "lp*"),
		SysfsRoot: t.TempDir(),
	}

	// Missing descriptors degrade to zero ids, not an error.
	devices, err := l.List()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, uint16(0), devices[0].VendorID)
}

func TestNewLPDevicesDefaults(t *testing.T) {
	l := NewLPDevices("", 10*time.Second)
	assert.Equal(t, "/dev/usb/lp*", l.Glob)
	assert.Equal(t, 10*time.Second, l.OpenTimeout)
}

func TestOpenSucceedsWithinTimeout(t *testing.T) {
	devDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(devDir, "lp0"), nil, 0o644))

	l := &LPDevices{
		Glob:        filepath.Join(devDir, "lp*"),
		SysfsRoot:   t.TempDir(),
		OpenTimeout: time.Second,
	}

	w, err := l.Open(core.DeviceRef{})
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestOpenTimesOutOnBlockedDevice(t *testing.T) {
	devDir := t.TempDir()
	// A FIFO with no reader blocks a write-only open the same way a
	// busy usblp node does.
	require.NoError(t, syscall.Mkfifo(filepath.Join(devDir, "lp0"), 0o644))

	l := &LPDevices{
		Glob:        filepath.Join(devDir, "lp*"),
		SysfsRoot:   t.TempDir(),
		OpenTimeout: 50 * time.Millisecond,
	}

	_, err := l.Open(core.DeviceRef{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOpenTimeout)
}
