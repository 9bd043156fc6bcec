package device

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"printagent/internal/core"
)

// LPDevices enumerates USB line-printer character devices (the
// usblp class, /dev/usb/lp*) and opens them for writing. Vendor and
// product ids come from the matching sysfs entries.
type LPDevices struct {
	Glob      string
	SysfsRoot string

	// OpenTimeout bounds how long Open may block on the device node.
	// Opening usblp blocks while another writer holds the device or
	// the printer is wedged; zero means wait indefinitely.
	OpenTimeout time.Duration
}

func NewLPDevices(glob string, openTimeout time.Duration) *LPDevices {
	if glob == "" {
		glob = "/dev/usb/lp*"
	}
	return &LPDevices{
		Glob:        glob,
		SysfsRoot:   "/sys/class/usbmisc",
		OpenTimeout: openTimeout,
	}
}

func (l *LPDevices) List() ([]Info, error) {
	paths, err := filepath.Glob(l.Glob)
	if err != nil {
		return nil, fmt.Errorf("bad device glob %q: %w", l.Glob, err)
	}

	var devices []Info
	for _, path := range paths {
		info := Info{Path: path}
		l.fillDescriptor(&info)
		devices = append(devices, info)
	}
	return devices, nil
}

func (l *LPDevices) fillDescriptor(info *Info) {
	name := filepath.Base(info.Path)
	// The device entry is a symlink to the USB interface; its parent is
	// the USB device holding the descriptors. Keep the ".." in the path
	// string so it resolves through the symlink, not lexically.
	base := l.SysfsRoot + "/" + name + "/device/.."

	info.VendorID = readHexID(base + "/idVendor")
	info.ProductID = readHexID(base + "/idProduct")
	info.Manufacturer = readString(base + "/manufacturer")
	info.Product = readString(base + "/product")
}

func (l *LPDevices) Open(ref core.DeviceRef) (io.WriteCloser, error) {
	devices, err := l.List()
	if err != nil {
		return nil, err
	}

	for _, d := range devices {
		if d.VendorID == ref.VendorID && d.ProductID == ref.ProductID {
			return l.open(d.Path)
		}
	}
	return nil, fmt.Errorf("%w: %04x:%04x", ErrDeviceNotFound, ref.VendorID, ref.ProductID)
}

func (l *LPDevices) open(path string) (io.WriteCloser, error) {
	if l.OpenTimeout <= 0 {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to open printer: %w", err)
		}
		return f, nil
	}

	type result struct {
		f   *os.File
		err error
	}
	ch := make(chan result, 1)
	go func() {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		ch <- result{f: f, err: err}
	}()

	timer := time.NewTimer(l.OpenTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("failed to open printer: %w", res.err)
		}
		return res.f, nil
	case <-timer.C:
		// The open may still complete later; release the handle when
		// it does rather than leaking it.
		go func() {
			if res := <-ch; res.f != nil {
				res.f.Close()
			}
		}()
		return nil, fmt.Errorf("%w after %s: %s", ErrOpenTimeout, l.OpenTimeout, path)
	}
}

func readHexID(path string) uint16 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	id, err := strconv.ParseUint(strings.TrimSpace(string(data)), 16, 16)
	if err != nil {
		return 0
	}
	return uint16(id)
}

func readString(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
