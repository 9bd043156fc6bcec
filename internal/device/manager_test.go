package device

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printagent/internal/core"
	"printagent/internal/db"
)

type fakeLister struct {
	devices []Info
	err     error
}

func (f *fakeLister) List() ([]Info, error) {
	return f.devices, f.err
}

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "printagent-device-test")
	if err != nil {
		panic(err)
	}
	if err := db.Init(db.Config{Path: filepath.Join(dir, "test.db")}); err != nil {
		panic(err)
	}

	code := m.Run()

	db.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestDefaultDeviceUnset(t *testing.T) {
	require.NoError(t, db.Settings.DeleteSetting(context.Background(), "default_device"))

	m := NewManager(&fakeLister{}, nil)
	_, ok := m.DefaultDevice()
	assert.False(t, ok)
}

func TestSetDefaultPersists(t *testing.T) {
	ref := core.DeviceRef{VendorID: 0x04b8, ProductID: 0x0202}

	m := NewManager(&fakeLister{}, nil)
	require.NoError(t, m.SetDefault(context.Background(), ref))

	got, ok := m.DefaultDevice()
	require.True(t, ok)
	assert.Equal(t, ref, got)

	// A fresh manager sees the persisted selection.
	reloaded := NewManager(&fakeLister{}, nil)
	got, ok = reloaded.DefaultDevice()
	require.True(t, ok)
	assert.Equal(t, ref, got)
}

func TestListFlagsDefault(t *testing.T) {
	ref := core.DeviceRef{VendorID: 0x1234, ProductID: 0x5678}
	lister := &fakeLister{devices: []Info{
		{VendorID: 0x1234, ProductID: 0x5678, Product: "TM-T20II"},
		{VendorID: 0x9999, ProductID: 0x0001, Product: "Other"},
	}}

	m := NewManager(lister, nil)
	require.NoError(t, m.SetDefault(context.Background(), ref))

	devices, err := m.List()
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.True(t, devices[0].IsDefault)
	assert.False(t, devices[1].IsDefault)
}

func TestListError(t *testing.T) {
	m := NewManager(&fakeLister{err: errors.New("usb walk failed")}, nil)
	_, err := m.List()
	assert.Error(t, err)
}

func TestConnected(t *testing.T) {
	ref := core.DeviceRef{VendorID: 0x1234, ProductID: 0x5678}
	lister := &fakeLister{devices: []Info{
		{VendorID: 0x1234, ProductID: 0x5678, Product: "TM-T20II"},
	}}

	m := NewManager(lister, nil)
	require.NoError(t, m.SetDefault(context.Background(), ref))

	connected, info := m.Connected()
	require.True(t, connected)
	require.NotNil(t, info)
	assert.Equal(t, "TM-T20II", info.Product)

	// Unplugged: same selection, empty bus.
	lister.devices = nil
	connected, info = m.Connected()
	assert.False(t, connected)
	assert.Nil(t, info)
}
