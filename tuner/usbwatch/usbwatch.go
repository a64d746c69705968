// Package usbwatch enumerates candidate SDR USB devices (RTL-SDR-class
// dongles) via udev, for the "-d list" CLI device-selection path, and can
// watch for hot-plug add/remove events while the receiver runs.
package usbwatch

import (
	"context"

	"github.com/jochenvg/go-udev"
)

// Device describes one enumerated SDR-class USB device.
type Device struct {
	DevPath     string
	VendorID    string
	ProductID   string
	Serial      string
	SysfsSerial string
}

// List enumerates currently attached USB devices reported as "usb"
// subsystem nodes of devtype "usb_device". It does not filter by vendor or
// product ID, so non-SDR USB devices are listed as well.
func List() ([]Device, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("usb"); err != nil {
		return nil, err
	}
	devices, err := e.Devices()
	if err != nil {
		return nil, err
	}
	var out []Device
	for _, d := range devices {
		if d.Devtype() != "usb_device" {
			continue
		}
		out = append(out, Device{
			DevPath:  d.Devpath(),
			VendorID: d.PropertyValue("ID_VENDOR_ID"),
			ProductID: d.PropertyValue("ID_MODEL_ID"),
			Serial:   d.PropertyValue("ID_SERIAL_SHORT"),
		})
	}
	return out, nil
}

// Watch streams add/remove events for USB devices until ctx is cancelled,
// invoking onChange with "add" or "remove" and the affected device.
func Watch(ctx context.Context, onChange func(action string, dev Device)) error {
	u := udev.Udev{}
	m := u.NewMonitorFromNetlink("udev")
	if err := m.FilterAddMatchSubsystem("usb"); err != nil {
		return err
	}
	ch, done, err := m.DeviceChan(ctx)
	if err != nil {
		return err
	}
	defer done()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-ch:
			if !ok {
				return nil
			}
			onChange(d.Action(), Device{
				DevPath:  d.Devpath(),
				VendorID: d.PropertyValue("ID_VENDOR_ID"),
				ProductID: d.PropertyValue("ID_MODEL_ID"),
				Serial:   d.PropertyValue("ID_SERIAL_SHORT"),
			})
		}
	}
}
