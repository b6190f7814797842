// Package light drives the Luxafor USB status light over HID.
package light

import (
	"fmt"

	"github.com/karalabe/hid"
)

// Luxafor USB identifiers.
const (
	vendorID  = 0x04d8
	productID = 0xf372
)

const (
	cmdStatic = 0x01 // static color command
	ledAll    = 0xff // address every LED on the device
)

// device is the subset of the HID device handle used by the controller.
type device interface {
	Write(b []byte) (int, error)
	Close() error
}

// Controller renders colors on a Luxafor device, scaling each channel by
// the configured brightness percentage before transmission.
type Controller struct {
	dev        device
	brightness int
}

// Open connects to the first attached Luxafor device. Callers should treat
// a failure here as fatal; the monitor has no degraded mode without its
// actuator.
func Open(brightness int) (*Controller, error) {
	infos := hid.Enumerate(vendorID, productID)
	if len(infos) == 0 {
		return nil, fmt.Errorf("no Luxafor device found (vendor %#04x, product %#04x): is it plugged in via USB?", vendorID, productID)
	}

	dev, err := infos[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open Luxafor device: %w", err)
	}

	return NewController(dev, brightness), nil
}

// NewController wraps an already-open device handle. Used by Open and by
// tests that substitute a fake device.
func NewController(dev device, brightness int) *Controller {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 100 {
		brightness = 100
	}
	return &Controller{
		dev:        dev,
		brightness: brightness,
	}
}

// Brightness returns the configured brightness percentage.
func (c *Controller) Brightness() int {
	return c.brightness
}

// SetColor sets all LEDs to the given color with brightness applied.
func (c *Controller) SetColor(red, green, blue byte) error {
	frame := []byte{
		0x00, // report ID
		cmdStatic,
		ledAll,
		c.scale(red),
		c.scale(green),
		c.scale(blue),
		0x00,
		0x00,
	}

	if _, err := c.dev.Write(frame); err != nil {
		return fmt.Errorf("failed to write to Luxafor device: %w", err)
	}
	return nil
}

// SetOff turns all LEDs off.
func (c *Controller) SetOff() error { return c.SetColor(0, 0, 0) }

// Close releases the device handle.
func (c *Controller) Close() error {
	return c.dev.Close()
}

// scale applies brightness scaling to a single channel value.
func (c *Controller) scale(v byte) byte {
	return byte(int(v) * c.brightness / 100)
}
