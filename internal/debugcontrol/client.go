// Package debugcontrol drives the compositor's DebugControl properties.
package debugcontrol

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	// Interface is the debug state D-Bus interface exported by Mutter-based
	// compositors when the debug-control flag is enabled.
	Interface = "org.gnome.Mutter.DebugControl"

	busName    = "org.gnome.Mutter.DebugControl"
	objectPath = "/org/gnome/Mutter/DebugControl"
	propsIface = "org.freedesktop.DBus.Properties"
)

// Service is the property surface the debug command needs; tests
// substitute a fake.
type Service interface {
	Properties() (map[string]dbus.Variant, error)
	Get(prop string) (dbus.Variant, error)
	Set(prop string, value interface{}) error
}

// Client implements Service over a live session bus connection.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Connect binds to the DebugControl service on the session bus.
func Connect() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(busName, objectPath),
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Properties returns every DebugControl property.
func (c *Client) Properties() (map[string]dbus.Variant, error) {
	var props map[string]dbus.Variant
	err := c.obj.Call(propsIface+".GetAll", 0, Interface).Store(&props)
	if err != nil {
		return nil, fmt.Errorf("get debug properties: %w", err)
	}
	return props, nil
}

// Get reads a single DebugControl property.
func (c *Client) Get(prop string) (dbus.Variant, error) {
	var value dbus.Variant
	err := c.obj.Call(propsIface+".Get", 0, Interface, prop).Store(&value)
	if err != nil {
		return dbus.Variant{}, fmt.Errorf("get %s: %w", prop, err)
	}
	return value, nil
}

// Set writes a single DebugControl property.
func (c *Client) Set(prop string, value interface{}) error {
	call := c.obj.Call(propsIface+".Set", 0, Interface, prop, dbus.MakeVariant(value))
	if call.Err != nil {
		return fmt.Errorf("set %s: %w", prop, call.Err)
	}
	return nil
}
