// Package displayconfig talks to the session compositor's display
// configuration service and exposes its backlight surface.
package displayconfig

import (
	"fmt"
	"sort"

	"github.com/godbus/dbus/v5"

	"github.com/warlice/backlightctl/internal/config"
)

const (
	// Interface is the display configuration D-Bus interface exported by
	// Mutter-based compositors.
	Interface = "org.gnome.Mutter.DisplayConfig"

	propsIface = "org.freedesktop.DBus.Properties"

	backlightProp      = "Backlight"
	setBacklightMethod = Interface + ".SetBacklight"
)

// Property is a single backlight attribute reported by the service. The
// set of keys is owned by the service; nothing here interprets them.
type Property struct {
	Key   string
	Value interface{}
}

// Connector is the backlight state of one display output.
type Connector struct {
	Name       string
	Properties []Property
}

// State is one snapshot of the Backlight property. Serial is the staleness
// token the service demands back unchanged on the next write.
type State struct {
	Serial     uint32
	Connectors []Connector
}

// Service is the capability the CLI layer needs. Tests substitute a fake
// so no session bus is required.
type Service interface {
	Backlight() (State, error)
	SetBacklight(serial uint32, connector string, value int32) error
}

// Client implements Service over a live session bus connection.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Connect binds to the display configuration service on the session bus.
func Connect(cfg config.Config) (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, &ConnectError{Err: err}
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(cfg.BusName, dbus.ObjectPath(cfg.ObjectPath)),
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Backlight reads the service's Backlight property.
func (c *Client) Backlight() (State, error) {
	var value dbus.Variant
	err := c.obj.Call(propsIface+".Get", 0, Interface, backlightProp).Store(&value)
	if err != nil {
		return State{}, asClientError(err)
	}
	return decodeBacklight(value.Value())
}

// SetBacklight asks the service to move connector's backlight to value.
// The serial must come from the read this write is based on; the service
// rejects writes carrying a stale one.
func (c *Client) SetBacklight(serial uint32, connector string, value int32) error {
	if call := c.obj.Call(setBacklightMethod, 0, serial, connector, value); call.Err != nil {
		return asClientError(call.Err)
	}
	return nil
}

func decodeBacklight(v interface{}) (State, error) {
	fields, ok := v.([]interface{})
	if !ok || len(fields) != 2 {
		return State{}, &DecodeError{Reason: fmt.Sprintf("expected a (serial, connectors) pair, got %T", v)}
	}

	serial, ok := fields[0].(uint32)
	if !ok {
		return State{}, &DecodeError{Reason: fmt.Sprintf("serial is %T, not uint32", fields[0])}
	}

	entries, ok := fields[1].([]map[string]dbus.Variant)
	if !ok {
		return State{}, &DecodeError{Reason: fmt.Sprintf("connector list is %T, not aa{sv}", fields[1])}
	}

	state := State{
		Serial:     serial,
		Connectors: make([]Connector, 0, len(entries)),
	}
	for i, entry := range entries {
		connector, err := decodeConnector(entry)
		if err != nil {
			return State{}, &DecodeError{Reason: fmt.Sprintf("connector %d: %v", i, err)}
		}
		state.Connectors = append(state.Connectors, connector)
	}
	return state, nil
}

func decodeConnector(entry map[string]dbus.Variant) (Connector, error) {
	nameVar, ok := entry["connector"]
	if !ok {
		return Connector{}, fmt.Errorf("missing \"connector\" key")
	}
	name, ok := nameVar.Value().(string)
	if !ok {
		return Connector{}, fmt.Errorf("\"connector\" is %T, not string", nameVar.Value())
	}

	// D-Bus dicts arrive as Go maps, so the wire order of the remaining
	// keys is gone; sort them for stable output.
	keys := make([]string, 0, len(entry)-1)
	for key := range entry {
		if key == "connector" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	properties := make([]Property, 0, len(keys))
	for _, key := range keys {
		properties = append(properties, Property{Key: key, Value: entry[key].Value()})
	}
	return Connector{Name: name, Properties: properties}, nil
}
