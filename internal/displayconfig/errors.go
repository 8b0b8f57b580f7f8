package displayconfig

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ConnectError means the session bus or the service itself is unreachable.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return "display config service unreachable: " + e.Err.Error()
}

func (e *ConnectError) Unwrap() error { return e.Err }

// RemoteError is a fault the service returned. It is surfaced verbatim;
// the client never retries or rewrites it.
type RemoteError struct {
	Name    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// DecodeError means a reply did not have the documented shape.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "unexpected Backlight reply: " + e.Reason
}

// asClientError sorts a call failure into a connection problem or a fault
// reported by the service.
func asClientError(err error) error {
	var dbusErr dbus.Error
	if errors.As(err, &dbusErr) {
		switch dbusErr.Name {
		case "org.freedesktop.DBus.Error.ServiceUnknown",
			"org.freedesktop.DBus.Error.NameHasNoOwner",
			"org.freedesktop.DBus.Error.NoReply",
			"org.freedesktop.DBus.Error.Disconnected":
			return &ConnectError{Err: err}
		}
		return &RemoteError{Name: dbusErr.Name, Message: dbusErrorMessage(dbusErr)}
	}
	return &ConnectError{Err: err}
}

func dbusErrorMessage(err dbus.Error) string {
	if len(err.Body) == 0 {
		return ""
	}
	if msg, ok := err.Body[0].(string); ok {
		return msg
	}
	return fmt.Sprint(err.Body...)
}
