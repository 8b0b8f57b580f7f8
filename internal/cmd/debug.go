package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/warlice/backlightctl/internal/debugcontrol"
)

// newDebugService mirrors newService for the DebugControl surface.
var newDebugService = func() (debugcontrol.Service, func(), error) {
	client, err := debugcontrol.Connect()
	if err != nil {
		return nil, nil, err
	}
	return client, func() { client.Close() }, nil
}

var debugCmd = &cobra.Command{
	Use:           "debug [--status] [--enable PROPERTY] [--disable PROPERTY] [--toggle PROPERTY] [--set PROPERTY VALUE]",
	Short:         "Get and set the compositor's debug state",
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runDebug(cmd, args)
		if isServiceUnknown(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), "The DebugControl service is not available.")
			fmt.Fprintln(cmd.ErrOrStderr(), "Hint: enable the `debug-control` flag in looking glass first.")
		}
		return err
	},
}

func runDebug(cmd *cobra.Command, args []string) error {
	if status, _ := cmd.Flags().GetBool("status"); status {
		return runDebugStatus(cmd.OutOrStdout())
	}
	if prop, _ := cmd.Flags().GetString("enable"); prop != "" {
		return runDebugSetBool(prop, true)
	}
	if prop, _ := cmd.Flags().GetString("disable"); prop != "" {
		return runDebugSetBool(prop, false)
	}
	if prop, _ := cmd.Flags().GetString("toggle"); prop != "" {
		return runDebugToggle(prop)
	}
	if set, _ := cmd.Flags().GetBool("set"); set {
		if len(args) != 2 {
			return fmt.Errorf("--set needs PROPERTY and VALUE, got %d argument(s)", len(args))
		}
		return runDebugSet(args[0], args[1])
	}

	fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
	return nil
}

func runDebugStatus(w io.Writer) error {
	svc, done, err := newDebugService()
	if err != nil {
		return err
	}
	defer done()

	props, err := svc.Properties()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "%s: %v\n", name, props[name].Value())
	}
	return nil
}

func runDebugSetBool(prop string, value bool) error {
	svc, done, err := newDebugService()
	if err != nil {
		return err
	}
	defer done()

	return svc.Set(prop, value)
}

func runDebugToggle(prop string) error {
	svc, done, err := newDebugService()
	if err != nil {
		return err
	}
	defer done()

	current, err := svc.Get(prop)
	if err != nil {
		return err
	}
	enabled, ok := current.Value().(bool)
	if !ok {
		return fmt.Errorf("property %s is %T, not a boolean", prop, current.Value())
	}
	return svc.Set(prop, !enabled)
}

func runDebugSet(prop, raw string) error {
	svc, done, err := newDebugService()
	if err != nil {
		return err
	}
	defer done()

	current, err := svc.Get(prop)
	if err != nil {
		return err
	}
	value, err := coerceValue(current, raw)
	if err != nil {
		return err
	}
	return svc.Set(prop, value)
}

// coerceValue converts the textual VALUE to the type the property
// currently holds. Other types pass through as strings.
func coerceValue(current dbus.Variant, raw string) (interface{}, error) {
	switch current.Value().(type) {
	case bool:
		switch raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("bad boolean value: %q", raw)
	case uint32:
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad uint32 value: %q", raw)
		}
		return uint32(n), nil
	default:
		return raw, nil
	}
}

func isServiceUnknown(err error) bool {
	var dbusErr dbus.Error
	return errors.As(err, &dbusErr) && dbusErr.Name == "org.freedesktop.DBus.Error.ServiceUnknown"
}

func init() {
	debugCmd.Flags().Bool("status", false, "Print every debug property")
	debugCmd.Flags().String("enable", "", "Enable the boolean PROPERTY")
	debugCmd.Flags().String("disable", "", "Disable the boolean PROPERTY")
	debugCmd.Flags().String("toggle", "", "Toggle the boolean PROPERTY")
	debugCmd.Flags().Bool("set", false, "Set PROPERTY to VALUE, coerced to the property's current type")
}
