package cmd

import (
	"fmt"
	"io"

	"github.com/warlice/backlightctl/internal/displayconfig"
	"github.com/warlice/backlightctl/pkg/backlightinfo"
)

func runStatus(w io.Writer, asJSON bool) error {
	svc, done, err := newService()
	if err != nil {
		return err
	}
	defer done()

	state, err := svc.Backlight()
	if err != nil {
		return err
	}

	if asJSON {
		out, err := backlightinfo.GetBacklightInfoJSON(state)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	printState(w, state)
	return nil
}

func printState(w io.Writer, state displayconfig.State) {
	fmt.Fprintf(w, "Serial: %d\n", state.Serial)

	for _, connector := range state.Connectors {
		fmt.Fprintf(w, "Connector '%s':\n", connector.Name)
		for _, prop := range connector.Properties {
			fmt.Fprintf(w, "  %s: %v\n", prop.Key, prop.Value)
		}
	}
}
