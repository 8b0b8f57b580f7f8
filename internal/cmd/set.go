package cmd

func runSet(connector string, value int32) error {
	svc, done, err := newService()
	if err != nil {
		return err
	}
	defer done()

	state, err := svc.Backlight()
	if err != nil {
		return err
	}

	// The serial from the read is the write's staleness token and must go
	// through untouched.
	return svc.SetBacklight(state.Serial, connector, value)
}
