package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warlice/backlightctl/internal/displayconfig"
)

type setCall struct {
	serial    uint32
	connector string
	value     int32
}

type fakeService struct {
	state  displayconfig.State
	getErr error
	setErr error

	gets int
	sets []setCall
}

func (f *fakeService) Backlight() (displayconfig.State, error) {
	f.gets++
	return f.state, f.getErr
}

func (f *fakeService) SetBacklight(serial uint32, connector string, value int32) error {
	f.sets = append(f.sets, setCall{serial: serial, connector: connector, value: value})
	return f.setErr
}

func testState() displayconfig.State {
	return displayconfig.State{
		Serial: 7,
		Connectors: []displayconfig.Connector{
			{
				Name: "eDP-1",
				Properties: []displayconfig.Property{
					{Key: "brightness", Value: int32(50)},
					{Key: "max", Value: int32(100)},
				},
			},
		},
	}
}

func execRoot(t *testing.T, fake *fakeService, args ...string) (string, error) {
	t.Helper()

	orig := newService
	newService = func() (displayconfig.Service, func(), error) {
		return fake, func() {}, nil
	}
	t.Cleanup(func() { newService = orig })

	// Flag values persist across Execute calls; start each run clean.
	_ = rootCmd.Flags().Set("status", "false")
	_ = rootCmd.Flags().Set("set", "false")
	_ = rootCmd.Flags().Set("json", "false")

	if args == nil {
		// SetArgs(nil) would make cobra fall back to os.Args.
		args = []string{}
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestStatusPrintsSerialAndConnectors(t *testing.T) {
	fake := &fakeService{state: testState()}

	out, err := execRoot(t, fake, "--status")
	require.NoError(t, err)

	assert.Equal(t, "Serial: 7\nConnector 'eDP-1':\n  brightness: 50\n  max: 100\n", out)
	assert.Equal(t, 1, fake.gets)
	assert.Empty(t, fake.sets)
}

func TestStatusNeverPrintsConnectorAsProperty(t *testing.T) {
	fake := &fakeService{state: testState()}

	out, err := execRoot(t, fake, "--status")
	require.NoError(t, err)

	assert.NotContains(t, out, "  connector:")
}

func TestStatusJSON(t *testing.T) {
	fake := &fakeService{state: testState()}

	out, err := execRoot(t, fake, "--status", "--json")
	require.NoError(t, err)

	var decoded struct {
		Serial     uint32 `json:"serial"`
		Connectors []struct {
			Connector string `json:"connector"`
		} `json:"connectors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, uint32(7), decoded.Serial)
	require.Len(t, decoded.Connectors, 1)
	assert.Equal(t, "eDP-1", decoded.Connectors[0].Connector)
}

func TestSetReadsSerialThenWrites(t *testing.T) {
	fake := &fakeService{state: testState()}

	_, err := execRoot(t, fake, "--set", "eDP-1", "75")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.gets)
	assert.Equal(t, []setCall{{serial: 7, connector: "eDP-1", value: 75}}, fake.sets)
}

func TestSetRejectsNonIntegerValueBeforeAnyCall(t *testing.T) {
	fake := &fakeService{state: testState()}

	_, err := execRoot(t, fake, "--set", "eDP-1", "full")
	require.Error(t, err)

	assert.Zero(t, fake.gets)
	assert.Empty(t, fake.sets)
}

func TestSetRequiresTwoArguments(t *testing.T) {
	fake := &fakeService{state: testState()}

	_, err := execRoot(t, fake, "--set", "eDP-1")
	require.Error(t, err)

	assert.Zero(t, fake.gets)
	assert.Empty(t, fake.sets)
}

func TestNoActionPrintsUsage(t *testing.T) {
	fake := &fakeService{state: testState()}

	out, err := execRoot(t, fake)
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:")
	assert.Zero(t, fake.gets)
	assert.Empty(t, fake.sets)
}

func TestStatusTakesPrecedenceOverSet(t *testing.T) {
	fake := &fakeService{state: testState()}

	out, err := execRoot(t, fake, "--status", "--set", "eDP-1", "75")
	require.NoError(t, err)

	assert.Contains(t, out, "Serial: 7")
	assert.Equal(t, 1, fake.gets)
	assert.Empty(t, fake.sets)
}

func TestStatusSurfacesRemoteFault(t *testing.T) {
	fake := &fakeService{
		getErr: &displayconfig.RemoteError{
			Name:    "org.gnome.Mutter.DisplayConfig.Error",
			Message: "Backlight not supported",
		},
	}

	_, err := execRoot(t, fake, "--status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Backlight not supported")
}

func TestSetSurfacesRemoteFault(t *testing.T) {
	fake := &fakeService{state: testState()}
	fake.setErr = &displayconfig.RemoteError{
		Name:    "org.gnome.Mutter.DisplayConfig.Error",
		Message: "Invalid backlight serial",
	}

	_, err := execRoot(t, fake, "--set", "eDP-1", "75")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid backlight serial")
}
