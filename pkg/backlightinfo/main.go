package backlightinfo

import (
	"encoding/json"

	"github.com/warlice/backlightctl/internal/displayconfig"
)

type ConnectorInfo struct {
	Connector  string                 `json:"connector"`
	Properties map[string]interface{} `json:"properties"`
}

type BacklightInfo struct {
	Serial     uint32          `json:"serial"`
	Connectors []ConnectorInfo `json:"connectors"`
}

func FromState(state displayconfig.State) *BacklightInfo {
	info := &BacklightInfo{
		Serial:     state.Serial,
		Connectors: make([]ConnectorInfo, 0, len(state.Connectors)),
	}
	for _, connector := range state.Connectors {
		props := make(map[string]interface{}, len(connector.Properties))
		for _, prop := range connector.Properties {
			props[prop.Key] = prop.Value
		}
		info.Connectors = append(info.Connectors, ConnectorInfo{
			Connector:  connector.Name,
			Properties: props,
		})
	}
	return info
}

func GetBacklightInfoJSON(state displayconfig.State) ([]byte, error) {
	return json.MarshalIndent(FromState(state), "", "  ")
}
