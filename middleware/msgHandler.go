package middleware

import (
	"encoding/json"

	"github.com/Tk21111/termdraw/config"
)

func DecodeServerEvent(msg []byte) (config.ServerEvent, error) {
	var ev config.ServerEvent

	if err := json.Unmarshal(msg, &ev); err != nil {
		return config.ServerEvent{}, err
	}

	return ev, nil
}

func DecodeClientCommand(msg []byte) (config.ClientCommand, error) {
	var cmd config.ClientCommand

	if err := json.Unmarshal(msg, &cmd); err != nil {
		return config.ClientCommand{}, err
	}

	return cmd, nil
}

// EncodeNetworkMsg returns nil when v cannot be encoded.
func EncodeNetworkMsg(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
