package websocket

import "encoding/json"

const (
	FrameSnapshot = "snapshot"
	FrameAuth     = "auth"

	AuthSignedIn  = "signed_in"
	AuthSignedOut = "signed_out"
)

// Frame is one JSON message pushed to the browser.
type Frame struct {
	Type       string      `json:"type"`
	Collection string      `json:"collection,omitempty"`
	State      string      `json:"state,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

func SnapshotFrame(collection string, items interface{}) Frame {
	return Frame{Type: FrameSnapshot, Collection: collection, Data: items}
}

func AuthFrame(state string) Frame {
	return Frame{Type: FrameAuth, State: state}
}

func (f Frame) encode() ([]byte, error) {
	return json.Marshal(f)
}
