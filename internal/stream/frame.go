// Package stream broadcasts survivor runs to websocket spectators.
// Every message is a complete snapshot, so a spectator that falls behind
// only ever skips frames.
package stream

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
)

// Frame is one binary websocket message, MessagePack-encoded.
type Frame struct {
	Seq   uint64    `msgpack:"seq"`
	RunID string    `msgpack:"run"`
	Mode  string    `msgpack:"mode"`
	State sim.State `msgpack:"state"`
	HUD   sim.HUD   `msgpack:"hud"`
}

// NewFrame builds a frame for st with its derived HUD.
func NewFrame(seq uint64, runID, mode string, st sim.State) Frame {
	return Frame{Seq: seq, RunID: runID, Mode: mode, State: st, HUD: sim.DeriveHUD(st)}
}

// Encode serialises f.
func (f Frame) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("stream: encode frame: %w", err)
	}
	return data, nil
}

// DecodeFrame parses a message produced by Encode.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("stream: decode frame: %w", err)
	}
	return f, nil
}
