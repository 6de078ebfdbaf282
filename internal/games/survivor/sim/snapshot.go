package sim

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serialises a snapshot to MessagePack. Field order is fixed by the
// struct layout, so equal states encode to equal bytes.
func Encode(s State) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("sim: encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot produced by Encode.
func Decode(data []byte) (State, error) {
	var s State
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("sim: decode snapshot: %w", err)
	}
	return s, nil
}

// weaponWire is the encoded form of a Weapon. Exactly one variant is set.
type weaponWire struct {
	ID        string        `msgpack:"id"`
	Name      string        `msgpack:"name"`
	Kind      WeaponKind    `msgpack:"kind"`
	Level     int           `msgpack:"level"`
	Cooldown  float64       `msgpack:"cooldown"`
	LastFired float64       `msgpack:"lastFired"`
	Launcher  *LauncherSpec `msgpack:"launcher,omitempty"`
	Aura      *AuraSpec     `msgpack:"aura,omitempty"`
}

// EncodeMsgpack flattens the variant so it can be decoded again.
func (w Weapon) EncodeMsgpack(enc *msgpack.Encoder) error {
	wire := weaponWire{
		ID:        w.ID,
		Name:      w.Name,
		Kind:      w.Kind,
		Level:     w.Level,
		Cooldown:  w.Cooldown,
		LastFired: w.LastFired,
	}
	if l, ok := w.Launcher(); ok {
		wire.Launcher = &l
	}
	if a, ok := w.Aura(); ok {
		wire.Aura = &a
	}
	return enc.Encode(&wire)
}

// DecodeMsgpack restores the variant written by EncodeMsgpack.
func (w *Weapon) DecodeMsgpack(dec *msgpack.Decoder) error {
	var wire weaponWire
	if err := dec.Decode(&wire); err != nil {
		return err
	}
	*w = Weapon{
		ID:        wire.ID,
		Name:      wire.Name,
		Kind:      wire.Kind,
		Level:     wire.Level,
		Cooldown:  wire.Cooldown,
		LastFired: wire.LastFired,
	}
	switch {
	case wire.Launcher != nil:
		w.Spec = *wire.Launcher
	case wire.Aura != nil:
		w.Spec = *wire.Aura
	}
	return nil
}

// Digest returns a hex SHA-256 of the encoded snapshot. Two runs with the
// same seed, tuning and inputs produce the same digest sequence.
func Digest(s State) (string, error) {
	data, err := Encode(s)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
