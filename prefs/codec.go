package prefs

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// valueKind tags what a stored payload holds.
type valueKind uint8

const (
	kindString valueKind = iota + 1
	kindInt
	kindInt64
	kindFloat32
	kindBool
	kindStringSet
	kindObject
)

// envelope is the persisted form of one value.
type envelope struct {
	Kind    valueKind       `cbor:"1,keyasint"`
	Payload cbor.RawMessage `cbor:"2,keyasint"`
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	return em
}()

// EncodeObject serializes v with the codec used for carrier values.
func EncodeObject(v any) ([]byte, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}

	return data, nil
}

// DecodeObject deserializes data produced by EncodeObject into dst.
func DecodeObject(data []byte, dst any) error {
	if err := cbor.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding into %T: %w", dst, err)
	}

	return nil
}

func encodeEnvelope(kind valueKind, v any) ([]byte, error) {
	payload, err := EncodeObject(v)
	if err != nil {
		return nil, err
	}

	return EncodeObject(envelope{Kind: kind, Payload: payload})
}

func decodeEnvelope(data []byte) (envelope, error) {
	var env envelope
	if err := DecodeObject(data, &env); err != nil {
		return envelope{}, err
	}

	return env, nil
}
