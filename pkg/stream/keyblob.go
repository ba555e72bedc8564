package stream

import (
	"github.com/qseclabs/cipherkit/pkg/keymat"
)

// Key blob layout: three little-endian uint16 lengths followed by the
// raw key, nonce, and info bytes.

// MarshalKeyMaterial serializes a key container.
func MarshalKeyMaterial(km keymat.KeyMaterial) []byte {
	w := NewWriter(6 + len(km.Key) + len(km.Nonce) + len(km.Info))
	w.WriteUint16(uint16(len(km.Key)))
	w.WriteUint16(uint16(len(km.Nonce)))
	w.WriteUint16(uint16(len(km.Info)))
	w.WriteBytes(km.Key)
	w.WriteBytes(km.Nonce)
	w.WriteBytes(km.Info)
	return w.Bytes()
}

// UnmarshalKeyMaterial parses a key container serialized by
// MarshalKeyMaterial.
func UnmarshalKeyMaterial(data []byte) (keymat.KeyMaterial, error) {
	r := NewReader(data)
	var km keymat.KeyMaterial

	kl, err := r.ReadUint16()
	if err != nil {
		return km, err
	}
	nl, err := r.ReadUint16()
	if err != nil {
		return km, err
	}
	il, err := r.ReadUint16()
	if err != nil {
		return km, err
	}
	if km.Key, err = r.ReadBytes(int(kl)); err != nil {
		return km, err
	}
	if km.Nonce, err = r.ReadBytes(int(nl)); err != nil {
		return km, err
	}
	if km.Info, err = r.ReadBytes(int(il)); err != nil {
		return km, err
	}
	return km, nil
}
