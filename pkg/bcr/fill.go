package bcr

import (
	"github.com/qseclabs/cipherkit/internal/bufpool"
	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/internal/intutils"
)

// Unsigned constrains the typed-integer sampling element types.
type Unsigned interface {
	uint16 | uint32 | uint64
}

// Fill writes elements pseudo-random integers into out[off:off+elements].
// Each element consumes its size in little-endian stream bytes; the
// underlying refill is atomic with respect to the generator.
func Fill[T Unsigned](r *Rng, out []T, off, elements int) error {
	if off < 0 || elements < 0 || off+elements > len(out) {
		return qerrors.NewCryptoError("bcr.Fill", qerrors.ErrInvalidLength)
	}
	if elements == 0 {
		return nil
	}

	var zero T
	size := 2
	switch any(zero).(type) {
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	raw := bufpool.Get(elements * size)
	defer bufpool.Put(raw)
	if err := r.GetBytes(raw); err != nil {
		return err
	}
	for i := 0; i < elements; i++ {
		switch size {
		case 2:
			out[off+i] = T(intutils.Le16(raw, i*2))
		case 4:
			out[off+i] = T(intutils.Le32(raw, i*4))
		default:
			out[off+i] = T(intutils.Le64(raw, i*8))
		}
	}
	return nil
}
