package shx

import (
	"crypto/cipher"

	"github.com/qseclabs/cipherkit/pkg/serpent"
)

// blockAdapter exposes an initialized Cipher through crypto/cipher.Block
// so it can be composed with the standard block modes (notably GCM). The
// adapter drives the expanded key directly in both directions regardless
// of the direction the engine was initialized for.
type blockAdapter struct {
	c *Cipher
}

// Block returns a crypto/cipher.Block view over the engine. The engine
// must be initialized first and must stay alive while the view is used.
func (c *Cipher) Block() cipher.Block {
	return &blockAdapter{c: c}
}

func (b *blockAdapter) BlockSize() int { return BlockSize }

func (b *blockAdapter) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("shx: block buffer too small")
	}
	serpent.Encrypt[serpent.V1](dst, 0, src, 0, b.c.expKey)
}

func (b *blockAdapter) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("shx: block buffer too small")
	}
	serpent.Decrypt[serpent.V1](dst, 0, src, 0, b.c.expKey)
}
