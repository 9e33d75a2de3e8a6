package substrate

import (
	"math/bits"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// MortalEra encodes a validity window of period blocks starting at current and
// returns it with the birth block whose hash the signature must commit to.
func MortalEra(current, period uint64) (types.MortalEra, uint64) {
	p := uint64(4)
	for p < period && p < 1<<16 {
		p <<= 1
	}

	quantize := max(p>>12, 1)
	phase := (current % p) / quantize * quantize

	low := min(15, max(1, bits.TrailingZeros64(p)-1))
	encoded := uint16(low) | uint16(phase/quantize)<<4

	birth := (current-phase)/p*p + phase

	return types.MortalEra{First: byte(encoded), Second: byte(encoded >> 8)}, birth
}
