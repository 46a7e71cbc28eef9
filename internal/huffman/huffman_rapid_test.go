package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestRapidEncodeDecodeRoundTrip builds a random sequence of symbols for a
// random BRC, encodes it to a bitstream by concatenating each symbol's own
// Huffman code, then decodes that bitstream byte-by-byte through the
// lookup table. The decoded symbols must equal the original sequence.
// This is the property that underwrites the excess-symbol reversal trick:
// re-encoding a symbol with its own code and prepending it to a carried
// state must reproduce a bit-identical stream.
func TestRapidEncodeDecodeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		brc := uint8(rapid.IntRange(0, 4).Draw(t, "brc"))
		codes := CodesForBRC(brc)
		maxMag := NumUnsignedValuesPerBRC[brc] - 1

		n := rapid.IntRange(0, 40).Draw(t, "n")
		symbols := make([]SampleCode, n)
		for i := range symbols {
			sign := rapid.Bool().Draw(t, "sign")
			mag := uint8(rapid.IntRange(0, maxMag).Draw(t, "mag"))
			symbols[i] = SampleCode{Sign: sign, Mag: mag}
		}

		// Encode: concatenate each symbol's code, MSB-first, into a byte
		// stream (padding the final byte with zero bits).
		var bitBuf uint64
		var bitCount uint
		var out []byte
		emit := func(bits uint16, bitLen uint8) {
			bitBuf = bitBuf<<bitLen | uint64(bits)
			bitCount += uint(bitLen)
			for bitCount >= 8 {
				shift := bitCount - 8
				out = append(out, byte(bitBuf>>shift))
				bitBuf &= 1<<shift - 1
				bitCount -= 8
			}
		}
		for _, sym := range symbols {
			code := findCode(codes, sym)
			require.NotNil(t, code, "symbol %+v has no code in BRC %d", sym, brc)
			emit(code.Bits, code.BitLen)
		}
		if bitCount > 0 {
			emit(0, uint8(8-bitCount))
		}

		dec := NewDecoder(codes)
		var decoded []SampleCode
		state := State{}
		for _, b := range out {
			syms, next := dec.DecodeByte(state.ID(), b)
			decoded = append(decoded, syms...)
			state = next
		}

		require.GreaterOrEqual(t, len(decoded), len(symbols))
		require.Equal(t, symbols, decoded[:len(symbols)])
	})
}

func findCode(codes []Code, sym SampleCode) *Code {
	for i := range codes {
		if codes[i].Symbol == sym {
			return &codes[i]
		}
	}
	return nil
}
