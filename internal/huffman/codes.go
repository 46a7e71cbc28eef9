// Package huffman implements the FDBAQ Huffman decoder for Sentinel-1
// SAR Level-0 payloads: the five Bit Rate Code (BRC) trees, a byte-wise
// lookup-table decoder built from them, and the leftover-bit state that
// carries across block and byte boundaries.
package huffman

// SampleCode is the symbol alphabet for FDBAQ Huffman codes: a sign bit
// plus a magnitude in 0..=15.
type SampleCode struct {
	Sign bool
	Mag  uint8
}

// Code is a single Huffman code: a right-aligned bit pattern of BitLen
// bits, paired with the symbol it decodes to.
type Code struct {
	Bits   uint16
	BitLen uint8
	Symbol SampleCode
}

// codesBRC0 through codesBRC4 are the five Huffman trees used by FDBAQ,
// selected per-block by the embedded Bit Rate Code. Reproduced bit-for-bit
// from ESA S1-IF-ASD-PL-0007. For every magnitude m, the table holds two
// codes identical but for their leading bit, encoding (false, m) and
// (true, m).
var codesBRC0 = []Code{
	{Bits: 0b00, BitLen: 2, Symbol: SampleCode{false, 0}},
	{Bits: 0b10, BitLen: 2, Symbol: SampleCode{true, 0}},

	{Bits: 0b010, BitLen: 3, Symbol: SampleCode{false, 1}},
	{Bits: 0b110, BitLen: 3, Symbol: SampleCode{true, 1}},

	{Bits: 0b0110, BitLen: 4, Symbol: SampleCode{false, 2}},
	{Bits: 0b1110, BitLen: 4, Symbol: SampleCode{true, 2}},

	{Bits: 0b0111, BitLen: 4, Symbol: SampleCode{false, 3}},
	{Bits: 0b1111, BitLen: 4, Symbol: SampleCode{true, 3}},
}

var codesBRC1 = []Code{
	{Bits: 0b00, BitLen: 2, Symbol: SampleCode{false, 0}},
	{Bits: 0b10, BitLen: 2, Symbol: SampleCode{true, 0}},

	{Bits: 0b010, BitLen: 3, Symbol: SampleCode{false, 1}},
	{Bits: 0b110, BitLen: 3, Symbol: SampleCode{true, 1}},

	{Bits: 0b0110, BitLen: 4, Symbol: SampleCode{false, 2}},
	{Bits: 0b1110, BitLen: 4, Symbol: SampleCode{true, 2}},

	{Bits: 0b01110, BitLen: 5, Symbol: SampleCode{false, 3}},
	{Bits: 0b11110, BitLen: 5, Symbol: SampleCode{true, 3}},

	{Bits: 0b01111, BitLen: 5, Symbol: SampleCode{false, 4}},
	{Bits: 0b11111, BitLen: 5, Symbol: SampleCode{true, 4}},
}

var codesBRC2 = []Code{
	{Bits: 0b00, BitLen: 2, Symbol: SampleCode{false, 0}},
	{Bits: 0b10, BitLen: 2, Symbol: SampleCode{true, 0}},

	{Bits: 0b010, BitLen: 3, Symbol: SampleCode{false, 1}},
	{Bits: 0b110, BitLen: 3, Symbol: SampleCode{true, 1}},

	{Bits: 0b0110, BitLen: 4, Symbol: SampleCode{false, 2}},
	{Bits: 0b1110, BitLen: 4, Symbol: SampleCode{true, 2}},

	{Bits: 0b01110, BitLen: 5, Symbol: SampleCode{false, 3}},
	{Bits: 0b11110, BitLen: 5, Symbol: SampleCode{true, 3}},

	{Bits: 0b011110, BitLen: 6, Symbol: SampleCode{false, 4}},
	{Bits: 0b111110, BitLen: 6, Symbol: SampleCode{true, 4}},

	{Bits: 0b0111110, BitLen: 7, Symbol: SampleCode{false, 5}},
	{Bits: 0b1111110, BitLen: 7, Symbol: SampleCode{true, 5}},

	{Bits: 0b0111111, BitLen: 7, Symbol: SampleCode{false, 6}},
	{Bits: 0b1111111, BitLen: 7, Symbol: SampleCode{true, 6}},
}

var codesBRC3 = []Code{
	{Bits: 0b000, BitLen: 3, Symbol: SampleCode{false, 0}},
	{Bits: 0b100, BitLen: 3, Symbol: SampleCode{true, 0}},

	{Bits: 0b001, BitLen: 3, Symbol: SampleCode{false, 1}},
	{Bits: 0b101, BitLen: 3, Symbol: SampleCode{true, 1}},

	{Bits: 0b010, BitLen: 3, Symbol: SampleCode{false, 2}},
	{Bits: 0b110, BitLen: 3, Symbol: SampleCode{true, 2}},

	{Bits: 0b0110, BitLen: 4, Symbol: SampleCode{false, 3}},
	{Bits: 0b1110, BitLen: 4, Symbol: SampleCode{true, 3}},

	{Bits: 0b01110, BitLen: 5, Symbol: SampleCode{false, 4}},
	{Bits: 0b11110, BitLen: 5, Symbol: SampleCode{true, 4}},

	{Bits: 0b011110, BitLen: 6, Symbol: SampleCode{false, 5}},
	{Bits: 0b111110, BitLen: 6, Symbol: SampleCode{true, 5}},

	{Bits: 0b0111110, BitLen: 7, Symbol: SampleCode{false, 6}},
	{Bits: 0b1111110, BitLen: 7, Symbol: SampleCode{true, 6}},

	{Bits: 0b01111110, BitLen: 8, Symbol: SampleCode{false, 7}},
	{Bits: 0b11111110, BitLen: 8, Symbol: SampleCode{true, 7}},

	{Bits: 0b011111110, BitLen: 9, Symbol: SampleCode{false, 8}},
	{Bits: 0b111111110, BitLen: 9, Symbol: SampleCode{true, 8}},

	{Bits: 0b011111111, BitLen: 9, Symbol: SampleCode{false, 9}},
	{Bits: 0b111111111, BitLen: 9, Symbol: SampleCode{true, 9}},
}

var codesBRC4 = []Code{
	{Bits: 0b000, BitLen: 3, Symbol: SampleCode{false, 0}},
	{Bits: 0b100, BitLen: 3, Symbol: SampleCode{true, 0}},

	{Bits: 0b0010, BitLen: 4, Symbol: SampleCode{false, 1}},
	{Bits: 0b1010, BitLen: 4, Symbol: SampleCode{true, 1}},

	{Bits: 0b0011, BitLen: 4, Symbol: SampleCode{false, 2}},
	{Bits: 0b1011, BitLen: 4, Symbol: SampleCode{true, 2}},

	{Bits: 0b0100, BitLen: 4, Symbol: SampleCode{false, 3}},
	{Bits: 0b1100, BitLen: 4, Symbol: SampleCode{true, 3}},

	{Bits: 0b0101, BitLen: 4, Symbol: SampleCode{false, 4}},
	{Bits: 0b1101, BitLen: 4, Symbol: SampleCode{true, 4}},

	{Bits: 0b01100, BitLen: 5, Symbol: SampleCode{false, 5}},
	{Bits: 0b11100, BitLen: 5, Symbol: SampleCode{true, 5}},

	{Bits: 0b01101, BitLen: 5, Symbol: SampleCode{false, 6}},
	{Bits: 0b11101, BitLen: 5, Symbol: SampleCode{true, 6}},

	{Bits: 0b01110, BitLen: 5, Symbol: SampleCode{false, 7}},
	{Bits: 0b11110, BitLen: 5, Symbol: SampleCode{true, 7}},

	{Bits: 0b011110, BitLen: 6, Symbol: SampleCode{false, 8}},
	{Bits: 0b111110, BitLen: 6, Symbol: SampleCode{true, 8}},

	{Bits: 0b0111110, BitLen: 7, Symbol: SampleCode{false, 9}},
	{Bits: 0b1111110, BitLen: 7, Symbol: SampleCode{true, 9}},

	{Bits: 0b011111100, BitLen: 9, Symbol: SampleCode{false, 10}},
	{Bits: 0b111111100, BitLen: 9, Symbol: SampleCode{true, 10}},

	{Bits: 0b011111101, BitLen: 9, Symbol: SampleCode{false, 11}},
	{Bits: 0b111111101, BitLen: 9, Symbol: SampleCode{true, 11}},

	{Bits: 0b0111111100, BitLen: 10, Symbol: SampleCode{false, 12}},
	{Bits: 0b1111111100, BitLen: 10, Symbol: SampleCode{true, 12}},

	{Bits: 0b0111111101, BitLen: 10, Symbol: SampleCode{false, 13}},
	{Bits: 0b1111111101, BitLen: 10, Symbol: SampleCode{true, 13}},

	{Bits: 0b0111111110, BitLen: 10, Symbol: SampleCode{false, 14}},
	{Bits: 0b1111111110, BitLen: 10, Symbol: SampleCode{true, 14}},

	{Bits: 0b0111111111, BitLen: 10, Symbol: SampleCode{false, 15}},
	{Bits: 0b1111111111, BitLen: 10, Symbol: SampleCode{true, 15}},
}

var brcTables = [5][]Code{codesBRC0, codesBRC1, codesBRC2, codesBRC3, codesBRC4}

// NumUnsignedValuesPerBRC is the count of distinct unsigned magnitudes
// for each BRC value (0..=4): {4, 5, 7, 10, 16}.
var NumUnsignedValuesPerBRC = [5]int{
	len(codesBRC0) / 2,
	len(codesBRC1) / 2,
	len(codesBRC2) / 2,
	len(codesBRC3) / 2,
	len(codesBRC4) / 2,
}

// CodesForBRC returns the Huffman code table for the given Bit Rate Code.
// brc must be in 0..=4; CodesForBRC panics otherwise, mirroring the
// construction-time invariant that callers have already validated BRC
// while reading block metadata.
func CodesForBRC(brc uint8) []Code {
	if brc > 4 {
		panic("huffman: invalid BRC, expected 0-4")
	}
	return brcTables[brc]
}
