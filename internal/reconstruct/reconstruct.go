package reconstruct

import (
	"fmt"
	"sync"

	"github.com/Rich-Hall/sentinel1decoder/internal/huffman"
)

// ErrMalformed reports an mcode outside the valid range for a given BRC.
// Wrapped by callers with packet/channel context.
type ErrMalformed struct {
	Mcode uint8
	BRC   uint8
	THIDX uint8
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("reconstruct: mcode %d out of range for brc %d thidx %d", e.Mcode, e.BRC, e.THIDX)
}

// blockOffsets[brc] is the flat-table offset of BRC's block: each BRC
// occupies 256*NumUnsignedValuesPerBRC[brc] entries.
var blockOffsets [5]int

// flatTable is the precomputed (brc, thidx, mcode) -> amplitude table,
// built once and read concurrently thereafter.
var (
	flatTable     []float32
	flatTableOnce sync.Once
)

func initFlatTable() {
	flatTableOnce.Do(func() {
		offset := 0
		total := 0
		for brc := 0; brc < 5; brc++ {
			blockOffsets[brc] = offset
			n := numThidx * huffman.NumUnsignedValuesPerBRC[brc]
			offset += n
			total += n
		}
		flatTable = make([]float32, total)
		for brc := uint8(0); brc < 5; brc++ {
			mcodeCount := huffman.NumUnsignedValuesPerBRC[brc]
			for thidx := 0; thidx < numThidx; thidx++ {
				for mcode := 0; mcode < mcodeCount; mcode++ {
					v, err := computeUnsignedSampleValue(uint8(mcode), brc, uint8(thidx))
					if err != nil {
						// mcode ranges over exactly 0..mcodeCount-1, which is
						// always in range for its own BRC; a failure here is a
						// programming error in the table shapes above.
						panic(err)
					}
					idx := blockOffsets[brc] + thidx*mcodeCount + mcode
					flatTable[idx] = v
				}
			}
		}
	})
}

// computeUnsignedSampleValue implements the piecewise reconstruction law
// of spec.md §4.3 for a single (mcode, brc, thidx) triple, before the sign
// multiplier is applied.
func computeUnsignedSampleValue(mcode, brc, thidx uint8) (float32, error) {
	threshold := Thresholds[brc]
	satMcode := SaturationMcode[brc]

	if thidx <= threshold {
		if mcode < satMcode {
			return float32(mcode), nil
		}
		if mcode == satMcode {
			return bTables[brc][thidx], nil
		}
		return 0, &ErrMalformed{Mcode: mcode, BRC: brc, THIDX: thidx}
	}

	if mcode > satMcode {
		return 0, &ErrMalformed{Mcode: mcode, BRC: brc, THIDX: thidx}
	}
	return nrlTables[brc][mcode] * sigmaFactors[thidx], nil
}

// lookupUnsignedSampleValue is the O(1) runtime path, reading the
// precomputed flat table built by initFlatTable.
func lookupUnsignedSampleValue(mcode, brc, thidx uint8) float32 {
	mcodeCount := huffman.NumUnsignedValuesPerBRC[brc]
	idx := blockOffsets[brc] + int(thidx)*mcodeCount + int(mcode)
	return flatTable[idx]
}

// Channel maps a channel's decoded (sign, mcode) symbol sequence through
// the reconstruction table, applying the BRC/THIDX sequence block by
// block (blocks of up to 128 symbols; the final block may be shorter).
// len(brcs) must equal len(thidxs); both must cover every block in data.
func Channel(data []huffman.SampleCode, brcs, thidxs []uint8) ([]float32, error) {
	if len(brcs) != len(thidxs) {
		return nil, fmt.Errorf("reconstruct: mismatched BRC/THIDX lengths: %d vs %d", len(brcs), len(thidxs))
	}

	initFlatTable()

	out := make([]float32, 0, len(data))
	n := 0
	for blockIdx, brc := range brcs {
		remaining := len(data) - n
		if remaining <= 0 {
			break
		}
		blockLen := 128
		if remaining < blockLen {
			blockLen = remaining
		}
		thidx := thidxs[blockIdx]
		if brc > 4 {
			return nil, fmt.Errorf("reconstruct: invalid brc %d in block %d", brc, blockIdx)
		}
		for _, sym := range data[n : n+blockLen] {
			if int(sym.Mag) >= huffman.NumUnsignedValuesPerBRC[brc] {
				return nil, &ErrMalformed{Mcode: sym.Mag, BRC: brc, THIDX: thidx}
			}
			v := lookupUnsignedSampleValue(sym.Mag, brc, thidx)
			if sym.Sign {
				v = -v
			}
			out = append(out, v)
		}
		n += blockLen
	}
	return out, nil
}
