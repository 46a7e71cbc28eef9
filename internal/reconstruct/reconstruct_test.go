package reconstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Rich-Hall/sentinel1decoder/internal/huffman"
)

func TestComputeUnsignedSampleValueIdentityBranch(t *testing.T) {
	for brc := uint8(0); brc < 5; brc++ {
		for mcode := uint8(0); mcode < SaturationMcode[brc]; mcode++ {
			v, err := computeUnsignedSampleValue(mcode, brc, 0)
			require.NoError(t, err)
			assert.Equal(t, float32(mcode), v, "brc %d mcode %d", brc, mcode)
		}
	}
}

func TestComputeUnsignedSampleValueOutOfRange(t *testing.T) {
	for brc := uint8(0); brc < 5; brc++ {
		_, err := computeUnsignedSampleValue(SaturationMcode[brc]+1, brc, 0)
		require.Error(t, err)
		var target *ErrMalformed
		assert.ErrorAs(t, err, &target)
	}
}

// TestPiecewiseContinuityAtThreshold checks the reconstruction's behavior
// either side of THIDX == Thresholds[brc]: the saturation-mcode value must
// not regress below its pre-threshold level once the NRL branch engages.
func TestPiecewiseContinuityAtThreshold(t *testing.T) {
	for brc := uint8(0); brc < 5; brc++ {
		th := Thresholds[brc]
		below, err := computeUnsignedSampleValue(SaturationMcode[brc], brc, th)
		require.NoError(t, err)
		if th == 255 {
			continue
		}
		above, err := computeUnsignedSampleValue(SaturationMcode[brc], brc, th+1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, above, below, "brc %d threshold %d", brc, th)
	}
}

func TestChannelAppliesSignAndBlocks(t *testing.T) {
	brcs := []uint8{0, 0}
	thidxs := []uint8{0, 0}
	data := make([]huffman.SampleCode, 130)
	for i := range data {
		data[i] = huffman.SampleCode{Sign: i%2 == 0, Mag: 1}
	}
	out, err := Channel(data, brcs, thidxs)
	require.NoError(t, err)
	require.Len(t, out, 130)
	for i, v := range out {
		if i%2 == 0 {
			assert.Less(t, v, float32(0))
		} else {
			assert.Greater(t, v, float32(0))
		}
	}
}

func TestChannelRejectsMismatchedLengths(t *testing.T) {
	_, err := Channel(nil, []uint8{0}, []uint8{0, 1})
	assert.Error(t, err)
}

func TestChannelRejectsOutOfRangeMcode(t *testing.T) {
	data := []huffman.SampleCode{{Sign: false, Mag: 255}}
	_, err := Channel(data, []uint8{0}, []uint8{0})
	require.Error(t, err)
	var target *ErrMalformed
	assert.ErrorAs(t, err, &target)
}

// TestRapidLookupMatchesCompute checks the precomputed flat table agrees
// with the direct piecewise computation for every in-range triple.
func TestRapidLookupMatchesCompute(t *testing.T) {
	initFlatTable()
	rapid.Check(t, func(t *rapid.T) {
		brc := uint8(rapid.IntRange(0, 4).Draw(t, "brc"))
		thidx := uint8(rapid.IntRange(0, 255).Draw(t, "thidx"))
		mcode := uint8(rapid.IntRange(0, huffman.NumUnsignedValuesPerBRC[brc]-1).Draw(t, "mcode"))

		want, err := computeUnsignedSampleValue(mcode, brc, thidx)
		require.NoError(t, err)
		got := lookupUnsignedSampleValue(mcode, brc, thidx)
		assert.Equal(t, want, got)
	})
}
