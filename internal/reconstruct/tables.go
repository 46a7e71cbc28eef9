// Package reconstruct maps decoded FDBAQ (sign, mcode) symbols, together
// with a block's BRC and THIDX, to reconstructed floating-point sample
// amplitudes per ESA S1-IF-ASD-PL-0007 §5.2's piecewise reconstruction
// law.
package reconstruct

// Thresholds is, per BRC (0..=4), the THIDX at or below which
// reconstruction is the identity/saturation branch rather than the
// scaled-NRL branch.
var Thresholds = [5]uint8{3, 3, 5, 6, 8}

// SaturationMcode is, per BRC, the magnitude at which the identity branch
// saturates to the tabulated constant Bb[thidx] instead of returning the
// magnitude itself.
var SaturationMcode = [5]uint8{3, 4, 6, 9, 15}

// numThidx is the full range of the 8-bit THIDX field.
const numThidx = 256

// bTables holds, per BRC, the 256 saturation constants Bb[thidx] used
// when thidx <= Thresholds[brc] and mcode == SaturationMcode[brc].
//
// NOTE: the retrieval pack's original_source tree includes the consumer
// of these constants (sample_value_reconstruction.rs) but not the ESA
// Annex table that defines their numeric values (lookup_tables.rs was not
// part of the retrieved sources). The values below reproduce the
// documented *shape* of the table (monotonically increasing saturation
// level per threshold index) but are placeholders, not the verbatim ESA
// constants; see DESIGN.md.
var bTables = [5][numThidx]float32{
	0: genBTable(3, 3.0),
	1: genBTable(4, 3.5),
	2: genBTable(6, 4.5),
	3: genBTable(9, 5.5),
	4: genBTable(15, 7.0),
}

// nrlTables holds, per BRC, the normalized reconstruction levels NRLb[m]
// for m in 0..=SaturationMcode[brc], used when thidx > Thresholds[brc].
// Same provenance caveat as bTables.
var nrlTables = [5][]float32{
	0: genNRLTable(4),
	1: genNRLTable(5),
	2: genNRLTable(7),
	3: genNRLTable(10),
	4: genNRLTable(16),
}

// sigmaFactors is the shared 256-entry scale table applied across all
// BRCs above their threshold. Same provenance caveat as bTables.
var sigmaFactors = genSigmaTable()

// genBTable produces a monotonically increasing saturation-constant curve
// over the 256 THIDX values, anchored near `base` magnitude.
func genBTable(satMcode int, base float32) [numThidx]float32 {
	var t [numThidx]float32
	for i := range t {
		t[i] = base + float32(satMcode)*float32(i)/float32(numThidx-1)*0.25
	}
	return t
}

// genNRLTable produces a monotonically increasing sequence of n normalized
// reconstruction levels, the shape expected of expectations over
// successive quantile bins of a half-Gaussian distribution.
func genNRLTable(n int) []float32 {
	t := make([]float32, n)
	for m := range t {
		t[m] = float32(m) + 0.5
	}
	return t
}

// genSigmaTable produces a monotonically increasing 256-entry scale table.
func genSigmaTable() [numThidx]float32 {
	var t [numThidx]float32
	for i := range t {
		t[i] = 1.0 + float32(i)*float32(i)/float32(numThidx*numThidx)*20.0
	}
	return t
}
