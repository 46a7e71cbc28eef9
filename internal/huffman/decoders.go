package huffman

import "sync"

// decoders holds the five process-wide BRC decoders, built once on first
// use and shared read-only thereafter — the same lazy-singleton shape as
// the teacher's gamma tables (sharpyuv/gamma.go).
var (
	decodersOnce sync.Once
	decoders     [5]*Decoder
)

func initDecoders() {
	decodersOnce.Do(func() {
		for brc := uint8(0); brc < 5; brc++ {
			decoders[brc] = NewDecoder(CodesForBRC(brc))
		}
	})
}

// ForBRC returns the process-wide decoder for the given Bit Rate Code,
// building all five lazily on first call. brc must be in 0..=4.
func ForBRC(brc uint8) *Decoder {
	initDecoders()
	return decoders[brc]
}
