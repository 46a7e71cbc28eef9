package sentinel1decoder

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DecodeBypassBatch decodes a batch of independently-framed Bypass
// packets in parallel, bounded to GOMAXPROCS concurrent workers. On the
// first decode failure the whole batch is abandoned: partial results are
// discarded and the triggering packet's index is recorded on the
// returned error.
func DecodeBypassBatch(packets [][]byte, numQuads int) ([][]complex64, error) {
	return decodeBatch(packets, numQuads, decodeBypassPacketAt)
}

// DecodeFDBAQBatch decodes a batch of independently-framed FDBAQ packets
// in parallel, with the same bounded-concurrency, first-error-wins
// semantics as DecodeBypassBatch.
func DecodeFDBAQBatch(packets [][]byte, numQuads int) ([][]complex64, error) {
	return decodeBatch(packets, numQuads, decodeFDBAQPacketAt)
}

func decodeBatch(packets [][]byte, numQuads int, decode func([]byte, int, int) ([]complex64, error)) ([][]complex64, error) {
	results := make([][]complex64, len(packets))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, packet := range packets {
		i, packet := i, packet
		g.Go(func() error {
			out, err := decode(packet, numQuads, i)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
