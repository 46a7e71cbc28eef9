package sentinel1decoder

import (
	"github.com/Rich-Hall/sentinel1decoder/internal/huffman"
	"github.com/Rich-Hall/sentinel1decoder/internal/reconstruct"
)

const fdbaqBlockSize = 128

// reconstructBitstream re-encodes the excess symbols decoded past the
// number of symbols a block needs using their own Huffman codes, in
// reverse, and prepends the result to the carried decoder state. Block
// boundaries are bit-granular rather than byte-aligned, so the byte-at-a-time table lookup
// routinely decodes a few symbols beyond what the current block needed;
// those bits must be carried forward rather than dropped, since they
// belong to the start of the next block.
func reconstructBitstream(excess []huffman.SampleCode, tree []huffman.Code, state huffman.State) huffman.State {
	bits := state.Bits
	bitLen := state.Len
	for i := len(excess) - 1; i >= 0; i-- {
		sym := excess[i]
		for _, code := range tree {
			if code.Symbol == sym {
				bits |= code.Bits << bitLen
				bitLen += code.BitLen
				break
			}
		}
	}
	return huffman.State{Bits: bits, Len: bitLen}
}

// fdbaqChannelMode selects what metadata, if any, each block boundary of
// a channel carries: the IE channel carries BRC, the QE channel carries
// THIDX, and IO/QO carry neither (both reuse the values IE/QE already
// produced for that block).
type fdbaqChannelMode int

const (
	modeReadBRC fdbaqChannelMode = iota
	modeReadTHIDX
	modeReuse
)

// decodeFDBAQChannel decodes one channel's worth of FDBAQ symbols,
// advancing *byteIdx as it consumes data, following data block-by-block
// (blocks of up to 128 symbols). brcs/thidxs are appended to when mode
// reads them, or read from when mode reuses prior values.
func decodeFDBAQChannel(data []byte, byteIdx *int, numQuads int, brcs, thidxs *[]uint8, mode fdbaqChannelMode, packetIndex int, channel string) ([]huffman.SampleCode, error) {
	var channelSymbols []huffman.SampleCode
	processed := 0
	state := huffman.State{}

	numBlocks := (numQuads + fdbaqBlockSize - 1) / fdbaqBlockSize

	for blockIdx := 0; blockIdx < numBlocks; blockIdx++ {
		symbolsNeeded := fdbaqBlockSize
		if remaining := numQuads - processed; remaining < symbolsNeeded {
			symbolsNeeded = remaining
		}

		var boundaryBits uint32
		var boundaryLen uint8
		if *byteIdx < len(data) {
			boundaryBits = uint32(state.Bits)<<8 | uint32(data[*byteIdx])
			boundaryLen = state.Len + 8
			*byteIdx++
		} else {
			boundaryBits = uint32(state.Bits)
			boundaryLen = state.Len
		}

		var brc uint8
		var initialSymbols []huffman.SampleCode
		var dec *huffman.Decoder

		switch mode {
		case modeReadBRC:
			brc = uint8(boundaryBits>>(boundaryLen-3)) & 0x07
			if brc > 4 {
				return nil, wrapPacketErr(ErrInvalidBRC, packetIndex, channel, *byteIdx, "")
			}
			*brcs = append(*brcs, brc)
			remainingBits := boundaryBits & (1<<(boundaryLen-3) - 1)
			remainingLen := boundaryLen - 3
			dec = huffman.ForBRC(brc)
			initialSymbols, state = dec.ReadBitstream(remainingBits, remainingLen)

		case modeReadTHIDX:
			thidx := uint8(boundaryBits>>(boundaryLen-8)) & 0xFF
			*thidxs = append(*thidxs, thidx)
			if blockIdx >= len(*brcs) {
				return nil, wrapPacketErr(ErrMetadataMissing, packetIndex, channel, *byteIdx, "missing BRC for block")
			}
			brc = (*brcs)[blockIdx]
			remainingBits := boundaryBits & (1<<(boundaryLen-8) - 1)
			remainingLen := boundaryLen - 8
			dec = huffman.ForBRC(brc)
			initialSymbols, state = dec.ReadBitstream(remainingBits, remainingLen)

		default: // modeReuse
			if blockIdx >= len(*brcs) {
				return nil, wrapPacketErr(ErrMetadataMissing, packetIndex, channel, *byteIdx, "missing BRC for block")
			}
			brc = (*brcs)[blockIdx]
			dec = huffman.ForBRC(brc)
			initialSymbols, state = dec.ReadBitstream(boundaryBits, boundaryLen)
		}

		blockSymbols := initialSymbols

		// Worst case a block needs ceil(128*10/8) + 1 bytes (shortest code is
		// 2 bits, so this is generous); bound the loop so a pathological
		// table entry that advances zero symbols per byte cannot spin
		// forever instead of reporting truncation.
		maxBlockBytes := fdbaqBlockSize*10/8 + 8
		blockBytesRead := 0
		for len(blockSymbols) < symbolsNeeded {
			if *byteIdx >= len(data) {
				return nil, wrapPacketErr(ErrTruncatedPayload, packetIndex, channel, *byteIdx,
					"unexpected end of data decoding symbols")
			}
			if blockBytesRead > maxBlockBytes {
				return nil, wrapPacketErr(ErrTruncatedPayload, packetIndex, channel, *byteIdx,
					"block failed to make forward progress within worst-case byte bound")
			}
			b := data[*byteIdx]
			*byteIdx++
			blockBytesRead++
			newSymbols, next := dec.DecodeByte(state.ID(), b)
			blockSymbols = append(blockSymbols, newSymbols...)
			state = next
		}

		if len(blockSymbols) > symbolsNeeded {
			excess := blockSymbols[symbolsNeeded:]
			blockSymbols = blockSymbols[:symbolsNeeded]
			state = reconstructBitstream(excess, dec.Tree(), state)
		}

		channelSymbols = append(channelSymbols, blockSymbols...)
		processed += symbolsNeeded
	}

	if *byteIdx%2 != 0 {
		*byteIdx++
	}

	return channelSymbols, nil
}

// DecodeFDBAQPacket decodes one Sentinel-1 packet's user data field
// encoded in FDBAQ mode: numQuads quads, with each of the four channels
// Huffman-coded in blocks of up to 128 symbols. The IE channel carries each
// block's BRC; the QE channel carries each block's THIDX; IO and QO
// reuse the BRC established by IE. It returns 2*numQuads complex samples,
// interleaved as
// IE[i]+QE[i]j, IO[i]+QO[i]j, ...
func DecodeFDBAQPacket(data []byte, numQuads int) ([]complex64, error) {
	return decodeFDBAQPacketAt(data, numQuads, 0)
}

func decodeFDBAQPacketAt(data []byte, numQuads, packetIndex int) ([]complex64, error) {
	byteIdx := 0
	var brcs, thidxs []uint8

	sIE, err := decodeFDBAQChannel(data, &byteIdx, numQuads, &brcs, &thidxs, modeReadBRC, packetIndex, "IE")
	if err != nil {
		return nil, err
	}
	sIO, err := decodeFDBAQChannel(data, &byteIdx, numQuads, &brcs, &thidxs, modeReuse, packetIndex, "IO")
	if err != nil {
		return nil, err
	}
	sQE, err := decodeFDBAQChannel(data, &byteIdx, numQuads, &brcs, &thidxs, modeReadTHIDX, packetIndex, "QE")
	if err != nil {
		return nil, err
	}
	sQO, err := decodeFDBAQChannel(data, &byteIdx, numQuads, &brcs, &thidxs, modeReuse, packetIndex, "QO")
	if err != nil {
		return nil, err
	}

	ie, err := reconstruct.Channel(sIE, brcs, thidxs)
	if err != nil {
		return nil, wrapPacketErr(ErrMalformedReconstruction, packetIndex, "IE", -1, err.Error())
	}
	io, err := reconstruct.Channel(sIO, brcs, thidxs)
	if err != nil {
		return nil, wrapPacketErr(ErrMalformedReconstruction, packetIndex, "IO", -1, err.Error())
	}
	qe, err := reconstruct.Channel(sQE, brcs, thidxs)
	if err != nil {
		return nil, wrapPacketErr(ErrMalformedReconstruction, packetIndex, "QE", -1, err.Error())
	}
	qo, err := reconstruct.Channel(sQO, brcs, thidxs)
	if err != nil {
		return nil, wrapPacketErr(ErrMalformedReconstruction, packetIndex, "QO", -1, err.Error())
	}

	out := make([]complex64, 0, len(ie)*2)
	for i := range ie {
		out = append(out, complex(ie[i], qe[i]))
		out = append(out, complex(io[i], qo[i]))
	}
	return out, nil
}
