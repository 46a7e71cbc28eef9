package sentinel1decoder

import "github.com/Rich-Hall/sentinel1decoder/internal/bitio"

// tenBitToSigned converts a packed 10-bit unsigned code (1 sign bit + 9
// magnitude bits) into a signed amplitude.
func tenBitToSigned(code uint16) float32 {
	sign := float32(1)
	if code>>9&0x1 == 1 {
		sign = -1
	}
	return sign * float32(code&0x1FF)
}

// decodeBypassChannel decodes one channel (IE, IO, QE, or QO) of Bypass
// payload data: numQuads samples, each a packed 10-bit signed code
// (1 sign bit + 9 magnitude bits), concatenated MSB-first with no padding
// between samples.
func decodeBypassChannel(data []byte, startByteIdx, numQuads, packetIndex int, channel string) ([]float32, error) {
	if startByteIdx > len(data) {
		return nil, wrapPacketErr(ErrTruncatedPayload, packetIndex, channel, startByteIdx,
			"channel start offset beyond payload")
	}

	r := bitio.NewReader(data[startByteIdx:])
	samples := make([]float32, 0, numQuads)
	for i := 0; i < numQuads; i++ {
		code, err := r.ReadBits(10)
		if err != nil {
			return nil, wrapPacketErr(ErrTruncatedPayload, packetIndex, channel, startByteIdx+r.BitPos()/8,
				"unexpected end of data decoding channel")
		}
		samples = append(samples, tenBitToSigned(uint16(code)))
	}
	return samples, nil
}

// DecodeBypassPacket decodes one Sentinel-1 packet's user data field
// encoded in Bypass mode: numQuads quads, packed as four channels (IE, IO,
// QE, QO) of numQuads 10-bit signed values each, each channel padded to
// the next 16-bit word boundary. It returns 2*numQuads complex samples,
// interleaved as
// IE[i]+QE[i]j, IO[i]+QO[i]j, ...
func DecodeBypassPacket(data []byte, numQuads int) ([]complex64, error) {
	return decodeBypassPacketAt(data, numQuads, 0)
}

func decodeBypassPacketAt(data []byte, numQuads, packetIndex int) ([]complex64, error) {
	numWords := (numQuads*10 + 15) / 16
	bytesPerChannel := numWords * 2

	ie, err := decodeBypassChannel(data, 0, numQuads, packetIndex, "IE")
	if err != nil {
		return nil, err
	}
	io, err := decodeBypassChannel(data, bytesPerChannel, numQuads, packetIndex, "IO")
	if err != nil {
		return nil, err
	}
	qe, err := decodeBypassChannel(data, 2*bytesPerChannel, numQuads, packetIndex, "QE")
	if err != nil {
		return nil, err
	}
	qo, err := decodeBypassChannel(data, 3*bytesPerChannel, numQuads, packetIndex, "QO")
	if err != nil {
		return nil, err
	}

	out := make([]complex64, 0, len(ie)*2)
	for i := range ie {
		out = append(out, complex(ie[i], qe[i]))
		out = append(out, complex(io[i], qo[i]))
	}
	return out, nil
}
