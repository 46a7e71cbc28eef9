package sentinel1decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePrimaryHeaderWorkedExample(t *testing.T) {
	// packet_ver_num=0, packet_type=0, secondary_header=0, pid=0, pcat=0,
	// sequence_flags=0, packet_sequence_count=0, packet_data_len = 7+1 = 8.
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x07}
	cols, bounds, err := DecodeHeaders(data)
	require.NoError(t, err)
	require.Len(t, bounds, 1)

	assert.Equal(t, uint8(0), cols.PacketVerNum[0])
	assert.Equal(t, uint8(0), cols.SecondaryHeader[0])
	assert.Equal(t, uint16(8), cols.PacketDataLen[0])
	assert.Equal(t, UserDataBounds{Offset: 6, Length: 8}, bounds[0])
}

func TestDecodeHeadersMixedSecondaryPresence(t *testing.T) {
	sh := make([]byte, secondaryHeaderLen)
	// SSBFLAG = 0 (imaging mode), all other bytes zero.
	sh[53] = 0x00

	packet1Len := secondaryHeaderLen + 4
	primary1 := []byte{0x08, 0x2C, 0xC8, 0x00, 0x00, byte(packet1Len - 1)}
	userData1 := []byte{1, 2, 3, 4}

	packet2Len := 3
	primary2 := []byte{0x00, 0x00, 0xC0, 0x01, 0x00, byte(packet2Len - 1)}
	userData2 := []byte{9, 9, 9}

	var data []byte
	data = append(data, primary1...)
	data = append(data, sh...)
	data = append(data, userData1...)
	data = append(data, primary2...)
	data = append(data, userData2...)

	cols, bounds, err := DecodeHeaders(data)
	require.NoError(t, err)
	require.Len(t, bounds, 2)
	require.Len(t, cols.SecondaryHeader, 2)

	assert.Equal(t, uint8(1), cols.SecondaryHeader[0])
	assert.Equal(t, uint8(0), cols.SecondaryHeader[1])

	assert.True(t, cols.TCoar[0].Present)
	assert.False(t, cols.TCoar[1].Present)

	wantBounds1 := UserDataBounds{Offset: primaryHeaderLen + secondaryHeaderLen, Length: 4}
	wantBounds2 := UserDataBounds{Offset: wantBounds1.Offset + wantBounds1.Length + primaryHeaderLen, Length: 3}
	assert.Equal(t, wantBounds1, bounds[0])
	assert.Equal(t, wantBounds2, bounds[1])
}

func TestDecodeSecondaryHeaderModeDispatch(t *testing.T) {
	imagingSH := make([]byte, secondaryHeaderLen)
	imagingSH[53] = 0x00 // SSBFLAG=0
	imagingSH[54] = 0xAB
	imagingSH[55] = 0xCD

	calSH := make([]byte, secondaryHeaderLen)
	calSH[53] = 0x80 // SSBFLAG=1
	calSH[54] = 0xAB
	calSH[55] = 0xCD

	var cols PacketHeaderColumns
	require.NoError(t, decodeSecondaryHeader(imagingSH, &cols))
	assert.True(t, cols.EBAdr[0].Present)
	assert.True(t, cols.ABAdr[0].Present)
	assert.False(t, cols.SASTM[0].Present)
	assert.False(t, cols.CalTyp[0].Present)
	assert.False(t, cols.CBAdr[0].Present)

	require.NoError(t, decodeSecondaryHeader(calSH, &cols))
	assert.False(t, cols.EBAdr[1].Present)
	assert.False(t, cols.ABAdr[1].Present)
	assert.True(t, cols.SASTM[1].Present)
	assert.True(t, cols.CalTyp[1].Present)
	assert.True(t, cols.CBAdr[1].Present)
}

func TestDecodeHeadersTruncatedSecondaryHeader(t *testing.T) {
	data := []byte{0x08, 0x2C, 0xC8, 0x00, 0x00, 0x3F}
	data = append(data, make([]byte, 10)...) // claims a secondary header but far too short
	_, _, err := DecodeHeaders(data)
	require.Error(t, err)
}
