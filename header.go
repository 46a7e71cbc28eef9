package sentinel1decoder

import (
	"fmt"
)

const (
	primaryHeaderLen   = 6
	secondaryHeaderLen = 62
)

// Optional is a tagged-union cell for a columnar field: present carries
// whether Value is meaningful for this row. It is deliberately not a
// pointer — a columnar consumer projecting a field should not pay for an
// allocation per absent cell, and "absent" is a first-class state here,
// not the zero value of T pretending to mean something.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// None returns an absent cell of type T.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// UserDataBounds is the (offset, length) of one packet's user data field
// in the source byte slice — everything in the packet data field after
// any secondary header.
type UserDataBounds struct {
	Offset int
	Length int
}

// PacketHeaderColumns holds one row per decoded packet, as parallel
// columns. Primary header columns are always fully populated; secondary
// header columns are Optional, absent for any row whose secondary header
// flag was 0. Field names follow the S1-IF-ASD-PL-0007 code names.
type PacketHeaderColumns struct {
	// Primary header (6 bytes, always present)
	PacketVerNum       []uint8
	PacketType         []uint8
	SecondaryHeader    []uint8
	PID                []uint8
	PCat               []uint8
	SequenceFlags      []uint8
	PacketSequenceCount []uint16
	PacketDataLen      []uint16

	// Secondary header — datation service
	TCoar []Optional[uint32]
	TFine []Optional[uint16]

	// Secondary header — fixed ancillary data
	Sync   []Optional[uint32]
	DTID   []Optional[uint32]
	ECC    []Optional[uint8]
	TSTMod []Optional[uint8]
	RXChID []Optional[uint8]
	ICID   []Optional[uint32]

	// Secondary header — sub-commutated ancillary data
	ADWIdx []Optional[uint8]
	ADW    []Optional[uint16]

	// Secondary header — counters service
	SPCT  []Optional[uint32]
	PRICT []Optional[uint32]

	// Secondary header — radar configuration support service
	ErrFlg []Optional[uint8]
	BAQMod []Optional[uint8]
	BAQBL  []Optional[uint8]
	RGDec  []Optional[uint8]
	RXG    []Optional[uint8]
	TXPRR  []Optional[uint16]
	TXPSF  []Optional[uint16]
	TXPL   []Optional[uint32]
	Rank   []Optional[uint8]
	PRI    []Optional[uint32]
	SWST   []Optional[uint32]
	SWL    []Optional[uint32]
	SSBFlag []Optional[uint8]
	Pol    []Optional[uint8]
	TComp  []Optional[uint8]

	// Imaging-mode fields, present only when SSBFlag == 0
	EBAdr []Optional[uint8]
	ABAdr []Optional[uint16]

	// Calibration-mode fields, present only when SSBFlag == 1
	SASTM  []Optional[uint8]
	CalTyp []Optional[uint8]
	CBAdr  []Optional[uint16]

	CalMod []Optional[uint8]
	TXPNo  []Optional[uint8]
	SigTyp []Optional[uint8]
	Swap   []Optional[uint8]
	Swath  []Optional[uint8]

	// Secondary header — radar sample count service
	NQ []Optional[uint16]
}

func newPacketHeaderColumns() *PacketHeaderColumns {
	return &PacketHeaderColumns{}
}

func (c *PacketHeaderColumns) appendSecondaryNone() {
	c.TCoar = append(c.TCoar, None[uint32]())
	c.TFine = append(c.TFine, None[uint16]())
	c.Sync = append(c.Sync, None[uint32]())
	c.DTID = append(c.DTID, None[uint32]())
	c.ECC = append(c.ECC, None[uint8]())
	c.TSTMod = append(c.TSTMod, None[uint8]())
	c.RXChID = append(c.RXChID, None[uint8]())
	c.ICID = append(c.ICID, None[uint32]())
	c.ADWIdx = append(c.ADWIdx, None[uint8]())
	c.ADW = append(c.ADW, None[uint16]())
	c.SPCT = append(c.SPCT, None[uint32]())
	c.PRICT = append(c.PRICT, None[uint32]())
	c.ErrFlg = append(c.ErrFlg, None[uint8]())
	c.BAQMod = append(c.BAQMod, None[uint8]())
	c.BAQBL = append(c.BAQBL, None[uint8]())
	c.RGDec = append(c.RGDec, None[uint8]())
	c.RXG = append(c.RXG, None[uint8]())
	c.TXPRR = append(c.TXPRR, None[uint16]())
	c.TXPSF = append(c.TXPSF, None[uint16]())
	c.TXPL = append(c.TXPL, None[uint32]())
	c.Rank = append(c.Rank, None[uint8]())
	c.PRI = append(c.PRI, None[uint32]())
	c.SWST = append(c.SWST, None[uint32]())
	c.SWL = append(c.SWL, None[uint32]())
	c.SSBFlag = append(c.SSBFlag, None[uint8]())
	c.Pol = append(c.Pol, None[uint8]())
	c.TComp = append(c.TComp, None[uint8]())
	c.EBAdr = append(c.EBAdr, None[uint8]())
	c.ABAdr = append(c.ABAdr, None[uint16]())
	c.SASTM = append(c.SASTM, None[uint8]())
	c.CalTyp = append(c.CalTyp, None[uint8]())
	c.CBAdr = append(c.CBAdr, None[uint16]())
	c.CalMod = append(c.CalMod, None[uint8]())
	c.TXPNo = append(c.TXPNo, None[uint8]())
	c.SigTyp = append(c.SigTyp, None[uint8]())
	c.Swap = append(c.Swap, None[uint8]())
	c.Swath = append(c.Swath, None[uint8]())
	c.NQ = append(c.NQ, None[uint16]())
}

// decodePrimaryHeader reads the fixed 6-byte primary header, appends its
// fields as a new row, and returns the secondary header flag and the
// 1-based packet data length (the wire value is the length minus one).
func decodePrimaryHeader(b []byte, c *PacketHeaderColumns) (secondaryHeaderFlag uint8, packetDataLen uint16) {
	tmp16 := uint16(b[0])<<8 | uint16(b[1])
	packetVerNum := uint8(tmp16 >> 13)
	packetType := uint8(tmp16>>12) & 0x01
	secondaryHeaderFlag = uint8(tmp16>>11) & 0x01
	pid := uint8(tmp16>>4) & 0x7F
	pcat := uint8(tmp16 & 0xF)

	tmp16 = uint16(b[2])<<8 | uint16(b[3])
	sequenceFlags := uint8(tmp16 >> 14)
	packetSequenceCount := tmp16 & 0x3FFF

	tmp16 = uint16(b[4])<<8 | uint16(b[5])
	packetDataLen = tmp16 + 1

	c.PacketVerNum = append(c.PacketVerNum, packetVerNum)
	c.PacketType = append(c.PacketType, packetType)
	c.SecondaryHeader = append(c.SecondaryHeader, secondaryHeaderFlag)
	c.PID = append(c.PID, pid)
	c.PCat = append(c.PCat, pcat)
	c.SequenceFlags = append(c.SequenceFlags, sequenceFlags)
	c.PacketSequenceCount = append(c.PacketSequenceCount, packetSequenceCount)
	c.PacketDataLen = append(c.PacketDataLen, packetDataLen)

	return secondaryHeaderFlag, packetDataLen
}

// decodeSecondaryHeader reads the fixed 62-byte secondary header and
// appends its fields as a new row, wrapped as present Optionals, except
// that the mode-dispatched fields of the mode the SSB flag does not select
// (SASTM/CalTyp/CBAdr in imaging mode, EBAdr/ABAdr in calibration mode)
// are appended as absent.
func decodeSecondaryHeader(b []byte, c *PacketHeaderColumns) error {
	_ = b[61] // bounds-check once up front

	// Datation service
	tcoar := beUint32(b[0:4])
	tfine := beUint16(b[4:6])
	c.TCoar = append(c.TCoar, Some(tcoar))
	c.TFine = append(c.TFine, Some(tfine))

	// Fixed ancillary data
	sync := beUint32(b[6:10])
	dtid := beUint32(b[10:14])
	ecc := b[14]
	tstmod := (b[15] >> 4) & 0x07
	rxchid := b[15] & 0x0F
	icid := beUint32(b[16:20])

	c.Sync = append(c.Sync, Some(sync))
	c.DTID = append(c.DTID, Some(dtid))
	c.ECC = append(c.ECC, Some(ecc))
	c.TSTMod = append(c.TSTMod, Some(tstmod))
	c.RXChID = append(c.RXChID, Some(rxchid))
	c.ICID = append(c.ICID, Some(icid))

	// Sub-commutated ancillary data
	adwidx := b[20]
	adw := beUint16(b[21:23])
	c.ADWIdx = append(c.ADWIdx, Some(adwidx))
	c.ADW = append(c.ADW, Some(adw))

	// Counters service
	spct := beUint32(b[23:27])
	prict := beUint32(b[27:31])
	c.SPCT = append(c.SPCT, Some(spct))
	c.PRICT = append(c.PRICT, Some(prict))

	// Radar configuration support service
	errflg := b[31] >> 7
	baqmod := b[31] & 0x1F
	baqbl := b[32]
	rgdec := b[34]
	rxg := b[35]
	txprr := beUint16(b[36:38])
	txpsf := beUint16(b[38:40])
	txpl := uint32(b[40])<<16 | uint32(b[41])<<8 | uint32(b[42])
	rank := b[43] & 0x1F
	pri := uint32(b[44])<<16 | uint32(b[45])<<8 | uint32(b[46])
	swst := uint32(b[47])<<16 | uint32(b[48])<<8 | uint32(b[49])
	swl := uint32(b[50])<<16 | uint32(b[51])<<8 | uint32(b[52])

	ssbflag := b[53] >> 7
	pol := (b[53] >> 4) & 0x07
	tcmp := (b[53] >> 2) & 0x03

	var ebadr, sastm, caltyp Optional[uint8]
	var abadr, cbadr Optional[uint16]
	switch ssbflag {
	case 0:
		tmp16 := beUint16(b[54:56])
		ebadr = Some(uint8(tmp16 >> 12))
		abadr = Some(tmp16 & 0x03FF)
	case 1:
		tmp16 := beUint16(b[54:56])
		sastm = Some(uint8(tmp16 >> 15))
		caltyp = Some(uint8(tmp16>>12) & 0x07)
		cbadr = Some(tmp16 & 0x03FF)
	default:
		return fmt.Errorf("%w: reserved SSB flag value %d", ErrInvalidHeader, ssbflag)
	}

	calmod := b[56] >> 6
	txpno := b[56] & 0x1F
	sigtyp := b[57] >> 4
	swap := b[57] & 0x01
	swath := b[58]

	c.ErrFlg = append(c.ErrFlg, Some(errflg))
	c.BAQMod = append(c.BAQMod, Some(baqmod))
	c.BAQBL = append(c.BAQBL, Some(baqbl))
	c.RGDec = append(c.RGDec, Some(rgdec))
	c.RXG = append(c.RXG, Some(rxg))
	c.TXPRR = append(c.TXPRR, Some(txprr))
	c.TXPSF = append(c.TXPSF, Some(txpsf))
	c.TXPL = append(c.TXPL, Some(txpl))
	c.Rank = append(c.Rank, Some(rank))
	c.PRI = append(c.PRI, Some(pri))
	c.SWST = append(c.SWST, Some(swst))
	c.SWL = append(c.SWL, Some(swl))
	c.SSBFlag = append(c.SSBFlag, Some(ssbflag))
	c.Pol = append(c.Pol, Some(pol))
	c.TComp = append(c.TComp, Some(tcmp))

	c.EBAdr = append(c.EBAdr, ebadr)
	c.ABAdr = append(c.ABAdr, abadr)
	c.SASTM = append(c.SASTM, sastm)
	c.CalTyp = append(c.CalTyp, caltyp)
	c.CBAdr = append(c.CBAdr, cbadr)

	c.CalMod = append(c.CalMod, Some(calmod))
	c.TXPNo = append(c.TXPNo, Some(txpno))
	c.SigTyp = append(c.SigTyp, Some(sigtyp))
	c.Swap = append(c.Swap, Some(swap))
	c.Swath = append(c.Swath, Some(swath))

	nq := beUint16(b[59:61])
	c.NQ = append(c.NQ, Some(nq))

	return nil
}

func beUint16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// DecodeHeaders walks every packet in data, reading its 6-byte primary
// header and, if present, its 62-byte secondary header, and returns the
// resulting columnar record along with each packet's user data bounds.
// It never allocates per-field; all rows land in the columns' shared
// slices.
func DecodeHeaders(data []byte) (*PacketHeaderColumns, []UserDataBounds, error) {
	cols := newPacketHeaderColumns()
	var bounds []UserDataBounds

	pos := 0
	packetIndex := 0
	for pos+primaryHeaderLen <= len(data) {
		secondaryFlag, packetDataLen := decodePrimaryHeader(data[pos:pos+primaryHeaderLen], cols)
		pos += primaryHeaderLen

		if secondaryFlag != 0 {
			if pos+secondaryHeaderLen > len(data) {
				return nil, nil, wrapPacketErr(ErrTruncatedPayload, packetIndex, "", pos,
					"file ended before claimed secondary header length")
			}
			if err := decodeSecondaryHeader(data[pos:pos+secondaryHeaderLen], cols); err != nil {
				return nil, nil, wrapPacketErr(ErrInvalidHeader, packetIndex, "", pos, err.Error())
			}
			bounds = append(bounds, UserDataBounds{
				Offset: pos + secondaryHeaderLen,
				Length: int(packetDataLen) - secondaryHeaderLen,
			})
		} else {
			cols.appendSecondaryNone()
			bounds = append(bounds, UserDataBounds{
				Offset: pos,
				Length: int(packetDataLen),
			})
		}

		pos += int(packetDataLen)
		packetIndex++
	}

	return cols, bounds, nil
}
