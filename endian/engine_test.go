package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.NotNil(t, order)
	require.Contains(t, []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}, order)

	// Exactly one of the two predicates holds.
	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
}

func TestGetEngines(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	require.Equal(t, binary.ByteOrder(binary.LittleEndian), binary.ByteOrder(le))
	require.Equal(t, binary.ByteOrder(binary.BigEndian), binary.ByteOrder(be))

	require.Equal(t, uint32(0x01020304), le.Uint32([]byte{0x04, 0x03, 0x02, 0x01}))
	require.Equal(t, uint32(0x01020304), be.Uint32([]byte{0x01, 0x02, 0x03, 0x04}))

	require.Equal(t, []byte{0x34, 0x12}, le.AppendUint16(nil, 0x1234))
	require.Equal(t, []byte{0x12, 0x34}, be.AppendUint16(nil, 0x1234))
}
