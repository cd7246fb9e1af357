package vec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/errs"
	"github.com/arloliu/zerodex/schema"
)

var testEngine = endian.GetLittleEndianEngine()

// scoreCodec is a minimal 2-byte record for sequence tests.
var scoreCodec = schema.Codec[uint16]{
	Schema: schema.MustNew(schema.Field{Name: "score", Kind: schema.KindUint16}),
	Decode: func(raw []byte, engine endian.EndianEngine) uint16 {
		return engine.Uint16(raw)
	},
	Encode: func(rec uint16, raw []byte, engine endian.EndianEngine) {
		engine.PutUint16(raw, rec)
	},
}

func buildScores(t *testing.T, scores ...uint16) Fixed[uint16] {
	t.Helper()

	var data []byte
	for _, s := range scores {
		data = scoreCodec.Append(data, s, testEngine)
	}
	seq, err := NewFixed(scoreCodec, testEngine, data)
	require.NoError(t, err)

	return seq
}

func TestNewFixed(t *testing.T) {
	t.Run("Valid buffer", func(t *testing.T) {
		seq := buildScores(t, 10, 20, 30)
		require.Equal(t, 3, seq.Len())
	})

	t.Run("Empty buffer", func(t *testing.T) {
		seq, err := NewFixed(scoreCodec, testEngine, nil)
		require.NoError(t, err)
		require.Equal(t, 0, seq.Len())
	})

	t.Run("Misaligned buffer", func(t *testing.T) {
		_, err := NewFixed(scoreCodec, testEngine, []byte{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrMisalignedPayload)
	})
}

func TestFixed_At(t *testing.T) {
	seq := buildScores(t, 10, 20, 30)

	v, ok := seq.At(0)
	require.True(t, ok)
	require.Equal(t, uint16(10), v)

	v, ok = seq.At(2)
	require.True(t, ok)
	require.Equal(t, uint16(30), v)

	_, ok = seq.At(3)
	require.False(t, ok)
	_, ok = seq.At(-1)
	require.False(t, ok)
}

func TestFixed_BinarySearch(t *testing.T) {
	seq := buildScores(t, 10, 20, 30, 40)
	cmpTo := func(target uint16) func(uint16) int {
		return func(v uint16) int {
			return int(v) - int(target)
		}
	}

	t.Run("Exact match", func(t *testing.T) {
		idx, found := seq.BinarySearch(cmpTo(30))
		require.True(t, found)
		require.Equal(t, 2, idx)
	})

	t.Run("Miss returns insertion point", func(t *testing.T) {
		idx, found := seq.BinarySearch(cmpTo(25))
		require.False(t, found)
		require.Equal(t, 2, idx)
	})

	t.Run("Before first", func(t *testing.T) {
		idx, found := seq.BinarySearch(cmpTo(5))
		require.False(t, found)
		require.Equal(t, 0, idx)
	})

	t.Run("After last", func(t *testing.T) {
		idx, found := seq.BinarySearch(cmpTo(99))
		require.False(t, found)
		require.Equal(t, 4, idx)
	})

	t.Run("Empty sequence", func(t *testing.T) {
		empty := buildScores(t)
		idx, found := empty.BinarySearch(cmpTo(1))
		require.False(t, found)
		require.Equal(t, 0, idx)
	})
}

func TestFixed_All(t *testing.T) {
	seq := buildScores(t, 10, 20, 30)

	collect := func() []uint16 {
		var out []uint16
		for _, v := range seq.All() {
			out = append(out, v)
		}
		return out
	}

	require.Equal(t, []uint16{10, 20, 30}, collect())
	// Restartable: a second pass yields the same sequence.
	require.Equal(t, []uint16{10, 20, 30}, collect())

	// Early break stops the iteration.
	count := 0
	for range seq.All() {
		count++
		break
	}
	require.Equal(t, 1, count)
}
