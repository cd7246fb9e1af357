package vec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/errs"
	"github.com/arloliu/zerodex/schema"
)

// rankCodec is a 1-byte record for fixed-value map tests.
var rankCodec = schema.Codec[uint8]{
	Schema: schema.MustNew(schema.Field{Name: "rank", Kind: schema.KindUint8}),
	Decode: func(raw []byte, _ endian.EndianEngine) uint8 {
		return raw[0]
	},
	Encode: func(rec uint8, raw []byte, _ endian.EndianEngine) {
		raw[0] = rec
	},
}

func buildRankMap(t *testing.T, keys []string, values []uint8) []byte {
	t.Helper()
	require.Len(t, values, len(keys))

	b := NewVarBuilder(testEngine)
	defer b.Release()
	for _, k := range keys {
		b.Append(k)
	}
	data, err := b.Bytes()
	require.NoError(t, err)
	for _, v := range values {
		data = rankCodec.Append(data, v, testEngine)
	}

	return data
}

func buildVarMap(t *testing.T, keys, values []string) []byte {
	t.Helper()
	require.Len(t, values, len(keys))

	kb := NewVarBuilder(testEngine)
	defer kb.Release()
	vb := NewVarBuilder(testEngine)
	defer vb.Release()
	for i := range keys {
		kb.Append(keys[i])
		vb.Append(values[i])
	}
	data, err := kb.Bytes()
	require.NoError(t, err)
	data, err = vb.AppendTo(data)
	require.NoError(t, err)

	return data
}

func TestNewMap(t *testing.T) {
	t.Run("Valid map", func(t *testing.T) {
		m, err := NewMap(rankCodec, testEngine, buildRankMap(t, []string{"a", "b", "c"}, []uint8{1, 2, 3}))
		require.NoError(t, err)
		require.Equal(t, 3, m.Len())
	})

	t.Run("Empty map", func(t *testing.T) {
		m, err := NewMap(rankCodec, testEngine, buildRankMap(t, nil, nil))
		require.NoError(t, err)
		require.Equal(t, 0, m.Len())
	})

	t.Run("Unsorted keys", func(t *testing.T) {
		_, err := NewMap(rankCodec, testEngine, buildRankMap(t, []string{"b", "a"}, []uint8{1, 2}))
		require.ErrorIs(t, err, errs.ErrEntriesNotSorted)
	})

	t.Run("Duplicate keys", func(t *testing.T) {
		_, err := NewMap(rankCodec, testEngine, buildRankMap(t, []string{"a", "a"}, []uint8{1, 2}))
		require.ErrorIs(t, err, errs.ErrEntriesNotSorted)
	})

	t.Run("Count mismatch", func(t *testing.T) {
		data := buildRankMap(t, []string{"a", "b"}, []uint8{1, 2})
		// One extra value record.
		data = rankCodec.Append(data, 3, testEngine)
		_, err := NewMap(rankCodec, testEngine, data)
		require.ErrorIs(t, err, errs.ErrKeyValueCountMismatch)
	})

	t.Run("Malformed values", func(t *testing.T) {
		wideCodec := schema.Codec[uint16]{
			Schema: schema.MustNew(schema.Field{Name: "v", Kind: schema.KindUint16}),
			Decode: func(raw []byte, engine endian.EndianEngine) uint16 { return engine.Uint16(raw) },
			Encode: func(rec uint16, raw []byte, engine endian.EndianEngine) { engine.PutUint16(raw, rec) },
		}
		// Three 1-byte values cannot align to a 2-byte record width.
		_, err := NewMap(wideCodec, testEngine, buildRankMap(t, []string{"a", "b", "c"}, []uint8{1, 2, 3}))
		require.ErrorIs(t, err, errs.ErrMisalignedPayload)
	})
}

func TestMap_Get(t *testing.T) {
	m, err := NewMap(rankCodec, testEngine, buildRankMap(t, []string{"a", "b", "c"}, []uint8{1, 2, 3}))
	require.NoError(t, err)

	v, ok := m.Get("b")
	require.True(t, ok)
	require.Equal(t, uint8(2), v)

	// Every inserted key resolves to its own value.
	for key, want := range map[string]uint8{"a": 1, "b": 2, "c": 3} {
		v, ok := m.Get(key)
		require.True(t, ok)
		require.Equal(t, want, v)
	}

	_, ok = m.Get("z")
	require.False(t, ok)
	_, ok = m.Get("")
	require.False(t, ok)

	require.True(t, m.ContainsKey("a"))
	require.False(t, m.ContainsKey("ab"))
}

func TestMap_All(t *testing.T) {
	m, err := NewMap(rankCodec, testEngine, buildRankMap(t, []string{"a", "b", "c"}, []uint8{1, 2, 3}))
	require.NoError(t, err)

	var keys []string
	var values []uint8
	for k, v := range m.All() {
		keys = append(keys, k)
		values = append(values, v)
	}
	require.Equal(t, []string{"a", "b", "c"}, keys)
	require.Equal(t, []uint8{1, 2, 3}, values)
}

func TestNewVarMap(t *testing.T) {
	t.Run("Valid map", func(t *testing.T) {
		m, err := NewVarMap(testEngine, buildVarMap(t, []string{"en", "en-US"}, []string{"", "en"}))
		require.NoError(t, err)
		require.Equal(t, 2, m.Len())
	})

	t.Run("Unsorted keys", func(t *testing.T) {
		_, err := NewVarMap(testEngine, buildVarMap(t, []string{"en-US", "en"}, []string{"en", ""}))
		require.ErrorIs(t, err, errs.ErrEntriesNotSorted)
	})

	t.Run("Count mismatch", func(t *testing.T) {
		kb := NewVarBuilder(testEngine)
		defer kb.Release()
		vb := NewVarBuilder(testEngine)
		defer vb.Release()
		kb.Append("a")
		kb.Append("b")
		vb.Append("only-one")
		data, err := kb.Bytes()
		require.NoError(t, err)
		data, err = vb.AppendTo(data)
		require.NoError(t, err)

		_, err = NewVarMap(testEngine, data)
		require.ErrorIs(t, err, errs.ErrKeyValueCountMismatch)
	})
}

func TestVarMap_Get(t *testing.T) {
	m, err := NewVarMap(testEngine, buildVarMap(t,
		[]string{"en-001", "en-150", "en-US"},
		[]string{"en", "en-001", "en"},
	))
	require.NoError(t, err)

	v, ok := m.Get("en-150")
	require.True(t, ok)
	require.Equal(t, "en-001", v)

	_, ok = m.Get("fr")
	require.False(t, ok)
	require.True(t, m.ContainsKey("en-US"))
}

func TestVarMap_All(t *testing.T) {
	m, err := NewVarMap(testEngine, buildVarMap(t, []string{"a", "b"}, []string{"x", "y"}))
	require.NoError(t, err)

	got := map[string]string{}
	var order []string
	for k, v := range m.All() {
		got[k] = v
		order = append(order, k)
	}
	require.Equal(t, map[string]string{"a": "x", "b": "y"}, got)
	require.Equal(t, []string{"a", "b"}, order)
}
