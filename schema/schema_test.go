package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/errs"
)

var testEngine = endian.GetLittleEndianEngine()

func testSchema(t *testing.T) Schema {
	t.Helper()
	s, err := New(
		Field{Name: "id", Kind: KindInt32},
		Field{Name: "level", Kind: KindUint8, Min: 1, Max: 9},
		Field{Name: "pad", Kind: KindPad, Width: 3},
	)
	require.NoError(t, err)

	return s
}

func TestNew(t *testing.T) {
	t.Run("Valid schema", func(t *testing.T) {
		s := testSchema(t)
		require.Equal(t, 8, s.Width())
		require.Equal(t, 3, s.NumFields())
	})

	t.Run("No fields", func(t *testing.T) {
		_, err := New()
		require.ErrorIs(t, err, errs.ErrInvalidSchema)
	})

	t.Run("Conflicting integer width", func(t *testing.T) {
		_, err := New(Field{Name: "id", Kind: KindInt32, Width: 2})
		require.ErrorIs(t, err, errs.ErrInvalidSchema)
	})

	t.Run("Bytes field without width", func(t *testing.T) {
		_, err := New(Field{Name: "blob", Kind: KindBytes})
		require.ErrorIs(t, err, errs.ErrInvalidSchema)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		_, err := New(Field{Name: "x", Kind: Kind(99)})
		require.ErrorIs(t, err, errs.ErrInvalidSchema)
	})
}

func TestSchema_Validate(t *testing.T) {
	s := testSchema(t)

	valid := func(id int32, level uint8) []byte {
		raw := make([]byte, 8)
		testEngine.PutUint32(raw[0:4], uint32(id)) //nolint: gosec
		raw[4] = level

		return raw
	}

	t.Run("Valid records", func(t *testing.T) {
		data := append(valid(-5, 1), valid(123456, 9)...)
		require.NoError(t, s.Validate(data, testEngine))
	})

	t.Run("Empty buffer", func(t *testing.T) {
		require.NoError(t, s.Validate(nil, testEngine))
	})

	t.Run("Misaligned buffer", func(t *testing.T) {
		err := s.Validate(make([]byte, 7), testEngine)
		require.ErrorIs(t, err, errs.ErrMisalignedPayload)
	})

	t.Run("Field below domain", func(t *testing.T) {
		err := s.Validate(valid(0, 0), testEngine)
		require.ErrorIs(t, err, errs.ErrFieldOutOfRange)
	})

	t.Run("Field above domain", func(t *testing.T) {
		err := s.Validate(valid(0, 10), testEngine)
		require.ErrorIs(t, err, errs.ErrFieldOutOfRange)
	})

	t.Run("Dirty padding", func(t *testing.T) {
		data := valid(0, 5)
		data[6] = 0xFF
		err := s.Validate(data, testEngine)
		require.ErrorIs(t, err, errs.ErrFieldOutOfRange)
	})

	t.Run("Violation in later record", func(t *testing.T) {
		data := append(valid(1, 5), valid(2, 99)...)
		err := s.Validate(data, testEngine)
		require.ErrorIs(t, err, errs.ErrFieldOutOfRange)
		require.Contains(t, err.Error(), "record 1")
	})

	t.Run("Bytes check hook", func(t *testing.T) {
		bs, err := New(Field{Name: "tag", Kind: KindBytes, Width: 2, Check: func(b []byte) error {
			if b[0] == 0 {
				return errs.ErrFieldOutOfRange
			}
			return nil
		}})
		require.NoError(t, err)
		require.NoError(t, bs.Validate([]byte{'a', 'b'}, testEngine))
		require.ErrorIs(t, bs.Validate([]byte{0, 'b'}, testEngine), errs.ErrFieldOutOfRange)
	})
}

type testRecord struct {
	ID    int32
	Level uint8
}

func testCodec(t *testing.T) Codec[testRecord] {
	t.Helper()

	return Codec[testRecord]{
		Schema: testSchema(t),
		Decode: func(raw []byte, engine endian.EndianEngine) testRecord {
			return testRecord{
				ID:    int32(engine.Uint32(raw[0:4])), //nolint: gosec
				Level: raw[4],
			}
		},
		Encode: func(rec testRecord, raw []byte, engine endian.EndianEngine) {
			engine.PutUint32(raw[0:4], uint32(rec.ID)) //nolint: gosec
			raw[4] = rec.Level
		},
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := testCodec(t)

	records := []testRecord{
		{ID: 0, Level: 1},
		{ID: -2147483648, Level: 5},
		{ID: 2147483647, Level: 9},
		{ID: -100, Level: 7},
	}

	var data []byte
	for _, rec := range records {
		data = codec.Append(data, rec, testEngine)
	}

	require.NoError(t, codec.Schema.Validate(data, testEngine))
	for i, want := range records {
		require.Equal(t, want, codec.ReadAt(data, i, testEngine))
	}
}

func TestCodec_Bytes(t *testing.T) {
	codec := testCodec(t)

	raw := codec.Bytes(testRecord{ID: 42, Level: 3}, testEngine)
	require.Len(t, raw, codec.Width())
	require.Equal(t, testRecord{ID: 42, Level: 3}, codec.ReadAt(raw, 0, testEngine))
}
