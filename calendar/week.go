package calendar

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/envelope"
	"github.com/arloliu/zerodex/errs"
	"github.com/arloliu/zerodex/format"
	"github.com/arloliu/zerodex/internal/pool"
	"github.com/arloliu/zerodex/schema"
	"github.com/arloliu/zerodex/vec"
)

// Weekday is an ISO-8601 day of week, Monday = 1 through Sunday = 7.
type Weekday uint8

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func (w Weekday) String() string {
	switch w {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	case Saturday:
		return "Saturday"
	case Sunday:
		return "Sunday"
	default:
		return "Unknown"
	}
}

// WeekData holds a region's week conventions.
type WeekData struct {
	// FirstWeekday is the day a week starts on in this region.
	FirstWeekday Weekday
	// MinWeekDays is the minimum number of days of a week that must fall
	// in a month or year for the week to count as part of it, 1-7.
	MinWeekDays uint8
}

// WeekDataSchema declares the 2-byte on-disk week data record:
//
//	FirstWeekday: uint8  offset 0, domain 1-7
//	MinWeekDays:  uint8  offset 1, domain 1-7
var WeekDataSchema = schema.MustNew(
	schema.Field{Name: "first_weekday", Kind: schema.KindUint8, Min: 1, Max: 7},
	schema.Field{Name: "min_week_days", Kind: schema.KindUint8, Min: 1, Max: 7},
)

// WeekDataCodec decodes and encodes week data records against WeekDataSchema.
var WeekDataCodec = schema.Codec[WeekData]{
	Schema: WeekDataSchema,
	Decode: func(raw []byte, _ endian.EndianEngine) WeekData {
		return WeekData{
			FirstWeekday: Weekday(raw[0]),
			MinWeekDays:  raw[1],
		}
	},
	Encode: func(wd WeekData, raw []byte, _ endian.EndianEngine) {
		raw[0] = uint8(wd.FirstWeekday)
		raw[1] = wd.MinWeekDays
	},
}

// WeekDataMap is an immutable, zero-copy map from region identifier to
// WeekData. Safe for concurrent readers; borrows its backing buffer.
type WeekDataMap struct {
	m vec.Map[WeekData]
}

// LoadWeekDataMap opens a sealed week data buffer and validates it.
func LoadWeekDataMap(buf []byte) (WeekDataMap, error) {
	payload, engine, err := envelope.Open(buf, format.PayloadWeekData)
	if err != nil {
		return WeekDataMap{}, fmt.Errorf("week data: %w", err)
	}

	return NewWeekDataMap(payload, engine)
}

// NewWeekDataMap wraps a raw (already unsealed) week data payload.
func NewWeekDataMap(payload []byte, engine endian.EndianEngine) (WeekDataMap, error) {
	m, err := vec.NewMap(WeekDataCodec, engine, payload)
	if err != nil {
		return WeekDataMap{}, fmt.Errorf("week data: %w", err)
	}

	return WeekDataMap{m: m}, nil
}

// Len returns the number of regions in the map.
func (w WeekDataMap) Len() int {
	return w.m.Len()
}

// Get returns the week data for a region, or false if the region is absent.
func (w WeekDataMap) Get(region string) (WeekData, bool) {
	return w.m.Get(region)
}

// ContainsRegion reports whether the region is present.
func (w WeekDataMap) ContainsRegion(region string) bool {
	return w.m.ContainsKey(region)
}

// All returns an iterator over (region, week data) pairs in ascending region
// order. The iterator is lazy and restartable.
func (w WeekDataMap) All() iter.Seq2[string, WeekData] {
	return w.m.All()
}

// BuildWeekDataMap encodes per-region week data into a sealed buffer.
//
// Regions are sorted byte-wise; map input guarantees key uniqueness. Week
// data outside the 1-7 domains fails with errs.ErrFieldOutOfRange before
// anything is encoded.
func BuildWeekDataMap(regions map[string]WeekData, opts ...envelope.Option) ([]byte, error) {
	keys := make([]string, 0, len(regions))
	for region, wd := range regions {
		if wd.FirstWeekday < Monday || wd.FirstWeekday > Sunday || wd.MinWeekDays < 1 || wd.MinWeekDays > 7 {
			return nil, fmt.Errorf("%w: region %q week data %+v", errs.ErrFieldOutOfRange, region, wd)
		}
		keys = append(keys, region)
	}
	slices.Sort(keys)

	engine := envelope.EngineOf(opts...)
	keyBuilder := vec.NewVarBuilder(engine)
	defer keyBuilder.Release()
	for _, region := range keys {
		keyBuilder.Append(region)
	}

	buf := pool.GetBakeBuffer()
	defer pool.PutBakeBuffer(buf)

	payload, err := keyBuilder.AppendTo(buf.Bytes())
	if err != nil {
		return nil, err
	}
	for _, region := range keys {
		payload = WeekDataCodec.Append(payload, regions[region], engine)
	}

	return envelope.Seal(format.PayloadWeekData, payload, opts...)
}
