package format

type (
	CompressionType uint8
	PayloadType     uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	PayloadEras     PayloadType = 0x1 // PayloadEras is an era start-date table.
	PayloadParents  PayloadType = 0x2 // PayloadParents is a locale parent map.
	PayloadWeekData PayloadType = 0x3 // PayloadWeekData is a per-region week data map.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (p PayloadType) String() string {
	switch p {
	case PayloadEras:
		return "Eras"
	case PayloadParents:
		return "Parents"
	case PayloadWeekData:
		return "WeekData"
	default:
		return "Unknown"
	}
}
