package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/freakmaxi/kertish-serve/basics/errors"
)

// Unspecified marks the missing side of a byte range unit. It is never a valid offset
const Unspecified int64 = -1

const bytesUnitPrefix = "bytes="
const byteRangeUnitSeparator = ","

var byteRangeUnitRegex = regexp.MustCompile(`^\d*-\d*$`)

// ByteRangeSpec is one comma separated unit of the Range header as it is requested
type ByteRangeSpec struct {
	Start int64
	End   int64
}

// NewByteRangeSpec parses a single "start-end" unit. Either side can be empty but not both
func NewByteRangeSpec(unit string) (*ByteRangeSpec, error) {
	if !byteRangeUnitRegex.MatchString(unit) {
		return nil, errors.ErrMalformedRange
	}

	dashIdx := strings.Index(unit, "-")

	start, err := parseRangePosition(unit[:dashIdx])
	if err != nil {
		return nil, err
	}
	end, err := parseRangePosition(unit[dashIdx+1:])
	if err != nil {
		return nil, err
	}

	if start == Unspecified && end == Unspecified {
		return nil, errors.ErrMalformedRange
	}

	return &ByteRangeSpec{
		Start: start,
		End:   end,
	}, nil
}

func parseRangePosition(value string) (int64, error) {
	if len(value) == 0 {
		return Unspecified, nil
	}

	position, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// only digits pass the unit regex, so this is an overflow
		return 0, errors.ErrUnsatisfiableRange
	}
	return position, nil
}

// Suffix reports if the unit asks for the last End bytes of the resource
func (b *ByteRangeSpec) Suffix() bool {
	return b.Start == Unspecified
}

// Resolve validates the requested positions against the resource length and
// produces the concrete window to serve
func (b *ByteRangeSpec) Resolve(length int64) (*ResolvedRange, error) {
	if b.Start != Unspecified && b.End != Unspecified && b.Start > b.End {
		return nil, errors.ErrUnsatisfiableRange
	}
	if b.Start > length || b.End > length {
		return nil, errors.ErrUnsatisfiableRange
	}

	start, end := b.Start, b.End
	if b.Suffix() {
		start = length - end
		end = length - 1
	} else if end == Unspecified || end >= length {
		end = length - 1
	}

	resolved := &ResolvedRange{
		Start: start,
		End:   end,
		Size:  end - start + 1,
	}
	if !resolved.Within(length) {
		return nil, errors.ErrUnsatisfiableRange
	}
	return resolved, nil
}

// ResolvedRange is the validated, inclusive byte window of a resource
type ResolvedRange struct {
	Start int64
	End   int64
	Size  int64
}

// FullRange covers the whole resource. For an empty resource it is {0, -1, 0}
func FullRange(length int64) *ResolvedRange {
	return &ResolvedRange{
		Start: 0,
		End:   length - 1,
		Size:  length,
	}
}

// Within checks 0 <= Start <= End < length and the size consistency
func (r *ResolvedRange) Within(length int64) bool {
	return r.Start >= 0 &&
		r.Start <= r.End &&
		r.End < length &&
		r.Size == r.End-r.Start+1
}

// Full reports if the range covers the whole resource
func (r *ResolvedRange) Full(length int64) bool {
	return r.Size == length
}

func (r *ResolvedRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// ParseRange resolves the Range header value against the resource length.
// nil header means the header is not in the request and the whole resource is
// served. When the header carries more than one unit, every unit is validated
// and the last one is returned.
func ParseRange(rangeHeader *string, length int64) (*ResolvedRange, error) {
	if rangeHeader == nil {
		return FullRange(length), nil
	}

	if strings.Index(*rangeHeader, bytesUnitPrefix) != 0 {
		return nil, errors.ErrMalformedRange
	}

	specs := make([]*ByteRangeSpec, 0)
	for _, unit := range strings.Split((*rangeHeader)[len(bytesUnitPrefix):], byteRangeUnitSeparator) {
		spec, err := NewByteRangeSpec(unit)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	var resolved *ResolvedRange
	for _, spec := range specs {
		var err error
		resolved, err = spec.Resolve(length)
		if err != nil {
			return nil, err
		}
	}
	return resolved, nil
}
