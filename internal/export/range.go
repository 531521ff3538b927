package export

import "fmt"

// HeightRange is an inclusive range of block heights.
type HeightRange struct {
	From uint64
	To   uint64
}

// Len returns the number of heights in the range.
func (r HeightRange) Len() uint64 {
	return r.To - r.From + 1
}

// SplitRange splits [from, to] into consecutive ranges of at most batchSize heights.
func SplitRange(from, to, batchSize uint64) ([]HeightRange, error) {
	if batchSize == 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("to height must be >= from height")
	}

	ranges := make([]HeightRange, 0, (to-from)/batchSize+1)
	start := from
	for {
		end := to
		if to-start >= batchSize {
			end = start + batchSize - 1
		}
		ranges = append(ranges, HeightRange{From: start, To: end})
		if end == to {
			break
		}
		start = end + 1
	}

	return ranges, nil
}
