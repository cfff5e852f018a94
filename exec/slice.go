package exec

import (
	"github.com/pathkit/jsonpath/internal/value"
	"github.com/pathkit/jsonpath/spec"
)

// evalSlice implements the slice-selector semantics of RFC 9535 §2.3.4,
// including its negative-step (reverse) iteration and its separate
// default start/end bounds depending on the step's sign.
func evalSlice(s spec.SliceSelector, it item) []item {
	arr, ok := value.AsArray(it.node)
	if !ok {
		return nil
	}
	length := int64(len(arr))
	step := s.StepOrDefault()
	if step == 0 {
		return nil
	}

	var startDefault, endDefault int64
	if step > 0 {
		startDefault, endDefault = 0, length
	} else {
		startDefault, endDefault = length-1, -length-1
	}
	start, end := startDefault, endDefault
	if s.Start != nil {
		start = *s.Start
	}
	if s.End != nil {
		end = *s.End
	}

	lower, upper := sliceBounds(start, end, step, length)

	var out []item
	if step > 0 {
		for i := lower; i < upper; i += step {
			out = append(out, item{path: appendPath(it.path, spec.Index(i)), node: arr[i]})
		}
	} else {
		for i := upper; i > lower; i += step {
			out = append(out, item{path: appendPath(it.path, spec.Index(i)), node: arr[i]})
		}
	}
	return out
}

// sliceBounds computes the [lower, upper) (step > 0) or (lower, upper]
// (step < 0) iteration range for a slice selector, per RFC 9535
// §2.3.4.2.2's Normalize and Bounds procedures.
func sliceBounds(start, end, step, length int64) (lower, upper int64) {
	normStart := normalizeSliceIndex(start, length)
	normEnd := normalizeSliceIndex(end, length)
	if step >= 0 {
		lower = clamp(normStart, 0, length)
		upper = clamp(normEnd, 0, length)
	} else {
		upper = clamp(normStart, -1, length-1)
		lower = clamp(normEnd, -1, length-1)
	}
	return lower, upper
}

func normalizeSliceIndex(i, length int64) int64 {
	if i >= 0 {
		return i
	}
	return length + i
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
