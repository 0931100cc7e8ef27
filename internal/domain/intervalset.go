package domain

import (
	"slices"
	"sort"
	"time"
)

// IntervalSet holds a canonical set of intervals: sorted by start, pairwise
// disjoint, and never touching. Add is the only path that merges, Remove the
// only path that splits.
//
// The zero value is an empty set. An IntervalSet is not safe for concurrent
// use.
type IntervalSet struct {
	items []Interval
}

// Add merges iv into the set. Every member that overlaps or touches iv is
// replaced, together with iv, by one spanning interval.
func (s *IntervalSet) Add(iv Interval) error {
	if err := iv.Validate(); err != nil {
		return err
	}
	iv = iv.UTC()

	// [lo, hi) is the run of members that touch iv.
	lo := sort.Search(len(s.items), func(i int) bool {
		return !s.items[i].End.Before(iv.Start)
	})
	hi := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Start.After(iv.End)
	})

	merged := iv
	if lo < hi {
		if s.items[lo].Start.Before(merged.Start) {
			merged.Start = s.items[lo].Start
		}
		if s.items[hi-1].End.After(merged.End) {
			merged.End = s.items[hi-1].End
		}
	}

	s.items = slices.Replace(s.items, lo, hi, merged)
	return nil
}

// Remove subtracts iv from the set. Covered members are deleted, a member
// strictly containing iv is split in two, and members overlapping one side
// are shrunk. Members that only touch iv are left alone.
func (s *IntervalSet) Remove(iv Interval) error {
	if err := iv.Validate(); err != nil {
		return err
	}
	iv = iv.UTC()

	// [lo, hi) is the run of members that overlap iv.
	lo := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].End.After(iv.Start)
	})
	hi := sort.Search(len(s.items), func(i int) bool {
		return !s.items[i].Start.Before(iv.End)
	})
	if lo >= hi {
		return nil
	}

	rest := make([]Interval, 0, 2)
	if first := s.items[lo]; first.Start.Before(iv.Start) {
		rest = append(rest, Interval{Start: first.Start, End: iv.Start})
	}
	if last := s.items[hi-1]; last.End.After(iv.End) {
		rest = append(rest, Interval{Start: iv.End, End: last.End})
	}

	s.items = slices.Replace(s.items, lo, hi, rest...)
	return nil
}

// Contains reports whether iv is fully covered by the set. Members never
// touch, so coverage by the union means coverage by a single member.
func (s *IntervalSet) Contains(iv Interval) (bool, error) {
	if err := iv.Validate(); err != nil {
		return false, err
	}

	// Last member starting at or before iv.Start.
	idx := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Start.After(iv.Start)
	}) - 1
	if idx < 0 {
		return false, nil
	}
	return s.items[idx].Contains(iv), nil
}

// Intervals returns a copy of the members in ascending order.
func (s *IntervalSet) Intervals() []Interval {
	return slices.Clone(s.items)
}

func (s *IntervalSet) Len() int {
	return len(s.items)
}

// TotalDuration is the summed length of all members.
func (s *IntervalSet) TotalDuration() time.Duration {
	var total time.Duration
	for _, iv := range s.items {
		total += iv.Duration()
	}
	return total
}

func (s *IntervalSet) Clone() IntervalSet {
	return IntervalSet{items: slices.Clone(s.items)}
}
