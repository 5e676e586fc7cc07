package datatable

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Selection is the selection state of the master dataset,
// one flag per master row, stored as roaring bitmap of master indices.
//
// The selection is never reordered by view transformations.
// It is reset exactly when the number of master rows changes.
// Writes to indices outside [0, Len()) are ignored.
//
// A Selection is not safe for concurrent use.
type Selection struct {
	size int
	bits *roaring.Bitmap
}

// NewSelection returns an all-zero selection for size master rows.
func NewSelection(size int) *Selection {
	return &Selection{size: max(size, 0), bits: roaring.New()}
}

// Len returns the number of master rows.
func (s *Selection) Len() int { return s.size }

// Resize resets the selection to all-zero if size
// differs from the current number of master rows
// and returns if it did.
func (s *Selection) Resize(size int) bool {
	size = max(size, 0)
	if size == s.size {
		return false
	}
	s.size = size
	s.bits.Clear()
	return true
}

// Clear unselects all rows.
func (s *Selection) Clear() {
	s.bits.Clear()
}

func (s *Selection) inRange(index int) bool {
	return index >= 0 && index < s.size
}

// IsSelected returns false for out of range indices.
func (s *Selection) IsSelected(index int) bool {
	return s.inRange(index) && s.bits.Contains(uint32(index))
}

// Set writes the selection flag of a master index
// and returns false if the index is out of range.
func (s *Selection) Set(index int, selected bool) bool {
	if !s.inRange(index) {
		return false
	}
	if selected {
		s.bits.Add(uint32(index))
	} else {
		s.bits.Remove(uint32(index))
	}
	return true
}

// Count returns the number of selected rows.
func (s *Selection) Count() int {
	return int(s.bits.GetCardinality())
}

// Selected returns the selected master indices in ascending order.
func (s *Selection) Selected() []int {
	indices := make([]int, 0, s.bits.GetCardinality())
	it := s.bits.Iterator()
	for it.HasNext() {
		indices = append(indices, int(it.Next()))
	}
	return indices
}

// Bits returns the selection as 0/1 flags indexed by master index.
func (s *Selection) Bits() []uint8 {
	bits := make([]uint8, s.size)
	it := s.bits.Iterator()
	for it.HasNext() {
		bits[it.Next()] = 1
	}
	return bits
}

// SelectAll sets the flag of every master index in processedIndices,
// the indices of the currently filtered rows.
// Rows outside of processedIndices keep their flag.
func (s *Selection) SelectAll(selected bool, processedIndices []int) {
	for _, index := range processedIndices {
		s.Set(index, selected)
	}
}

// SelectRow resolves the row at relativeRow within the group groupIndex
// of the current page to its master index and sets its flag.
// Returns the master index or false if the coordinates are out of range.
func (s *Selection) SelectRow(selected bool, relativeRow, groupIndex int, paginatedIndices [][]int) (int, bool) {
	index, ok := ResolvePageRow(relativeRow, groupIndex, paginatedIndices)
	if !ok {
		return -1, false
	}
	return index, s.Set(index, selected)
}

// Project returns the selection flags of the passed
// per group master indices, co-indexed with them.
func (s *Selection) Project(groupIndices [][]int) [][]bool {
	projected := make([][]bool, len(groupIndices))
	for g, indices := range groupIndices {
		flags := make([]bool, len(indices))
		for i, index := range indices {
			flags[i] = s.IsSelected(index)
		}
		projected[g] = flags
	}
	return projected
}

// ResolvePageRow returns paginatedIndices[groupIndex][relativeRow]
// or false if the coordinates are out of range.
func ResolvePageRow(relativeRow, groupIndex int, paginatedIndices [][]int) (int, bool) {
	if groupIndex < 0 || groupIndex >= len(paginatedIndices) {
		return -1, false
	}
	group := paginatedIndices[groupIndex]
	if relativeRow < 0 || relativeRow >= len(group) {
		return -1, false
	}
	return group[relativeRow], true
}

// ProcessedRowOptions are the page relative coordinates
// of a row event passed to GetProcessedRowInd.
type ProcessedRowOptions struct {
	RelativeInd     int
	GroupInd        int
	CurrentPage     int
	CurrentPageSize int

	// CurrentGroup is the active group column, see IsGrouped.
	CurrentGroup string

	// ProcessedIndices are the sorted master indices per group
	// before pagination.
	ProcessedIndices [][]int
}

// GetProcessedRowInd returns the position of a page relative row
// in the concatenation of ProcessedIndices.
//
// Without grouping that is the page start plus RelativeInd.
// With grouping the rows of all groups preceding GroupInd are added,
// plus the rows of the group itself that were shown on previous pages.
// Returns -1 for an out of range GroupInd.
func GetProcessedRowInd(opts ProcessedRowOptions) int {
	pageStart, _ := PageWindow(opts.CurrentPageSize, opts.CurrentPage)
	if !IsGrouped(opts.CurrentGroup) {
		return pageStart + opts.RelativeInd
	}
	if opts.GroupInd < 0 || opts.GroupInd >= len(opts.ProcessedIndices) {
		return -1
	}
	groupStart := 0
	for _, indices := range opts.ProcessedIndices[:opts.GroupInd] {
		groupStart += len(indices)
	}
	// Rows of the group on previous pages
	onPreviousPages := min(max(pageStart-groupStart, 0), len(opts.ProcessedIndices[opts.GroupInd]))
	return groupStart + onPreviousPages + opts.RelativeInd
}

// ProcessedMasterIndex returns the master index at position
// pos of the concatenation of processedIndices.
func ProcessedMasterIndex(pos int, processedIndices [][]int) (int, bool) {
	if pos < 0 {
		return -1, false
	}
	for _, indices := range processedIndices {
		if pos < len(indices) {
			return indices[pos], true
		}
		pos -= len(indices)
	}
	return -1, false
}
