package diag

import "sort"

// LineIndex maps byte offsets of a source text to 1-based line and column
// numbers. Editor integrations convert analyzer spans with it.
type LineIndex struct {
	starts []int // byte offset of the first byte of each line
	size   int
}

// NewLineIndex builds the index for src.
func NewLineIndex(src string) *LineIndex {
	idx := &LineIndex{starts: []int{0}, size: len(src)}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx.starts = append(idx.starts, i+1)
		}
	}
	return idx
}

// Position returns the line and column of offset. Offsets outside the
// source are clamped to its bounds. Columns count bytes.
func (idx *LineIndex) Position(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > idx.size {
		offset = idx.size
	}

	// last line start <= offset
	i := sort.Search(len(idx.starts), func(i int) bool { return idx.starts[i] > offset }) - 1

	return i + 1, offset - idx.starts[i] + 1
}

// Offset is the inverse of Position. It returns -1 for a line outside the
// source.
func (idx *LineIndex) Offset(line, col int) int {
	if line < 1 || line > len(idx.starts) {
		return -1
	}
	off := idx.starts[line-1] + col - 1
	if off > idx.size {
		off = idx.size
	}
	return off
}

// Lines returns the number of lines in the source.
func (idx *LineIndex) Lines() int { return len(idx.starts) }
