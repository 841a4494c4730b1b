package tileset3d

// tileStack is a LIFO scratch buffer reused frame-to-frame so traversal
// never allocates once the tree's working depth has been seen. All four
// traversal stacks the engine owns (base/skip, empty-subtree, selection,
// ancestor) share this type.
//
// Grounded on the reused-buffer idiom in the pack's octree renderer
// (posbuf/distbuf/cubes — "buffers for storing positional input", resized
// only when the working set grows) and on the teacher's sortedChildren
// reused-buffer comment in node.go.
type tileStack struct {
	data      []*Tile
	highWater int
}

func (s *tileStack) push(t *Tile) {
	s.data = append(s.data, t)
	if len(s.data) > s.highWater {
		s.highWater = len(s.data)
	}
}

func (s *tileStack) pop() (*Tile, bool) {
	n := len(s.data)
	if n == 0 {
		return nil, false
	}
	t := s.data[n-1]
	s.data[n-1] = nil // avoid pinning the tile in the reused backing array
	s.data = s.data[:n-1]
	return t, true
}

func (s *tileStack) top() (*Tile, bool) {
	n := len(s.data)
	if n == 0 {
		return nil, false
	}
	return s.data[n-1], true
}

func (s *tileStack) empty() bool { return len(s.data) == 0 }
func (s *tileStack) length() int { return len(s.data) }
func (s *tileStack) reset()      { s.data = s.data[:0] }

// trimToHighWater shrinks the backing array down to this frame's peak
// depth when the array has grown beyond it, and resets the watermark for
// the next frame. Called once per SelectTiles call, after the stack has
// drained back to empty.
func (s *tileStack) trimToHighWater() {
	if cap(s.data) > s.highWater {
		s.data = make([]*Tile, 0, s.highWater)
	}
	s.highWater = 0
}
