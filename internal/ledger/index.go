package ledger

// orderedIndex keeps ids in insertion order with stable slots.
// Removal tombstones a slot; tombstones are compacted only when an
// insert would otherwise run past the slot arena, which keeps the
// relative order of survivors.
type orderedIndex struct {
	slots    []uint64
	live     []bool
	pos      map[uint64]int
	size     int
	capacity int
}

func newOrderedIndex(capacity int) *orderedIndex {
	return &orderedIndex{
		slots:    make([]uint64, 0, capacity),
		live:     make([]bool, 0, capacity),
		pos:      make(map[uint64]int, capacity),
		capacity: capacity,
	}
}

func (x *orderedIndex) Len() int {
	return x.size
}

func (x *orderedIndex) Full() bool {
	return x.size >= x.capacity
}

func (x *orderedIndex) Contains(id uint64) bool {
	_, ok := x.pos[id]
	return ok
}

// Append adds id at the end; callers check Full first
func (x *orderedIndex) Append(id uint64) bool {
	if x.Full() || x.Contains(id) {
		return false
	}
	if len(x.slots) == x.capacity {
		x.compact()
	}
	x.pos[id] = len(x.slots)
	x.slots = append(x.slots, id)
	x.live = append(x.live, true)
	x.size++
	return true
}

func (x *orderedIndex) Remove(id uint64) bool {
	i, ok := x.pos[id]
	if !ok {
		return false
	}
	x.live[i] = false
	delete(x.pos, id)
	x.size--
	return true
}

// IDs returns live ids in insertion order
func (x *orderedIndex) IDs() []uint64 {
	ids := make([]uint64, 0, x.size)
	for i, id := range x.slots {
		if x.live[i] {
			ids = append(ids, id)
		}
	}
	return ids
}

func (x *orderedIndex) compact() {
	slots := make([]uint64, 0, x.capacity)
	live := make([]bool, 0, x.capacity)
	for i, id := range x.slots {
		if !x.live[i] {
			continue
		}
		x.pos[id] = len(slots)
		slots = append(slots, id)
		live = append(live, true)
	}
	x.slots = slots
	x.live = live
}

func (x *orderedIndex) clone() *orderedIndex {
	c := &orderedIndex{
		slots:    make([]uint64, len(x.slots), x.capacity),
		live:     make([]bool, len(x.live), x.capacity),
		pos:      make(map[uint64]int, len(x.pos)),
		size:     x.size,
		capacity: x.capacity,
	}
	copy(c.slots, x.slots)
	copy(c.live, x.live)
	for id, i := range x.pos {
		c.pos[id] = i
	}
	return c
}
