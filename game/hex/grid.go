package hex

// Index is a dense handle for a coordinate registered in a Grid.
// Zero is never assigned and means "not registered".
type Index int

// None is the absent index.
const None Index = 0

// Grid is a bidirectional registry between coordinates and dense indices.
//
// Indices are assigned sequentially starting at 1 and are never reused, even
// after Remove. The zero value is an empty grid ready to use. A Grid is not
// safe for concurrent mutation.
type Grid struct {
	index  map[Coord]Index
	coords map[Index]Coord
	next   Index
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{
		index:  make(map[Coord]Index),
		coords: make(map[Index]Coord),
		next:   1,
	}
}

// Index returns the coordinate's index, or None if it is not registered.
func (g *Grid) Index(c Coord) Index {
	return g.index[c]
}

// Contains reports whether c is registered.
func (g *Grid) Contains(c Coord) bool {
	_, ok := g.index[c]
	return ok
}

// Register returns the index of c, allocating the next one if c is new.
func (g *Grid) Register(c Coord) Index {
	if k, ok := g.index[c]; ok {
		return k
	}
	if g.index == nil {
		g.index = make(map[Coord]Index)
		g.coords = make(map[Index]Coord)
	}
	if g.next == None {
		g.next = 1
	}
	k := g.next
	g.next++
	g.index[c] = k
	g.coords[k] = c
	return k
}

// Coord is the reverse lookup. It reports false for None and for removed
// indices.
func (g *Grid) Coord(k Index) (Coord, bool) {
	c, ok := g.coords[k]
	return c, ok
}

// Remove unregisters c and returns the index it held, or None if c was not
// registered. The freed index is not handed out again.
func (g *Grid) Remove(c Coord) Index {
	k, ok := g.index[c]
	if !ok {
		return None
	}
	delete(g.index, c)
	delete(g.coords, k)
	return k
}

// Neighbors returns the indices of the six neighbors of c in canonical
// Direction order, with None for any neighbor that is not registered.
// It never registers anything and c itself need not be registered.
func (g *Grid) Neighbors(c Coord) [NumDirections]Index {
	var out [NumDirections]Index
	for _, d := range Directions {
		out[d] = g.index[c.Step(d)]
	}
	return out
}

// Neighbor returns the index of the neighbor of c in direction d.
func (g *Grid) Neighbor(c Coord, d Direction) Index {
	if !d.Valid() {
		return None
	}
	return g.index[c.Step(d)]
}

// Len returns the number of registered coordinates.
func (g *Grid) Len() int {
	return len(g.index)
}

// Coords returns every registered coordinate ordered by ascending index.
func (g *Grid) Coords() []Coord {
	out := make([]Coord, 0, len(g.coords))
	for k := Index(1); k < g.next; k++ {
		if c, ok := g.coords[k]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Indices returns every live index in ascending order.
func (g *Grid) Indices() []Index {
	out := make([]Index, 0, len(g.coords))
	for k := Index(1); k < g.next; k++ {
		if _, ok := g.coords[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
