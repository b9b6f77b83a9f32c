package sizefield

// cellBlockSize is the number of cells per allocation block. Cells are
// uniformly sized and numerous, so they are handed out from pre-sized
// slabs instead of being allocated one by one.
const cellBlockSize = 256

// cellPool is a bump allocator over slabs of cells. Allocated cells
// live until the whole pool is reset; nothing is freed in isolation.
type cellPool struct {
	blocks [][]Cell
	used   int // cells handed out from the last block
}

func newCellPool() *cellPool {
	return &cellPool{
		blocks: [][]Cell{make([]Cell, cellBlockSize)},
	}
}

// alloc returns a zeroed cell from the current block, growing the pool
// by one block when the current one is exhausted.
func (p *cellPool) alloc() *Cell {
	if p.used == cellBlockSize {
		p.blocks = append(p.blocks, make([]Cell, cellBlockSize))
		p.used = 0
	}

	block := p.blocks[len(p.blocks)-1]
	c := &block[p.used]
	p.used++
	return c
}

// reset drops every block. Previously handed out cells must not be used
// afterwards.
func (p *cellPool) reset() {
	p.blocks = [][]Cell{make([]Cell, cellBlockSize)}
	p.used = 0
}

// size is the total number of cells handed out.
func (p *cellPool) size() int {
	return (len(p.blocks)-1)*cellBlockSize + p.used
}
