package batch

import "fmt"

// Split de-interleaves per-buffer results into one fresh slice per graph.
func (b *Batch) Split(buffers [][]int32) ([][]int32, error) {
	if err := b.checkBuffers(buffers); err != nil {
		return nil, err
	}

	out := make([][]int32, len(b.graphs))
	for g := range b.graphs {
		buf, base := b.SlotBase(g)
		count := b.graphs[g].NumNodes()
		out[g] = make([]int32, count)
		copy(out[g], buffers[buf][base:base+count])
	}
	return out, nil
}

// WriteBack copies graph g's slice of the result buffers into dst, which must
// hold exactly NodesCount(g) entries.
func (b *Batch) WriteBack(g int, buffers [][]int32, dst []int32) error {
	if err := b.checkBuffers(buffers); err != nil {
		return err
	}
	count := b.graphs[g].NumNodes()
	if len(dst) != count {
		return fmt.Errorf("%w: graph %d destination has %d slots, want %d", ErrResultSize, g, len(dst), count)
	}
	buf, base := b.SlotBase(g)
	copy(dst, buffers[buf][base:base+count])
	return nil
}

func (b *Batch) checkBuffers(buffers [][]int32) error {
	sizes := b.BufferSizes()
	if len(buffers) != len(sizes) {
		return fmt.Errorf("%w: %d buffers, want %d", ErrResultSize, len(buffers), len(sizes))
	}
	for i, size := range sizes {
		if len(buffers[i]) != size {
			return fmt.Errorf("%w: buffer %d has %d slots, want %d", ErrResultSize, i, len(buffers[i]), size)
		}
	}
	return nil
}
