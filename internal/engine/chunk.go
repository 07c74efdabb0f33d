package engine

// Chunk is a half-open index range [Start, End) owned by one worker.
type Chunk struct {
	Start, End uint64
}

// Len returns End-Start.
func (c Chunk) Len() uint64 { return c.End - c.Start }

// ChunkSize returns ceil((n+1)/threads). threads < 1 is treated as 1.
func ChunkSize(n uint64, threads int) uint64 {
	if threads < 1 {
		threads = 1
	}
	t := uint64(threads)
	return (n + t) / t
}

// Chunks partitions [0, n+1) into contiguous ranges of ChunkSize(n, threads);
// the last one may be shorter. No empty chunk is returned, so fewer than
// threads chunks come back when threads > n+1.
func Chunks(n uint64, threads int) []Chunk {
	size := ChunkSize(n, threads)
	total := n + 1
	out := make([]Chunk, 0, (total+size-1)/size)
	for start := uint64(0); start < total; start += size {
		out = append(out, Chunk{Start: start, End: min(start+size, total)})
	}
	return out
}

// FirstMultiple returns the first multiple of p that is >= start and >= p*p.
func FirstMultiple(p, start uint64) uint64 {
	return max(p*p, (start+p-1)/p*p)
}
