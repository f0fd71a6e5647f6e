package flat2d

// Sort groups every quad added so far by texture so that Encode can coalesce
// them into as few draw calls as possible, then seals them. Quads added after
// Sort are drawn after the sorted ones, in the order they were added; use
// that for content whose draw order matters (blending).
//
// Sort panics if called twice without an intervening Reset.
func (b *Batch) Sort() {
	if b.sorted {
		panic("flat2d: Sort called twice without Reset")
	}
	b.sorted = true
	b.sortedEnd = len(b.quads)
	b.mergeSort(b.quads[:b.sortedEnd])
}

// sameOrEarlierTexture reports whether a may stay ahead of b. Equal ids
// compare true so that merging keeps insertion order within a texture.
func sameOrEarlierTexture(a, b *Quad) bool {
	return a.Texture.id <= b.Texture.id
}

// mergeSort orders quads by texture, stable, merging runs of doubling length
// back and forth between quads and the batch's scratch slice. The scratch
// slice is kept across frames.
func (b *Batch) mergeSort(quads []Quad) {
	n := len(quads)
	if n < 2 {
		return
	}
	if cap(b.sortBuf) < n {
		b.sortBuf = make([]Quad, n)
	}
	scratch := b.sortBuf[:n]

	from, to := quads, scratch
	for run := 1; run < n; run <<= 1 {
		for lo := 0; lo < n; lo += run << 1 {
			mergeRuns(to, from, lo, min(lo+run, n), min(lo+run<<1, n))
		}
		from, to = to, from
	}
	// After an odd number of passes the result sits in scratch.
	if &from[0] != &quads[0] {
		copy(quads, from)
	}
}

// mergeRuns writes the merge of from[lo:mid] and from[mid:hi] to to[lo:hi].
func mergeRuns(to, from []Quad, lo, mid, hi int) {
	a, b := lo, mid
	for k := lo; k < hi; k++ {
		if b == hi || (a < mid && sameOrEarlierTexture(&from[a], &from[b])) {
			to[k] = from[a]
			a++
		} else {
			to[k] = from[b]
			b++
		}
	}
}
