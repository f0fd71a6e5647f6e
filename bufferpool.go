package flat2d

import "math/bits"

// bufferPool recycles instance data slices bucketed by power-of-two
// capacity. After warmup, acquire and release do not allocate.
type bufferPool struct {
	buckets map[int][][]float32
}

// acquire returns a slice of length n. Its contents are unspecified.
func (p *bufferPool) acquire(n int) []float32 {
	c := nextPowerOfTwo(n)
	if stack := p.buckets[c]; len(stack) > 0 {
		s := stack[len(stack)-1]
		p.buckets[c] = stack[:len(stack)-1]
		return s[:n]
	}
	return make([]float32, n, c)
}

// release hands s back for reuse. s must come from acquire.
func (p *bufferPool) release(s []float32) {
	if s == nil {
		return
	}
	if p.buckets == nil {
		p.buckets = make(map[int][][]float32)
	}
	c := cap(s)
	p.buckets[c] = append(p.buckets[c], s[:0])
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
