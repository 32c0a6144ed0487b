package bufpools

import "testing"

func TestGetPut(t *testing.T) {
	for _, n := range []int{0, 1, 100, 1 << 12, 1<<12 + 1, 1 << 20} {
		b := Get(n)
		if len(b) != 0 {
			t.Errorf("Get(%d) returned non-empty buffer of length %d", n, len(b))
		}
		if cap(b) < n {
			t.Errorf("Get(%d) returned capacity %d", n, cap(b))
		}
		b = append(b, make([]byte, n)...)
		Put(b)
	}

	// Undersized buffers are rejected rather than pooled.
	Put(make([]byte, 10))
}
