package pools

import (
	"sync"
	"testing"
)

func TestSlicePool_Get(t *testing.T) {
	pool := NewSlicePool[uint64]()

	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"small", 8},
		{"small_exact", SmallSize},
		{"medium", 300},
		{"medium_exact", MediumSize},
		{"large", 5000},
		{"large_exact", LargeSize},
		{"oversized", LargeSize + 1}, // Allocated directly
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := pool.Get(tt.size)
			if len(s) != tt.size {
				t.Errorf("Get(%d) length = %d", tt.size, len(s))
			}
			for i, v := range s {
				if v != 0 {
					t.Fatalf("Get(%d)[%d] = %d, want 0", tt.size, i, v)
				}
			}
		})
	}
}

func TestSlicePool_PutClearsReuse(t *testing.T) {
	pool := NewSlicePool[int32]()

	for i := 0; i < 10; i++ {
		s := pool.Get(100)
		for j := range s {
			s[j] = -1
		}
		pool.Put(s)
	}

	s := pool.Get(100)
	for j, v := range s {
		if v != 0 {
			t.Fatalf("reused slice not cleared at %d: %d", j, v)
		}
	}
}

func TestSlicePool_PutIgnoresOddSizes(t *testing.T) {
	pool := NewSlicePool[uint64]()
	pool.Put(nil)
	pool.Put(make([]uint64, 3))
	pool.Put(make([]uint64, MaxPool+1))
}

func TestDefaultPools(t *testing.T) {
	w := GetWords(17)
	if len(w) != 17 {
		t.Errorf("GetWords(17) length = %d", len(w))
	}
	PutWords(w)

	n := GetNodes(2048)
	if len(n) != 2048 {
		t.Errorf("GetNodes(2048) length = %d", len(n))
	}
	PutNodes(n)
}

func TestSlicePool_Concurrent(t *testing.T) {
	pool := NewSlicePool[uint64]()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(size int) {
			defer wg.Done()
			s := pool.Get(size)
			for j := range s {
				s[j] = uint64(j)
			}
			pool.Put(s)
		}(i * 37)
	}
	wg.Wait()
}

func BenchmarkSlicePool(b *testing.B) {
	pool := NewSlicePool[uint64]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := pool.Get(512)
		pool.Put(s)
	}
}
