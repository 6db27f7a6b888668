package particle

import (
	"testing"
	"time"
)

var epoch = time.Unix(1000, 0)

func TestPoolNeverExceedsCapacity(t *testing.T) {
	p := NewPool(8, time.Second)

	for i := 0; i < 50; i++ {
		p.Spawn(Particle{CreatedAt: epoch})
		if p.Len() > p.Capacity() {
			t.Fatalf("Pool length %d exceeds capacity %d", p.Len(), p.Capacity())
		}
	}
	if p.Len() != 8 {
		t.Errorf("Expected 8 occupied slots, got %d", p.Len())
	}
	if p.Spawned() != 50 {
		t.Errorf("Expected 50 spawned, got %d", p.Spawned())
	}
}

func TestPoolEvictsOldest(t *testing.T) {
	p := NewPool(4, time.Hour)

	for i := 0; i < 6; i++ {
		p.Spawn(Particle{X: float64(i), CreatedAt: epoch})
	}

	var xs []float64
	p.Slots(epoch, func(pt *Particle, _ float64, _ bool) {
		xs = append(xs, pt.X)
	})

	want := []float64{2, 3, 4, 5}
	if len(xs) != len(want) {
		t.Fatalf("Expected %v, got %v", want, xs)
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, xs)
			break
		}
	}
}

func TestPoolExpiryByAge(t *testing.T) {
	p := NewPool(16, 1200*time.Millisecond)

	p.Spawn(Particle{CreatedAt: epoch})
	p.Spawn(Particle{CreatedAt: epoch.Add(time.Second)})

	now := epoch.Add(1300 * time.Millisecond)
	if got := p.ActiveCount(now); got != 1 {
		t.Errorf("Expected 1 active, got %d", got)
	}

	p.Slots(now, func(pt *Particle, age float64, active bool) {
		if active && now.Sub(pt.CreatedAt) >= p.Lifetime() {
			t.Errorf("Particle %d active beyond lifetime", pt.ID)
		}
		if active && (age < 0 || age >= 1) {
			t.Errorf("Age out of range: %.3f", age)
		}
	})

	if got := p.ActiveCount(epoch.Add(5 * time.Second)); got != 0 {
		t.Errorf("Expected none active, got %d", got)
	}
}

func TestPoolMonotonicIDs(t *testing.T) {
	p := NewPool(2, time.Second)
	var last uint64
	for i := 0; i < 5; i++ {
		id := p.Spawn(Particle{CreatedAt: epoch})
		if id <= last {
			t.Errorf("Expected increasing IDs, got %d after %d", id, last)
		}
		last = id
	}
}

func TestPoolReset(t *testing.T) {
	p := NewPool(4, time.Second)
	p.Spawn(Particle{CreatedAt: epoch})
	p.Reset()

	if p.Len() != 0 || p.ActiveCount(epoch) != 0 {
		t.Errorf("Expected empty pool, got len %d", p.Len())
	}
}
