package katachi

import (
	"fmt"
	"testing"
)

func benchSizes() []int { return []int{1000, 10000, 60000} }

func benchName(size int) string {
	return fmt.Sprintf("%dK", size/1000)
}

func benchWorld(size int) *World {
	// +2 leaves room for the null slot and churn.
	return NewWorld(WithMaxEntities(size + 2))
}

func BenchmarkCreateEntity(b *testing.B) {
	for _, size := range benchSizes() {
		b.Run(benchName(size), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				b.StopTimer()
				w := benchWorld(size)
				b.StartTimer()
				for j := 0; j < size; j++ {
					w.CreateEntity()
				}
			}
		})
	}
}

func BenchmarkPack(b *testing.B) {
	for _, size := range benchSizes() {
		b.Run(benchName(size), func(b *testing.B) {
			w := benchWorld(size)
			entities := make([]Entity, size)
			for j := range entities {
				entities[j] = w.CreateEntity()
			}
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				for _, e := range entities {
					Pack(w, e, Position{X: 1, Y: 2})
				}
			}
		})
	}
}

func BenchmarkPackOverwrite(b *testing.B) {
	w := benchWorld(1)
	e := w.CreateEntity()
	Pack(w, e, Position{})
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		Pack(w, e, Position{X: 3})
	}
}

func BenchmarkViewCached(b *testing.B) {
	for _, size := range benchSizes() {
		b.Run(benchName(size), func(b *testing.B) {
			w := benchWorld(size)
			for j := 0; j < size; j++ {
				e := w.CreateEntity()
				Pack2(w, e, Position{}, Velocity{VX: 1})
			}
			View2[Position, Velocity](w, false) // prime the cache
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				_ = View2[Position, Velocity](w, false)
			}
		})
	}
}

func BenchmarkEach2(b *testing.B) {
	for _, size := range benchSizes() {
		b.Run(benchName(size), func(b *testing.B) {
			w := benchWorld(size)
			for j := 0; j < size; j++ {
				e := w.CreateEntity()
				Pack2(w, e, Position{}, Velocity{VX: 1, VY: 2})
			}
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				Each2(w, func(p *Position, v *Velocity) {
					p.X += v.VX
					p.Y += v.VY
				}, false)
			}
		})
	}
}

func BenchmarkCreateDestroyCollect(b *testing.B) {
	w := benchWorld(1000)
	for j := 0; j < 1000; j++ {
		e := w.CreateEntity()
		Pack(w, e, Position{})
	}
	View[Position](w, false)
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		view := View[Position](w, false)
		w.DestroyEntity(view[len(view)-1])
		w.CollectUnusedEntities()
		e := w.CreateEntity()
		Pack(w, e, Position{})
	}
}
