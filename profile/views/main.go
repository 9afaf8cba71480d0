// Profiling:
// go build ./profile/views
// go tool pprof -http=":8000" -nodefraction=0.001 ./views mem.pprof

package main

import (
	"github.com/aracelo/katachi"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	DX, DY float64
}

func main() {
	rounds := 50
	frames := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, frames, entities)
	p.Stop()
}

func run(rounds, frames, numEntities int) {
	for range rounds {
		w := katachi.NewWorld()
		for range numEntities {
			e := w.CreateEntity()
			katachi.Pack2(w, e, position{}, velocity{DX: 1, DY: 1})
		}
		for range frames {
			katachi.Each2(w, func(p *position, v *velocity) {
				p.X += v.DX
				p.Y += v.DY
			}, false)

			// Churn one entity per frame to keep the diff and recycle
			// paths hot.
			matched := katachi.View2[position, velocity](w, false)
			if len(matched) > 0 {
				w.DestroyEntity(matched[0])
			}
			e := w.CreateEntity()
			katachi.Pack2(w, e, position{}, velocity{DX: 1, DY: 1})
			w.CollectUnusedEntities()
		}
	}
}
