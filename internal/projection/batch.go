package projection

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"nebasemap/internal/geom"
)

// parallelThreshold is the ring size above which ProjectAll fans out.
const parallelThreshold = 1 << 14

// ProjectAll projects pts equirectangularly, preserving order. Large inputs
// are split into chunks that are projected concurrently into disjoint ranges
// of the result.
func ProjectAll(pts []geom.GeoPoint, f Frame) []geom.ScreenPoint {
	out := make([]geom.ScreenPoint, len(pts))
	if len(pts) < parallelThreshold {
		for i, p := range pts {
			out[i] = ProjectEquirectangular(p, f)
		}
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(pts) + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < len(pts); start += chunk {
		end := min(start+chunk, len(pts))
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = ProjectEquirectangular(pts[i], f)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
