package source

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"

	"nebasemap/internal/geom"
)

// decodeWKT reads one geometry per non-empty line, so a file may hold either a
// single GEOMETRYCOLLECTION or a list of shapes. Lines starting with # are
// comments.
func decodeWKT(data []byte) ([]geom.Record, error) {
	var recs []geom.Record
	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		g, err := wkt.Unmarshal(line)
		if err != nil {
			return nil, fmt.Errorf("wkt line %d: %w", n+1, err)
		}
		recs = append(recs, fromOrb(g, nil)...)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("wkt: no geometry found")
	}
	return recs, nil
}
