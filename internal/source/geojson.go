package source

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb/geojson"

	"nebasemap/internal/geom"
)

// decodeGeoJSON accepts a FeatureCollection, a single Feature or a bare
// geometry object.
func decodeGeoJSON(data []byte) ([]geom.Record, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		var recs []geom.Record
		for _, f := range fc.Features {
			recs = append(recs, fromOrb(f.Geometry, propertyAttrs(f.Properties))...)
		}
		return recs, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		return fromOrb(f.Geometry, propertyAttrs(f.Properties)), nil
	case "":
		return nil, fmt.Errorf("geojson: missing type member")
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	return fromOrb(g.Geometry(), nil), nil
}
