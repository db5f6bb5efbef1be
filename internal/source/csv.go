package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"

	"nebasemap/internal/geom"
)

// decodeCSV reads point rows. Coordinate columns are detected by header name
// (lat|latitude|y and lon|lng|long|longitude|x, case-insensitive); every column
// becomes an attribute. Rows without parseable coordinates are skipped.
func decodeCSV(data []byte) ([]geom.Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty csv")
	}
	header := rows[0]
	idxLat, idxLon := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}

	var recs []geom.Record
	for _, row := range rows[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		attrs := make(geom.Attributes, len(header))
		for i, h := range header {
			if i < len(row) {
				attrs[strings.TrimSpace(h)] = row[i]
			}
		}
		recs = append(recs, geom.Record{
			Shape: geom.Point{At: geom.GeoPoint{Lon: lon, Lat: lat}},
			Attrs: attrs,
		})
	}
	if len(recs) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	return recs, nil
}
