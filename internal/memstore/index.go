// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package memstore

import (
	"github.com/dhconnelly/rtreego"

	"github.com/tomtom215/spawnwatch/internal/models"
)

const (
	tolerance   = 1e-9
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// spatialItem wraps a record for R-tree indexing
type spatialItem[T any] struct {
	key  string
	rec  T
	lat  float64
	lon  float64
	rect *rtreego.Rect
}

func (si *spatialItem[T]) Bounds() *rtreego.Rect {
	return si.rect
}

// index keeps one record per key and a spatial tree over their positions.
// It is not safe for concurrent use; Store serializes access.
type index[T any] struct {
	tree  *rtreego.Rtree
	byKey map[string]*spatialItem[T]
	pos   func(T) (float64, float64)
}

func newIndex[T any](pos func(T) (float64, float64)) *index[T] {
	return &index[T]{
		tree:  rtreego.NewTree(dimensions, minChildren, maxChildren),
		byKey: make(map[string]*spatialItem[T]),
		pos:   pos,
	}
}

// put replaces any record stored under key with rec.
func (ix *index[T]) put(key string, rec T) {
	if old, ok := ix.byKey[key]; ok {
		ix.tree.Delete(old)
	}
	lat, lon := ix.pos(rec)
	item := &spatialItem[T]{
		key:  key,
		rec:  rec,
		lat:  lat,
		lon:  lon,
		rect: rtreego.Point{lat, lon}.ToRect(tolerance),
	}
	ix.tree.Insert(item)
	ix.byKey[key] = item
}

func (ix *index[T]) get(key string) (T, bool) {
	item, ok := ix.byKey[key]
	if !ok {
		var zero T
		return zero, false
	}
	return item.rec, true
}

func (ix *index[T]) len() int { return len(ix.byKey) }

// search returns every record inside bbox that also satisfies keep.
func (ix *index[T]) search(bbox models.BoundingBox, keep func(T) bool) []T {
	out := make([]T, 0)

	if bbox.IsEmpty() {
		for _, item := range ix.byKey {
			if keep == nil || keep(item.rec) {
				out = append(out, item.rec)
			}
		}
		return out
	}

	rect, ok := queryRect(bbox)
	if !ok {
		return out
	}
	for _, result := range ix.tree.SearchIntersect(rect) {
		item, ok := result.(*spatialItem[T])
		if !ok {
			continue
		}
		if !bbox.Contains(item.lat, item.lon) {
			continue
		}
		if keep == nil || keep(item.rec) {
			out = append(out, item.rec)
		}
	}
	return out
}

// queryRect converts a possibly partial bounding box into a search rectangle.
// Missing bounds extend to the edge of the coordinate space. It reports false
// for an inverted box, which can match nothing.
func queryRect(bbox models.BoundingBox) (*rtreego.Rect, bool) {
	minLat, minLng, maxLat, maxLng := -90.0, -180.0, 90.0, 180.0
	if bbox.SWLat != nil {
		minLat = *bbox.SWLat
	}
	if bbox.SWLng != nil {
		minLng = *bbox.SWLng
	}
	if bbox.NELat != nil {
		maxLat = *bbox.NELat
	}
	if bbox.NELng != nil {
		maxLng = *bbox.NELng
	}
	if minLat > maxLat || minLng > maxLng {
		return nil, false
	}

	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{minLat - tolerance, minLng - tolerance},
		rtreego.Point{maxLat + tolerance, maxLng + tolerance},
	)
	if err != nil {
		return nil, false
	}
	return rect, true
}
