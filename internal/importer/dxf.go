package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/TipPlace/internal/model"
)

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start model.Point
	end   model.Point
}

// ImportDXF imports target rectangles from a DXF drawing. Each closed shape
// (LWPOLYLINE, CIRCLE, or chain of connected LINEs) becomes one Scenario whose
// target is the shape's bounding box. DXF y grows upward, so boxes are flipped
// into the viewport's y-down space using the viewport height.
func ImportDXF(path string, viewport model.Size, tooltip model.Size) ImportResult {
	result := ImportResult{}

	if viewport.Width <= 0 || viewport.Height <= 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Viewport must be positive, got %.0fx%.0f", viewport.Width, viewport.Height))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]model.Point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			pts := make([]model.Point, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				pts = append(pts, model.Point{X: v[0], Y: v[1]})
			}
			if len(pts) >= 3 {
				outlines = append(outlines, pts)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			cx, cy, r := e.Center[0], e.Center[1], e.Radius
			outlines = append(outlines, []model.Point{
				{X: cx - r, Y: cy - r},
				{X: cx + r, Y: cy - r},
				{X: cx + r, Y: cy + r},
				{X: cx - r, Y: cy + r},
			})

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for _, outline := range outlines {
		min, max := boundingBox(outline)
		width := max.X - min.X
		height := max.Y - min.Y
		if width < 0.01 && height < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape at (%.2f, %.2f)", min.X, min.Y))
			continue
		}

		target := model.NewRect(min.X, viewport.Height-max.Y, width, height)
		if !model.NewRect(0, 0, viewport.Width, viewport.Height).Contains(target) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Shape %d extends outside the %.0fx%.0f viewport", len(result.Scenarios)+1, viewport.Width, viewport.Height))
		}
		label := fmt.Sprintf("DXF Target %d", len(result.Scenarios)+1)
		result.Scenarios = append(result.Scenarios, model.NewScenario(label, viewport, target, tooltip))
	}

	return result
}

// boundingBox returns the minimum and maximum corners of a point set.
func boundingBox(pts []model.Point) (model.Point, model.Point) {
	min := model.Point{X: math.Inf(1), Y: math.Inf(1)}
	max := model.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range pts {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
// Open chains are dropped.
func chainSegments(segs []segment, tolerance float64) [][]model.Point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]model.Point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			continue
		}
		outlines = append(outlines, chain[:len(chain)-1])
	}

	// Top-most, then left-most first, so imports are stable across files.
	sort.SliceStable(outlines, func(i, j int) bool {
		mi, ni := boundingBox(outlines[i])
		mj, nj := boundingBox(outlines[j])
		if ni.Y != nj.Y {
			return ni.Y > nj.Y
		}
		return mi.X < mj.X
	})

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
