package geom

// Arrow handle sizing. HandleAspect has no geometric derivation; it was
// tuned by eye and is kept as-is.
const (
	HandleWidth        = 12.0
	HandleAspect       = 0.936
	handleCornerRadius = 0.18
)

// ArrowHandle computes the grip segment for an arrow path. The handle
// sits centered between the second and third waypoints, along their
// direction, with the given width. Returns false when the path has
// fewer than 3 points or the two anchor points coincide.
func ArrowHandle(points []Vec2, width float64) (Segment, bool) {
	if len(points) < 3 {
		return Segment{}, false
	}
	from, to := points[1], points[2]
	dir := to.Sub(from).Normalize()
	if dir.IsZero() {
		return Segment{}, false
	}
	mid := from.Mid(to)
	half := dir.Mul(width / 2)
	return Segment{Start: mid.Sub(half), End: mid.Add(half)}, true
}

// HandleOutline expands a handle segment into a closed chevron polygon.
// The outline is a rhombus spanning the segment, with height derived
// from HandleAspect and each corner chamfered by handleCornerRadius.
// The last point closes back to the first.
func HandleOutline(s Segment) []Vec2 {
	width := s.Start.Distance(s.End)
	if width == 0 {
		return nil
	}
	n := NewLine2(s.Start, s.End).Normal()
	mid := s.Mid()
	h := n.Mul(width * HandleAspect / 2)

	corners := []Vec2{
		s.Start,
		mid.Add(h),
		s.End,
		mid.Sub(h),
	}

	// Chamfer: replace each corner with a point toward each neighbour.
	out := make([]Vec2, 0, 2*len(corners)+1)
	for i, c := range corners {
		prev := corners[(i+len(corners)-1)%len(corners)]
		next := corners[(i+1)%len(corners)]
		out = append(out, c.Lerp(prev, handleCornerRadius), c.Lerp(next, handleCornerRadius))
	}
	out = append(out, out[0])
	return out
}
