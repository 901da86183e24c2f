package geom

import "math"

// Lowering of elliptical arcs to cubic bezier splines, by the method of
// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
// or cubic Bezier curves", 2003.
// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf

// maxDx is the maximum radians a cubic spline is allowed to span when
// approximating an off-axis ellipse.
const maxDx float64 = math.Pi / 8

// lower converts the arc starting at cur into cubic segments. Zero
// radii degenerate to a straight line, per the path grammar.
func (op ArcTo) lower(cur Point) []Segment {
	if op.RX == 0 || op.RY == 0 {
		return []Segment{LineTo{op.X, op.Y}}
	}
	ra, rb := math.Abs(op.RX), math.Abs(op.RY)
	rotX := op.Rotation * math.Pi / 180
	cx, cy := findEllipseCenter(&ra, &rb, rotX, cur.X, cur.Y, op.X, op.Y, op.Sweep, !op.LargeArc)

	startAngle := math.Atan2(cur.Y-cy, cur.X-cx) - rotX
	endAngle := math.Atan2(op.Y-cy, op.X-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/rb, math.Cos(startAngle)/ra)
	etaEnd := math.Atan2(math.Sin(endAngle)/rb, math.Cos(endAngle)/ra)
	deltaEta := etaEnd - etaStart
	if arcBig != op.LargeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// Needed when the ellipse center sits at the midpoint of the
	// start and end points.
	if deltaEta < 0 && op.Sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !op.Sweep {
		deltaEta -= math.Pi * 2
	}

	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3

	out := make([]Segment, 0, segs)
	lx, ly := cur.X, cur.Y
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(ra, rb, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = op.X, op.Y // exact end point, no roundoff error
		} else {
			px, py = ellipsePointAt(ra, rb, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(ra, rb, sinTheta, cosTheta, eta)
		out = append(out, CubicTo{
			{lx + alpha*ldx, ly + alpha*ldy},
			{px - alpha*dx, py - alpha*dy},
			{px, py},
		})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	return out
}

// ellipsePrime gives tangent vectors for the parameterized ellipse.
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for the parameterized ellipse.
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the ellipse if it exists. If
// it does not, the radii are increased minimally for a solution to be
// possible while preserving the ra to rb ratio. The problem is reduced,
// by coordinate transformations, to finding the center of a circle that
// includes the origin and an arbitrary point.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// Move origin to start point.
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis.
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale the x dimension so that ra = rb; the ellipse becomes a
	// circle of radius rb whose foci and center coincide.
	nx *= *rb / *ra

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// The requested ellipse does not exist; scale ra, rb to fit.
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// If hr is zero, both answers are the same.
	if (sweep && smallArc) || (!sweep && !smallArc) {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// Reverse the scale, then reverse the rotation and translate back
	// to the original coordinates.
	cx *= *ra / *rb
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
