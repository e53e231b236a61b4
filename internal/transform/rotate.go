package transform

import (
	"math"

	"structhub/internal/model"
)

// Rotate turns the whole plan about the centroid of every known point,
// counterclockwise for positive degrees. A model without geometry
// rotates about the origin.
func Rotate(m *model.BaseModel, degrees float64, report *Report) {
	if degrees == 0 {
		return
	}

	pts := m.Points()
	var center model.Point
	if len(pts) > 0 {
		for _, p := range pts {
			center.X += p.X
			center.Y += p.Y
		}
		center.X /= float64(len(pts))
		center.Y /= float64(len(pts))
	}

	sin, cos := math.Sincos(degrees * math.Pi / 180)
	for _, p := range pts {
		dx, dy := p.X-center.X, p.Y-center.Y
		p.X = center.X + dx*cos - dy*sin
		p.Y = center.Y + dx*sin + dy*cos
	}

	report.RotationApplied = true
	report.RotationCenter = center
}
