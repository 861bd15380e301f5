package track

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// Handedness colors for annotated frames.
var (
	leftColor  = color.RGBA{R: 255, A: 255} // red
	rightColor = color.RGBA{B: 255, A: 255} // blue
)

// annotate draws all landmark points and their skeletal connections onto
// the frame, color-coded by handedness.
func annotate(frame *gocv.Mat, hands []detector.HandLandmarks) {
	width := float64(frame.Cols())
	height := float64(frame.Rows())

	for i := range hands {
		hand := &hands[i]

		col := leftColor
		if Hand(hand.Handedness) == HandRight {
			col = rightColor
		}

		var pts [detector.NumLandmarks]image.Point
		for j, p := range hand.Points {
			pts[j] = image.Pt(int(p.X*width), int(p.Y*height))
		}

		for _, c := range detector.Connections {
			gocv.Line(frame, pts[c[0]], pts[c[1]], col, 2)
		}
		for _, p := range pts {
			gocv.Circle(frame, p, 3, col, 2)
		}
	}
}
