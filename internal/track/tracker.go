package track

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/video"
)

// Sink receives annotated frames in input order.
type Sink interface {
	Write(frame *gocv.Mat) error
}

// Tracker runs the sequential per-frame tracking pass. Frames are read
// and processed one at a time in video order; the record slice is owned
// exclusively by the tracker during the pass and returned to the caller
// on completion.
type Tracker struct {
	detector detector.Detector
}

// New creates a Tracker using the given detector.
func New(d detector.Detector) *Tracker {
	return &Tracker{detector: d}
}

// Run processes every frame of src in order and returns one Record per
// (frame, hand) detection. If sink is non-nil, each decodable frame is
// annotated with the detected landmarks and written to it.
//
// Per-frame failures never abort the pass: an undecodable frame is
// skipped (the frame counter still advances) and a detector error is
// treated as zero detections for that frame. The pass can be aborted
// between frames by cancelling ctx.
func (t *Tracker) Run(ctx context.Context, src video.Source, sink Sink) ([]Record, error) {
	records := make([]Record, 0, 256)
	frameIdx := 0

	for {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		frame, err := src.ReadFrame()
		if errors.Is(err, video.ErrEndOfVideo) {
			return records, nil
		}
		frameIdx++
		if err != nil {
			log.Warnf("frame %d: skipped (%v)", frameIdx, err)
			continue
		}

		hands := t.detectHands(frame, frameIdx)
		for i := range hands {
			hand := &hands[i]
			records = append(records, Record{
				Frame:         frameIdx,
				Hand:          Hand(hand.Handedness),
				Wrist:         hand.Wrist(),
				LandmarkCount: detector.NumLandmarks,
			})
		}

		if sink != nil {
			annotate(frame, hands)
			if err := sink.Write(frame); err != nil {
				// Rendering is a side effect; a broken sink must not
				// take the tracking pass down with it.
				log.Errorf("annotated output failed at frame %d, disabling rendering: %v", frameIdx, err)
				sink = nil
			}
		}

		frame.Close()
	}
}

// detectHands converts the frame to the detector's RGB channel order and
// runs one inference. Detector failures degrade to "no hands found".
func (t *Tracker) detectHands(frame *gocv.Mat, frameIdx int) []detector.HandLandmarks {
	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(*frame, &rgb, gocv.ColorBGRToRGB)

	hands, err := t.detector.Detect(&rgb)
	if err != nil {
		log.Warnf("frame %d: detector error, treating as no hands: %v", frameIdx, err)
		return nil
	}
	return hands
}
