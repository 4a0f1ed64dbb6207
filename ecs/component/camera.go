package component

type Camera struct {
	// Zoom magnifies the view; 1.75 draws everything 1.75x larger.
	Zoom float64
	// LerpFactor scales the frame delta into the fraction of the remaining
	// distance to the target covered this frame.
	LerpFactor float64
}

var CameraComponent = NewComponent[Camera]()
