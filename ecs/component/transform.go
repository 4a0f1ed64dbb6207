package component

// Transform is a world-space position with y pointing up. Z orders drawing
// for sprites and is the zoom/depth axis the camera keeps to itself.
type Transform struct {
	X float64
	Y float64
	Z float64
}

var TransformComponent = NewComponent[Transform]()
