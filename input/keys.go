package input

// Keys is the held state of the four movement signals.
type Keys struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Source exposes the movement keys held this frame.
type Source interface {
	Held() Keys
}

// Held lets a fixed Keys value act as a Source.
func (k Keys) Held() Keys { return k }

// Axis returns the raw direction with y pointing up. Opposing keys cancel.
func (k Keys) Axis() (x, y float64) {
	if k.Up {
		y++
	}
	if k.Down {
		y--
	}
	if k.Left {
		x--
	}
	if k.Right {
		x++
	}
	return x, y
}
