package components

// Position represents a spirit's screen position (top-left of its body).
type Position struct {
	X, Y float32
}
