package common

const (
	BaseWidth  = 960
	BaseHeight = 540

	TPS = 60

	// Gravity is the world gravity in units per second squared, Y up.
	Gravity = -9.81
)
