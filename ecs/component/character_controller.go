package component

// CharacterController tunes how physics treats a player body.
type CharacterController struct {
	JumpImpulse float64
	// Damping multiplies horizontal velocity every tick; vertical velocity is untouched.
	Damping       float64
	MaxSlopeAngle float64
	GravityScale  float64
}

var CharacterControllerComponent = NewComponent[CharacterController]()

// Grounded is derived from physics contacts each tick.
type Grounded struct {
	OnGround   bool
	SlopeAngle float64
}

var GroundedComponent = NewComponent[Grounded]()
