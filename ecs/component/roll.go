package component

// Roll is the roll reaction: a timed spin about the X axis.
type Roll struct {
	Duration float64
	Turns    float64
	Elapsed  float64
	Active   bool
}

var RollComponent = NewComponent[Roll]()
