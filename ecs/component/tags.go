package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type FloorTag struct{}

var FloorTagComponent = NewComponent[FloorTag]()

// Name labels an entity with the prefab it was built from.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
