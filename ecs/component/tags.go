package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// Collidable marks an entity as solid. Nothing resolves collisions yet.
type Collidable struct{}

var CollidableComponent = NewComponent[Collidable]()
