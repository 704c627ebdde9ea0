package entity

// Player is a name and a marker. It never changes once created.
type Player struct {
	name string
	mark string
}

func NewPlayer(name, mark string) Player {
	return Player{
		name: name,
		mark: mark,
	}
}

func (that Player) Name() string {
	return that.name
}

func (that Player) Marker() string {
	return that.mark
}
