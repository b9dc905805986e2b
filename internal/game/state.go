package game

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

var textFormatOptions = rosed.Options{
	PreserveParagraphs: true,
	IndentStr:          "  ",
}

// IODevice is the output the game writes to.
type IODevice struct {
	// The width of each line of output.
	Width int

	// Output writes a formatted string to the output.
	Output func(s string, a ...interface{}) error
}

// Player is the character the person playing controls. It implements
// action.Actor.
type Player struct {
	name      string
	location  *Room
	inventory []string
}

// Name returns the name of the player.
func (p *Player) Name() string {
	return p.name
}

// Location returns the room the player is in.
func (p *Player) Location() *Room {
	return p.location
}

// Carrying returns whether the item with the given label is in the player's
// inventory.
func (p *Player) Carrying(label string) bool {
	return indexOf(p.inventory, label) >= 0
}

// Inventory returns the labels of the items the player carries, in the order
// they were picked up.
func (p *Player) Inventory() []string {
	inv := make([]string, len(p.inventory))
	copy(inv, p.inventory)
	return inv
}

// State is the game's entire state.
type State struct {
	world  *World
	player *Player
	io     IODevice
	won    bool
}

// New creates a new State that starts the player in the world's start room.
// The world is used directly and will be modified as the game is played.
func New(w *World, io IODevice) (*State, error) {
	start, ok := w.Rooms[w.Start]
	if !ok {
		return nil, fmt.Errorf("start room %q does not exist", w.Start)
	}
	if io.Width < 2 {
		return nil, fmt.Errorf("io device width is too small: %d", io.Width)
	}
	if io.Output == nil {
		return nil, fmt.Errorf("io device has no output function")
	}

	gs := &State{
		world: w,
		player: &Player{
			name:     "player",
			location: start,
		},
		io: io,
	}
	return gs, nil
}

// Player returns the player character.
func (gs *State) Player() *Player {
	return gs.player
}

// World returns the world the game is played in.
func (gs *State) World() *World {
	return gs.world
}

// Won returns whether the game ended with the player winning.
func (gs *State) Won() bool {
	return gs.won
}

// StateActive returns whether the named world state is currently true.
func (gs *State) StateActive(state string) bool {
	switch state {
	case StateLampLit:
		for _, label := range gs.player.inventory {
			if it := gs.world.Items[label]; it.Kind == KindLamp && it.Lit {
				return true
			}
		}
	}
	return false
}

// Render writes the description of the player's room. The long description is
// used if long is true or the room has not been visited before. The room is
// marked visited afterwards.
func (gs *State) Render(long bool) error {
	room := gs.player.location
	stateful := room.RequiresState != "" && gs.StateActive(room.RequiresState)

	ed := rosed.Edit("\n"+room.Name+"\n").
		WithOptions(textFormatOptions).
		Insert(rosed.End, room.Describe(long || !room.Visited, stateful))

	for _, label := range room.Items {
		if it := gs.world.Items[label]; it.InScene != "" {
			ed = ed.Insert(rosed.End, "\n\n"+it.InScene)
		}
	}

	room.Visited = true
	return gs.io.Output("%s\n", ed.Wrap(gs.io.Width).String())
}

func (gs *State) write(msg string) error {
	msg = rosed.Edit(msg).WrapOpts(gs.io.Width, textFormatOptions).String()
	return gs.io.Output("%s\n", msg)
}
