// Package game implements a minimal world for commands to act on: rooms joined
// by exits, items that can be carried, and the player.
package game

import (
	"fmt"
)

// StateLampLit is the state a room may require before its stateful
// descriptions are shown. It is active while the player carries a lit lamp.
const StateLampLit = "lamp_lit"

// KindLamp is the item kind of items that can be lit and extinguished.
const KindLamp = "lamp"

// Exit leads out of a room in a direction.
type Exit struct {
	// Dest is the label of the room the exit leads to.
	Dest string

	// Travel is shown when the player goes through the exit.
	Travel string
}

// Descriptions are the texts shown for a room. The Lit variants are used when
// the state the room requires is active.
type Descriptions struct {
	Long     string
	Short    string
	LongLit  string
	ShortLit string
}

// Room is a place in the world.
type Room struct {
	Label         string
	Name          string
	RequiresState string
	Desc          Descriptions

	// Exits maps a direction word to the exit in that direction.
	Exits map[string]Exit

	// Items holds the labels of the items in the room, in the order they were
	// placed there.
	Items []string

	Visited bool
}

func (r *Room) String() string {
	return fmt.Sprintf("Room(%q)", r.Label)
}

// Describe returns the long or short description of the room, using the
// stateful variant if stateful is true and the room has one.
func (r *Room) Describe(long, stateful bool) string {
	if stateful && r.RequiresState != "" {
		if long && r.Desc.LongLit != "" {
			return r.Desc.LongLit
		}
		if !long && r.Desc.ShortLit != "" {
			return r.Desc.ShortLit
		}
	}
	if long || r.Desc.Short == "" {
		return r.Desc.Long
	}
	return r.Desc.Short
}

// HasItem returns whether the item with the given label is in the room.
func (r *Room) HasItem(label string) bool {
	return indexOf(r.Items, label) >= 0
}

func (r *Room) removeItem(label string) {
	r.Items = removeLabel(r.Items, label)
}

// Item is an object in the world that can be carried.
type Item struct {
	Label   string
	Name    string
	Aliases []string
	Kind    string

	// InScene is shown as part of the room description while the item is in
	// a room.
	InScene string

	// Long is shown when the item is inspected.
	Long string

	// Take is shown when the item is picked up. An item without it cannot be
	// taken.
	Take string

	// Use is shown when the item is used, or for a lamp, lit.
	Use string

	// UseAlt is shown when a lamp is extinguished.
	UseAlt string

	Lit bool
}

func (it *Item) String() string {
	return fmt.Sprintf("Item(%q)", it.Label)
}

// World is the complete set of rooms and items.
type World struct {
	// Start is the label of the room the player starts in.
	Start string

	// Win is the label of the room that must have been visited for the win
	// command to work. It may be empty.
	Win string

	Rooms map[string]*Room
	Items map[string]*Item
}

// FindItem returns the item that word refers to by label, name, or alias.
func (w *World) FindItem(word string) (*Item, bool) {
	if it, ok := w.Items[word]; ok {
		return it, true
	}
	for _, it := range w.Items {
		if it.Name == word {
			return it, true
		}
		for _, a := range it.Aliases {
			if a == word {
				return it, true
			}
		}
	}
	return nil, false
}

func indexOf(labels []string, label string) int {
	for i := range labels {
		if labels[i] == label {
			return i
		}
	}
	return -1
}

func removeLabel(labels []string, label string) []string {
	idx := indexOf(labels, label)
	if idx < 0 {
		return labels
	}
	return append(labels[:idx], labels[idx+1:]...)
}
