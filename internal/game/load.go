package game

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tnwae/nuventure/internal/util"
	"github.com/tnwae/nuventure/internal/verbs"
)

type worldFile struct {
	Start string             `toml:"start"`
	Win   string             `toml:"win"`
	Rooms map[string]roomDef `toml:"rooms"`
	Items map[string]itemDef `toml:"items"`
}

type roomDef struct {
	Name          string    `toml:"name"`
	RequiresState string    `toml:"requires_state"`
	Long          string    `toml:"long"`
	Short         string    `toml:"short"`
	LongLit       string    `toml:"long_lit"`
	ShortLit      string    `toml:"short_lit"`
	Exits         []exitDef `toml:"exits"`
}

type exitDef struct {
	Direction string `toml:"direction"`
	Dest      string `toml:"dest"`
	Travel    string `toml:"travel"`
}

type itemDef struct {
	Name    string   `toml:"name"`
	Aliases []string `toml:"aliases"`
	Kind    string   `toml:"kind"`
	Origin  string   `toml:"origin"`
	InScene string   `toml:"in_scene"`
	Long    string   `toml:"long"`
	Take    string   `toml:"take"`
	Use     string   `toml:"use"`
	UseAlt  string   `toml:"use_alt"`
}

// LoadWorld reads the world file at path.
func LoadWorld(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world file: %w", err)
	}

	w, err := ParseWorld(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// ParseWorld parses a world from TOML data and checks that every label it
// refers to exists.
func ParseWorld(data []byte) (*World, error) {
	var wf worldFile
	if _, err := toml.Decode(string(data), &wf); err != nil {
		return nil, fmt.Errorf("decode world: %w", err)
	}

	w := &World{
		Start: strings.ToLower(wf.Start),
		Win:   strings.ToLower(wf.Win),
		Rooms: map[string]*Room{},
		Items: map[string]*Item{},
	}

	for label, rd := range wf.Rooms {
		label = strings.ToLower(label)
		if rd.RequiresState != "" && rd.RequiresState != StateLampLit {
			return nil, fmt.Errorf("rooms[%q]: unknown required state %q", label, rd.RequiresState)
		}

		r := &Room{
			Label:         label,
			Name:          rd.Name,
			RequiresState: rd.RequiresState,
			Desc: Descriptions{
				Long:     rd.Long,
				Short:    rd.Short,
				LongLit:  rd.LongLit,
				ShortLit: rd.ShortLit,
			},
			Exits: map[string]Exit{},
		}

		for i, ed := range rd.Exits {
			dir := strings.ToLower(ed.Direction)
			if typ, err := verbs.Classify(dir); err != nil || typ != verbs.Directional {
				return nil, fmt.Errorf("rooms[%q].exits[%d]: %q is not a direction", label, i, ed.Direction)
			}
			if _, dup := r.Exits[dir]; dup {
				return nil, fmt.Errorf("rooms[%q].exits[%d]: more than one exit to the %s", label, i, dir)
			}
			r.Exits[dir] = Exit{Dest: strings.ToLower(ed.Dest), Travel: ed.Travel}
		}

		w.Rooms[label] = r
	}

	// place items in a fixed order so rooms list them the same way every run
	for _, label := range util.OrderedKeys(wf.Items) {
		id := wf.Items[label]
		label = strings.ToLower(label)

		it := &Item{
			Label:   label,
			Name:    id.Name,
			Aliases: id.Aliases,
			Kind:    id.Kind,
			InScene: id.InScene,
			Long:    id.Long,
			Take:    id.Take,
			Use:     id.Use,
			UseAlt:  id.UseAlt,
		}
		if it.Name == "" {
			it.Name = label
		}
		if it.Kind != "" && it.Kind != KindLamp {
			return nil, fmt.Errorf("items[%q]: unknown kind %q", label, it.Kind)
		}

		origin, ok := w.Rooms[strings.ToLower(id.Origin)]
		if !ok {
			return nil, fmt.Errorf("items[%q]: origin room %q does not exist", label, id.Origin)
		}
		origin.Items = append(origin.Items, label)

		w.Items[label] = it
	}

	if err := w.validate(); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *World) validate() error {
	if _, ok := w.Rooms[w.Start]; !ok {
		return fmt.Errorf("start room %q does not exist", w.Start)
	}
	if w.Win != "" {
		if _, ok := w.Rooms[w.Win]; !ok {
			return fmt.Errorf("win room %q does not exist", w.Win)
		}
	}

	for _, label := range util.OrderedKeys(w.Rooms) {
		r := w.Rooms[label]
		for _, dir := range util.OrderedKeys(r.Exits) {
			if _, ok := w.Rooms[r.Exits[dir].Dest]; !ok {
				return fmt.Errorf("rooms[%q]: exit %s leads to non-existent room %q", label, dir, r.Exits[dir].Dest)
			}
		}
	}

	return nil
}
