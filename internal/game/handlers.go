package game

import (
	"context"
	"fmt"

	"github.com/tnwae/nuventure/internal/action"
	"github.com/tnwae/nuventure/internal/nverrors"
	"github.com/tnwae/nuventure/internal/util"
)

// Handler identifiers that verb tables can bind verbs to.
const (
	HandlerMove          = "move"
	HandlerLook          = "look"
	HandlerInspect       = "inspect"
	HandlerTake          = "take"
	HandlerDrop          = "drop"
	HandlerInventory     = "inventory"
	HandlerLight         = "light"
	HandlerExtinguish    = "extinguish"
	HandlerQuit          = "quit"
	HandlerWin           = "win"
	HandlerLose          = "lose"
	HandlerUnimplemented = "unimplemented"
)

const winMessage = `You have won! The way home is open to you at last.`

const loseMessage = "Your memory serves you well.\n\n" +
	"However, you choose poorly. Goodbye.\n\n" +
	"You have died."

// HandlerNames returns the identifiers of every handler given by Handlers.
func HandlerNames() []string {
	return []string{
		HandlerMove, HandlerLook, HandlerInspect, HandlerTake, HandlerDrop,
		HandlerInventory, HandlerLight, HandlerExtinguish, HandlerQuit,
		HandlerWin, HandlerLose, HandlerUnimplemented,
	}
}

// Handlers returns the handlers that carry out commands against gs, keyed by
// their identifiers.
func (gs *State) Handlers() action.HandlerSet {
	hs := action.HandlerSet{
		HandlerMove:          gs.move,
		HandlerLook:          gs.look,
		HandlerInspect:       gs.inspect,
		HandlerTake:          gs.take,
		HandlerDrop:          gs.drop,
		HandlerInventory:     gs.showInventory,
		HandlerLight:         gs.light,
		HandlerExtinguish:    gs.extinguish,
		HandlerQuit:          quit,
		HandlerWin:           gs.win,
		HandlerLose:          gs.lose,
		HandlerUnimplemented: unimplemented,
	}

	for id, h := range hs {
		hs[id] = gs.playerOnly(h)
	}
	return hs
}

// playerOnly wraps h so that it refuses actions not invoked by the player.
func (gs *State) playerOnly(h action.Handler) action.Handler {
	return func(ctx context.Context, a *action.Action) error {
		if p, ok := a.Invoker().(*Player); !ok || p != gs.player {
			return fmt.Errorf("%s: only the player can invoke commands", a.Verb())
		}
		return h(ctx, a)
	}
}

func (gs *State) move(ctx context.Context, a *action.Action) error {
	room := gs.player.location
	exit, ok := room.Exits[a.Target()]
	if !ok {
		return nverrors.BadArg(a.Verb(), a.Target())
	}

	if exit.Travel != "" {
		if err := gs.write(exit.Travel); err != nil {
			return err
		}
	}
	gs.player.location = gs.world.Rooms[exit.Dest]

	return gs.Render(false)
}

func (gs *State) look(ctx context.Context, a *action.Action) error {
	return gs.Render(true)
}

func (gs *State) inspect(ctx context.Context, a *action.Action) error {
	it, ok := gs.world.FindItem(a.Target())
	if !ok {
		return nverrors.BadTgt(a.Verb(), a.Target())
	}
	if !gs.player.location.HasItem(it.Label) && !gs.player.Carrying(it.Label) {
		return nverrors.BadArg(a.Verb(), a.Target())
	}

	desc := it.Long
	if desc == "" {
		desc = fmt.Sprintf("You see nothing special about the %s.", it.Name)
	}
	return gs.write(desc)
}

func (gs *State) take(ctx context.Context, a *action.Action) error {
	it, ok := gs.world.FindItem(a.Target())
	if !ok {
		return nverrors.BadTgt(a.Verb(), a.Target())
	}
	if gs.player.Carrying(it.Label) {
		return nverrors.Interpreterf("You already have the %s.", it.Name)
	}
	room := gs.player.location
	if !room.HasItem(it.Label) {
		return nverrors.BadArg(a.Verb(), a.Target())
	}
	if it.Take == "" {
		return nverrors.Interpreterf("You cannot take the %s.", it.Name)
	}

	room.removeItem(it.Label)
	gs.player.inventory = append(gs.player.inventory, it.Label)
	return gs.write(it.Take)
}

func (gs *State) drop(ctx context.Context, a *action.Action) error {
	it, ok := gs.world.FindItem(a.Target())
	if !ok || !gs.player.Carrying(it.Label) {
		return nverrors.BadArg(a.Verb(), a.Target())
	}

	gs.player.inventory = removeLabel(gs.player.inventory, it.Label)
	room := gs.player.location
	room.Items = append(room.Items, it.Label)
	return gs.write(fmt.Sprintf("You remove the %s from your pack and set it aside.", it.Name))
}

func (gs *State) showInventory(ctx context.Context, a *action.Action) error {
	if len(gs.player.inventory) < 1 {
		return nverrors.NoArgs(a.Verb())
	}

	names := make([]string, len(gs.player.inventory))
	for i, label := range gs.player.inventory {
		names[i] = gs.world.Items[label].Name
	}
	return gs.write("You are carrying " + util.TextList(names, true) + ".")
}

func (gs *State) light(ctx context.Context, a *action.Action) error {
	return gs.setLit(a, true)
}

func (gs *State) extinguish(ctx context.Context, a *action.Action) error {
	return gs.setLit(a, false)
}

func (gs *State) setLit(a *action.Action, lit bool) error {
	it, ok := gs.world.FindItem(a.Target())
	if !ok || !gs.player.Carrying(it.Label) {
		return nverrors.BadTgt(a.Verb(), a.Target())
	}
	if it.Kind != KindLamp {
		return nverrors.BadArg(a.Verb(), a.Target())
	}
	if it.Lit == lit {
		return nverrors.GameState(a.Verb(), a.Target())
	}

	it.Lit = lit

	msg := it.Use
	if !lit {
		msg = it.UseAlt
	}
	if msg == "" {
		state := "lit"
		if !lit {
			state = "dark"
		}
		msg = fmt.Sprintf("The %s is now %s.", it.Name, state)
	}
	if err := gs.write(msg); err != nil {
		return err
	}

	if gs.player.location.RequiresState == StateLampLit {
		return gs.Render(true)
	}
	return nil
}

func (gs *State) win(ctx context.Context, a *action.Action) error {
	dest, ok := gs.world.Rooms[gs.world.Win]
	if !ok || !dest.Visited {
		return nverrors.GameState(a.Verb(), "")
	}

	gs.won = true
	if err := gs.write(winMessage); err != nil {
		return err
	}
	return action.ErrQuit
}

func (gs *State) lose(ctx context.Context, a *action.Action) error {
	if err := gs.write(loseMessage); err != nil {
		return err
	}
	return action.ErrQuit
}

func quit(ctx context.Context, a *action.Action) error {
	return action.ErrQuit
}

func unimplemented(ctx context.Context, a *action.Action) error {
	return nverrors.Interpreter("This action is not implemented yet.", fmt.Sprintf("%s: not implemented", a.Verb()))
}
