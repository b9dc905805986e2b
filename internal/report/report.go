// Package report turns command failures and help requests into the text shown
// to the player.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/tnwae/nuventure/internal/nverrors"
	"github.com/tnwae/nuventure/internal/verbs"
)

// Fallback is the message used when a verb has no usable error template.
const Fallback = "Unspecified error"

// Reporter renders errors using the templates of a verb table.
type Reporter struct {
	table *verbs.Table
}

// New creates a Reporter that looks up templates in t. A nil table is allowed;
// all messages are then the fallback message.
func New(t *verbs.Table) *Reporter {
	return &Reporter{table: t}
}

// Render returns the message for an error of kind k that occurred while
// processing verb with the given argument. The verb's template for k is used
// if it has one, otherwise its generic template, otherwise the fallback
// message.
func (r *Reporter) Render(verb string, k nverrors.Kind, arg string) string {
	if def, ok := r.table.Lookup(verb); ok {
		if tmpl, ok := def.Errors.Template(k); ok {
			return expand(tmpl, verb, arg)
		}
	}

	if arg != "" {
		return fmt.Sprintf("%s (target was: %s)", Fallback, arg)
	}
	return Fallback
}

// RenderError returns the message to show the player for err. Errors carrying
// an *nverrors.Error are rendered with Render; any other error gives its game
// message.
func (r *Reporter) RenderError(err error) string {
	var nvErr *nverrors.Error
	if errors.As(err, &nvErr) {
		return r.Render(nvErr.Verb, nvErr.Kind, nvErr.Arg)
	}
	return nverrors.GameMessage(err)
}

// Unrecognized returns the message for an unknown word along with the
// suggested replacements.
func Unrecognized(word string, suggestions []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("I don't understand %q", word))
	if len(suggestions) < 1 {
		sb.WriteString(".")
		return sb.String()
	}
	sb.WriteString("; did you mean:")
	for _, s := range suggestions {
		sb.WriteString("\n    ")
		sb.WriteString(s)
	}
	return sb.String()
}

// Wrap wraps msg to the given width.
func Wrap(msg string, width int) string {
	return rosed.Edit(msg).Wrap(width).String()
}

func expand(tmpl, verb, arg string) string {
	return strings.NewReplacer("{verb}", verb, "{arg}", arg).Replace(tmpl)
}
