package verbs

import (
	"sort"
	"strings"

	"github.com/tnwae/nuventure/internal/action"
	"github.com/tnwae/nuventure/internal/nverrors"
)

// ErrorText holds the error message templates of a verb. Templates may
// contain the placeholders {verb} and {arg}.
type ErrorText struct {
	// Generic is used for any error kind that has no entry in Keyed.
	Generic string

	// Keyed maps an error kind key (see nverrors.Kind.Key) to its template.
	Keyed map[string]string
}

// Template returns the template to use for errors of kind k, and whether one
// was found.
func (et ErrorText) Template(k nverrors.Kind) (string, bool) {
	if tmpl, ok := et.Keyed[k.Key()]; ok {
		return tmpl, true
	}
	if et.Generic != "" {
		return et.Generic, true
	}
	return "", false
}

// Definition is the configuration of a single verb as loaded from a verb
// table. A Definition is reachable from the Table by each of its Keys.
type Definition struct {
	Name        string
	Aliases     []string
	Help        string
	Errors      ErrorText
	HandlerName string
	Handler     action.Handler
}

// Cheat returns whether the definition has no help text. Such verbs are left
// out of help listings.
func (d *Definition) Cheat() bool {
	return d.Help == ""
}

// Keys returns every word the player can type to use the definition. The name
// comes first if it is a vocabulary word; a name that is not, such as "move",
// only groups its aliases.
func (d *Definition) Keys() []string {
	var keys []string
	if IsKnown(d.Name) {
		keys = append(keys, d.Name)
	}
	for _, a := range d.Aliases {
		if a != d.Name {
			keys = append(keys, a)
		}
	}
	return keys
}

// Table is a loaded, validated verb table. It is read-only once built.
type Table struct {
	defs  []*Definition
	byKey map[string]*Definition
}

// Lookup returns the Definition that key refers to, either by name or by
// alias.
func (t *Table) Lookup(key string) (*Definition, bool) {
	if t == nil {
		return nil, false
	}
	d, ok := t.byKey[key]
	return d, ok
}

// Definitions returns all definitions in the order they were declared.
func (t *Table) Definitions() []*Definition {
	defs := make([]*Definition, len(t.defs))
	copy(defs, t.defs)
	return defs
}

// Keys returns every lookup key in the table, sorted.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.byKey))
	for k := range t.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of definitions in the table.
func (t *Table) Len() int {
	return len(t.defs)
}

// record is a verb definition as read from a file, before validation.
type record struct {
	name      string
	help      string
	errorText interface{}
	callback  string
	aliases   []string
}

func build(recs []record, handlers action.HandlerSet) (*Table, error) {
	if err := CheckPartitions(); err != nil {
		return nil, nverrors.WrapConfig(err, "", "classification tables")
	}

	t := &Table{byKey: map[string]*Definition{}}

	for _, r := range recs {
		name := strings.ToLower(strings.TrimSpace(r.name))
		if name == "" {
			return nil, nverrors.Configf("", "verb with empty name")
		}

		// help is handled by the resolver directly
		if name == "help" {
			continue
		}

		if r.callback == "" {
			return nil, nverrors.Configf(name, "no handler declared")
		}
		h, ok := handlers.Lookup(r.callback)
		if !ok {
			return nil, nverrors.Configf(name, "handler %q is not registered", r.callback)
		}

		et, err := parseErrorText(r.errorText)
		if err != nil {
			return nil, nverrors.WrapConfig(err, name, "errortext")
		}

		def := &Definition{
			Name:        name,
			Help:        r.help,
			Errors:      et,
			HandlerName: r.callback,
			Handler:     h,
		}

		for _, a := range r.aliases {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "help" {
				return nil, nverrors.Configf(name, "alias %q cannot be used", a)
			}
			if !IsKnown(a) {
				return nil, nverrors.Configf(name, "alias %q is not a known verb", a)
			}
			def.Aliases = append(def.Aliases, a)
		}

		if !IsKnown(name) && len(def.Aliases) == 0 {
			return nil, nverrors.Configf(name, "not a known verb and has no aliases")
		}

		for _, k := range def.Keys() {
			if existing, ok := t.byKey[k]; ok {
				return nil, nverrors.Configf(name, "key %q is already used by %q", k, existing.Name)
			}
			t.byKey[k] = def
		}
		t.defs = append(t.defs, def)
	}

	for _, w := range vocabulary {
		if w == "help" {
			continue
		}
		if _, ok := t.byKey[w]; !ok {
			return nil, nverrors.Configf(w, "no definition in verb table")
		}
	}

	return t, nil
}
