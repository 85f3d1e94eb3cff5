package core

import (
	"regexp"

	"github.com/wickhamj/banterbot/internal/bot"
)

// Handler is one reply handler. text is the lower-cased message text; any
// returned error is logged at the dispatch boundary and never propagates.
type Handler func(msg bot.Message, text string) error

// Rule is one entry in the pattern registry: a trigger, an optional guard that
// must also match, and the handler to invoke.
type Rule struct {
	Name    string
	Trigger *regexp.Regexp
	Guard   *regexp.Regexp
	Handler Handler
}

// Registry is an ordered, immutable-after-startup list of rules.
//
// Registration order is the priority order: many triggers are substrings of
// each other's vocabulary, and the first rule whose trigger (and guard, if
// present) matches wins. Do not reorder rules for readability.
type Registry struct {
	rules []Rule
}

// Add appends a rule. guard may be empty. Patterns are compiled at startup;
// a bad pattern is a programming error and panics.
func (r *Registry) Add(name, trigger, guard string, handler Handler) {
	rule := Rule{
		Name:    name,
		Trigger: regexp.MustCompile(trigger),
		Handler: handler,
	}
	if guard != "" {
		rule.Guard = regexp.MustCompile(guard)
	}
	r.rules = append(r.rules, rule)
}

// Resolve returns the first rule matching text, in registration order.
func (r *Registry) Resolve(text string) (Rule, bool) {
	for _, rule := range r.rules {
		if !rule.Trigger.MatchString(text) {
			continue
		}
		if rule.Guard != nil && !rule.Guard.MatchString(text) {
			continue
		}
		return rule, true
	}
	return Rule{}, false
}

// Rules returns the registered rules in priority order.
func (r *Registry) Rules() []Rule {
	return r.rules
}
