// Package rules provides ordered threshold cascades: a list of predicates
// evaluated top to bottom where the first match decides the result.
package rules

// Rule pairs a predicate with the result it yields when the predicate holds.
type Rule[In any, Out any] struct {
	Name string
	When func(In) bool
	Then Out
}

// Table is an ordered rule list with a fallback result.
// Priority is strictly positional; once a rule matches no later rule is consulted.
type Table[In any, Out any] struct {
	rules    []Rule[In, Out]
	fallback Out
}

// NewTable builds a table that yields fallback when no rule matches.
func NewTable[In any, Out any](fallback Out, rules ...Rule[In, Out]) *Table[In, Out] {
	rs := make([]Rule[In, Out], 0, len(rules))
	for _, r := range rules {
		if r.When == nil {
			continue
		}
		rs = append(rs, r)
	}
	return &Table[In, Out]{rules: rs, fallback: fallback}
}

// Evaluate returns the result of the first matching rule, or the fallback.
func (t *Table[In, Out]) Evaluate(in In) Out {
	out, _, _ := t.Match(in)
	return out
}

// Match is Evaluate that also reports which rule fired.
// name is empty and matched is false when the fallback was used.
func (t *Table[In, Out]) Match(in In) (out Out, name string, matched bool) {
	for _, r := range t.rules {
		if r.When(in) {
			return r.Then, r.Name, true
		}
	}
	return t.fallback, "", false
}

// Len returns the number of rules, excluding the fallback.
func (t *Table[In, Out]) Len() int {
	return len(t.rules)
}

// Fallback returns the result used when nothing matches.
func (t *Table[In, Out]) Fallback() Out {
	return t.fallback
}
