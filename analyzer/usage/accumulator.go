package usage

// Accumulator collects facts of one traversal, it is not safe for concurrent use
type Accumulator struct {
	facts []*Fact
}

// NewAccumulator creates an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add appends facts in discovery order
func (a *Accumulator) Add(facts ...*Fact) {
	a.facts = append(a.facts, facts...)
}

// Len returns number of collected facts
func (a *Accumulator) Len() int {
	return len(a.facts)
}

// Facts returns collected facts
func (a *Accumulator) Facts() []*Fact {
	return a.facts
}

// ByKind groups facts by kind preserving order
func ByKind(facts []*Fact) map[Kind][]*Fact {
	ret := make(map[Kind][]*Fact)
	for _, fact := range facts {
		ret[fact.Kind] = append(ret[fact.Kind], fact)
	}
	return ret
}
