package searcher

import (
	"math"
	"sync"

	"pandemic/game"
)

// decision is a tree node for a state in the Actions phase of the searched turn.
// Once the Actions phase is over the node is a leaf and playouts take over.
type decision struct {
	sync.Mutex
	parent   *decision
	action   game.Action   // Action that led here from the parent
	actions  []game.Action // Legal actions, children are expanded in this order
	children []*decision
	rewards  float64
	visits   float64
}

func newDecision(parent *decision, action game.Action, gs *game.GameState) *decision {
	d := &decision{parent: parent, action: action}
	if gs.Status == game.Ongoing && gs.Phase == game.ActionsPhase {
		d.actions = game.GetAvailableActions(gs)
		d.children = make([]*decision, 0, len(d.actions))
	}
	return d
}

// selectOrExpand returns the child to descend into and its state. added reports a new child.
// A leaf returns itself.
func (d *decision) selectOrExpand(gs *game.GameState) (child *decision, next *game.GameState, added bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.actions) == 0 { // Leaf
		return d, gs, false
	}

	if len(d.actions) > len(d.children) { // Expandable
		action := d.actions[len(d.children)]
		next, err := game.PerformAction(gs, action)
		if err != nil {
			next = gs.Copy()
			next.Status = game.Lost
		}
		child := newDecision(d, action, next)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, true
	}

	child = d.children[d.pickChild()]
	child.applyLoss()
	next, err := game.PerformAction(gs, child.action)
	if err != nil {
		panic("expanded action is no longer legal: " + err.Error())
	}
	return child, next, false
}

func (d *decision) pickChild() int {
	if d.visits == 0 {
		panic("node has children but no visits")
	}
	policy := newUCT(CSquared, d.visits)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		q, n := child.stats()
		if n == 0 {
			return i
		}
		if score := policy.evaluate(q, n); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// applyLoss is the virtual loss that steers parallel workers away from a node being explored.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) stats() (rewards, visits float64) {
	d.Lock()
	defer d.Unlock()
	return d.rewards, d.visits
}

func (d *decision) backup(reward float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root nodes carry a virtual loss
		d.reverseLoss()
	}
	d.rewards += reward
	d.visits++
	return d.parent
}

// Advice is one candidate action with the statistics of its subtree.
type Advice struct {
	Action game.Action
	Visits int
	Value  float64 // Mean reward, 1 is a certain win
}

// advice ranks the expanded children by visits.
func (d *decision) advice() []Advice {
	d.Lock()
	children := append([]*decision(nil), d.children...)
	d.Unlock()

	out := make([]Advice, 0, len(children))
	for _, child := range children {
		q, n := child.stats()
		a := Advice{Action: child.action, Visits: int(n)}
		if n > 0 {
			a.Value = q / n
		}
		out = append(out, a)
	}
	sortAdvice(out)
	return out
}
