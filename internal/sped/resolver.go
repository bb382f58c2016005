package sped

import "fmt"

// line is one tokenized physical line handed from the reader to the
// resolver, with any decode/shape diagnostics already attached. Keeping the
// diagnostics on the line (rather than in a side channel) makes their final
// order a pure function of file order, independent of batch size.
type line struct {
	num    int // 1-based physical line number
	fields []string
	diags  []Diagnostic
}

// CarryState is the resolver memory passed between chunks: the last-seen row
// id per register code, plus the next row id to assign. A zero-value-free
// constructor keeps the "no parent seen yet" case distinct from row id 0.
type CarryState struct {
	lastSeen map[string]int64
	next     int64
}

// NewCarryState returns carry-state for the start of a parse.
func NewCarryState() *CarryState {
	return &CarryState{lastSeen: make(map[string]int64)}
}

// resolver assigns row ids and parent ids over ordered batches. Resolution
// is a single pass with constant work per line; its only memory is the
// carry-state, which is what makes chunking invisible to the output.
type resolver struct {
	policy Policy
	state  *CarryState
}

func newResolver(policy Policy, state *CarryState) *resolver {
	if state == nil {
		state = NewCarryState()
	}
	return &resolver{policy: policy, state: state}
}

// resolve processes one batch in order, returning the resolved records and
// the batch's diagnostics in file order. A child always attaches to the most
// recent prior record of its declared parent register; a child whose parent
// register has not appeared yet is kept parentless with an orphan
// diagnostic.
func (r *resolver) resolve(batch []line) ([]Record, []Diagnostic) {
	recs := make([]Record, 0, len(batch))
	var diags []Diagnostic
	for _, ln := range batch {
		rowID := r.state.next
		r.state.next++

		parentID := NoParent
		if parentReg, ok := r.policy.Parent(ln.fields[0]); ok {
			if last, seen := r.state.lastSeen[parentReg]; seen {
				parentID = last
			} else {
				diags = append(diags, Diagnostic{
					Code:    DiagOrphanedChild,
					Line:    ln.num,
					RowID:   rowID,
					Message: fmt.Sprintf("register %s before any %s", ln.fields[0], parentReg),
				})
			}
		}

		for _, d := range ln.diags {
			d.RowID = rowID
			diags = append(diags, d)
		}

		r.state.lastSeen[ln.fields[0]] = rowID
		recs = append(recs, Record{
			RowID:    rowID,
			ParentID: parentID,
			Reg:      ln.fields[0],
			Fields:   ln.fields,
			Line:     ln.num,
		})
	}
	return recs, diags
}
