package order

// EdgeKind classifies a transition edge relative to the canonical forward
// order of statuses. The classification drives the justification rules of
// the transition validator.
type EdgeKind int

const (
	// EdgeForward is a step forward along the canonical delivery progression.
	EdgeForward EdgeKind = iota

	// EdgeRollback moves an order backward along the canonical progression,
	// e.g. preparing -> confirmed. Rollbacks require a justification.
	EdgeRollback

	// EdgeCancellation moves an order to the cancelled status.
	EdgeCancellation
)

// String returns the lowercase name of the edge kind.
func (k EdgeKind) String() string {
	switch k {
	case EdgeForward:
		return "forward"
	case EdgeRollback:
		return "rollback"
	case EdgeCancellation:
		return "cancellation"
	}
	return "unknown"
}

// roleEdges is the authoritative per-role transition table. It is the one
// source of truth for which actor may traverse which edge; callers pass a
// role and never reimplement permission logic.
//
// Admin edges are not listed here: an admin may move an order from any
// non-terminal status to any other status, which AllowedNext computes
// directly from the status set.
var roleEdges = map[ActorRole]map[Status][]Status{
	RoleSeller: {
		Placed:    {Confirmed, Cancelled},
		Confirmed: {Preparing},
		Preparing: {Ready, Cancelled},
	},
	RoleCourier: {
		// Claiming an unassigned ready order sets courier_id; that side
		// effect belongs to the executor, not the graph.
		Ready:          {OutForDelivery},
		OutForDelivery: {Delivered},
	},
	RoleCustomer: {
		// The customer cancellation window closes once the restaurant has
		// begun work.
		PendingPayment: {Cancelled},
		Placed:         {Cancelled},
	},
	RoleSystem: {
		PendingPayment: {Confirmed, Cancelled},
	},
}

// AllowedNext returns the set of statuses reachable from current in one
// step by the given role. Deterministic, no side effects.
//
// For terminal statuses the result is empty for every role, including admin.
func AllowedNext(current Status, role ActorRole) []Status {
	if current.IsTerminal() || current.Validate() != nil {
		return nil
	}

	if role == RoleAdmin {
		next := make([]Status, 0, len(getValidStatusStrings())-1)
		for _, s := range []Status{
			PendingPayment, Placed, Confirmed, Preparing, Ready, OutForDelivery, Delivered, Cancelled,
		} {
			if s != current {
				next = append(next, s)
			}
		}
		return next
	}

	edges := roleEdges[role][current]
	if len(edges) == 0 {
		return nil
	}
	next := make([]Status, len(edges))
	copy(next, edges)
	return next
}

// CanTransition reports whether the role may move an order from current to
// requested in one step.
func CanTransition(current, requested Status, role ActorRole) bool {
	for _, s := range AllowedNext(current, role) {
		if s == requested {
			return true
		}
	}
	return false
}

// Classify determines the kind of the (from, to) edge.
//
// An edge targeting Cancelled is a cancellation. Otherwise the edge is a
// rollback when it moves backward along the canonical forward order, and a
// forward edge in every other case (including steps out of pending_payment,
// which ranks before placed).
func Classify(from, to Status) EdgeKind {
	if to == Cancelled {
		return EdgeCancellation
	}

	ranks := forwardRank()
	fromRank, fromOK := ranks[from]
	toRank, toOK := ranks[to]
	if fromOK && toOK && toRank < fromRank {
		return EdgeRollback
	}
	return EdgeForward
}
