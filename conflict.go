package crossway

// ConflictGroup is a set of movements that cross a candidate's path, together
// with the direction whose next departure is expected to clear them
type ConflictGroup struct {
	Movements []Movement
	WakeOn    Direction
}

// Decision is the outcome of evaluating a candidate movement against the
// current occupancy
type Decision struct {
	Admit bool
	// WakeOn names the condition the vehicle should wait on when not admitted
	WakeOn Direction
	// Blockers lists the occupied movements that caused the block
	Blockers []Movement
}

var (
	nToE = Movement{North, East}
	nToS = Movement{North, South}
	nToW = Movement{North, West}
	eToN = Movement{East, North}
	eToS = Movement{East, South}
	eToW = Movement{East, West}
	sToN = Movement{South, North}
	sToE = Movement{South, East}
	sToW = Movement{South, West}
	wToN = Movement{West, North}
	wToE = Movement{West, East}
	wToS = Movement{West, South}
)

func group(wakeOn Direction, movements ...Movement) ConflictGroup {
	return ConflictGroup{Movements: movements, WakeOn: wakeOn}
}

// conflictTable lists, per movement, the groups of movements crossing its
// path. Groups are checked in order and the first occupied one decides which
// direction the vehicle waits on.
var conflictTable = map[Movement][]ConflictGroup{
	// right turns
	nToW: {group(West, eToW, sToW)},
	sToE: {group(East, wToE, nToE)},
	eToN: {group(North, sToN, wToN)},
	wToS: {group(South, nToS, eToS)},

	// left turns
	nToE: {
		group(North, wToN, sToN),
		group(East, wToE, sToE),
		group(West, sToW, eToW),
		group(South, eToS),
	},
	sToW: {
		group(North, wToN),
		group(East, wToE, nToE),
		group(South, nToS, eToS),
		group(West, eToW, nToW),
	},
	eToS: {
		group(North, sToN, wToN),
		group(East, nToE, wToE),
		group(West, eToW),
		group(South, nToS, wToS),
	},
	wToN: {
		group(East, nToE),
		group(South, nToS, eToS),
		group(North, eToN, sToN),
		group(West, eToW, sToW),
	},

	// straight through
	nToS: {
		group(North, wToN),
		group(West, wToE, eToW, sToW),
		group(South, wToS, eToS),
	},
	sToN: {
		group(North, eToN, wToN),
		group(East, nToE, wToE),
		group(South, eToS),
		group(West, eToW),
	},
	eToW: {
		group(East, nToE),
		group(South, nToS),
		group(West, nToW, sToW),
		group(North, sToN, wToN),
	},
	wToE: {
		group(North, sToN),
		group(South, nToS, eToS),
		group(East, nToE, sToE),
		group(West, sToW),
	},
}

// ConflictGroups returns a copy of the ordered conflict groups for m
func ConflictGroups(m Movement) []ConflictGroup {
	groups := conflictTable[m]
	result := make([]ConflictGroup, len(groups))
	for i, g := range groups {
		result[i] = ConflictGroup{
			Movements: append([]Movement(nil), g.Movements...),
			WakeOn:    g.WakeOn,
		}
	}
	return result
}

// lists reports whether the table row of a names b
func lists(a, b Movement) bool {
	for _, g := range conflictTable[a] {
		for _, m := range g.Movements {
			if m == b {
				return true
			}
		}
	}
	return false
}

// Conflicts reports whether movements a and b may not be inside the
// intersection at the same time
func Conflicts(a, b Movement) bool {
	return lists(a, b) || lists(b, a)
}

// MayEnter decides whether a vehicle on candidate can enter given occ.
// It never modifies occ; the caller must keep occ stable while it runs.
//
// The candidate's own conflict groups are checked first, in order. A few
// rows of the table are one-sided (an occupied movement lists the candidate
// but not the other way round), so occupied movements whose rows name the
// candidate also block it; the vehicle then waits on that movement's
// destination, which is the condition its exit signals.
func MayEnter(candidate Movement, occ *Occupancy) Decision {
	for _, g := range conflictTable[candidate] {
		var blockers []Movement
		for _, m := range g.Movements {
			if occ.Count(m) > 0 {
				blockers = append(blockers, m)
			}
		}
		if len(blockers) > 0 {
			return Decision{WakeOn: g.WakeOn, Blockers: blockers}
		}
	}

	for _, m := range AllMovements() {
		if occ.Count(m) > 0 && lists(m, candidate) {
			return Decision{WakeOn: m.Destination, Blockers: []Movement{m}}
		}
	}

	return Decision{Admit: true}
}
