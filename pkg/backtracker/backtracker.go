// Package backtracker drives the constraint-solving search: an iterative
// depth-first search over slots, selecting the next slot via MRV,
// ordering its candidates via LCV, and propagating forward-checking after
// every placement, with snapshot/restore backtracking and hydration
// triggers on dead ends.
package backtracker

import (
	"math/rand"
	"time"

	"github.com/wordforge/crossgen/pkg/difficulty"
	"github.com/wordforge/crossgen/pkg/domain"
	"github.com/wordforge/crossgen/pkg/grid"
	"github.com/wordforge/crossgen/pkg/heuristics"
	"github.com/wordforge/crossgen/pkg/hydrator"
	"github.com/wordforge/crossgen/pkg/layout"
	"github.com/wordforge/crossgen/pkg/pattern"
	"github.com/wordforge/crossgen/pkg/slots"
)

// FailureReason names why a solve attempt did not produce a complete
// assignment.
type FailureReason string

const (
	ReasonNone                        FailureReason = ""
	ReasonConfigurationError          FailureReason = "configuration_error"
	ReasonLayoutInfeasible            FailureReason = "layout_infeasible"
	ReasonNoSlots                     FailureReason = "no_slots"
	ReasonUnsatisfiableInitialDomains FailureReason = "unsatisfiable_initial_domains"
	ReasonTimeout                     FailureReason = "timeout"
	ReasonBacktrackLimit              FailureReason = "backtrack_limit"
	ReasonNoSelectableSlot            FailureReason = "no_selectable_slot"
	ReasonExhaustedAllCandidates      FailureReason = "exhausted_all_candidates"
	ReasonDeadEndNoMoreChoices        FailureReason = "dead_end_no_more_choices"
)

// CellChange records one grid cell mutation so it can be undone.
type CellChange struct {
	Row, Col int
	Prev     rune
	New      rune
}

// PlacementRecord is what must be undone to revert a placement.
type PlacementRecord struct {
	SlotID        string
	Word          string
	CellChanges   []CellChange
	DomainsBefore map[string][]string
}

// Frame is one search-stack entry: a slot, its ordered candidate list,
// the index currently being tried, the record of its active placement
// (nil between attempts), and whether every candidate has been tried.
type Frame struct {
	SlotID     string
	Candidates []string
	Idx        int
	Record     *PlacementRecord
	Exhausted  bool
}

// Stats aggregates search telemetry.
type Stats struct {
	Steps       int
	Backtracks  int
	MaxDepth    int
	DurationMs  int64
	RescuePairs int
}

// Result is the solver's output envelope: identical shape on success and
// failure except for OK and the presence of Assignments.
type Result struct {
	OK          bool
	Grid        *grid.Grid
	Assignments map[string]string
	Reason      FailureReason
	Details     map[string]any
	Stats       Stats
}

// Options configures one solve run.
type Options struct {
	Config   difficulty.Config
	Seed     int64
	Hydrator *hydrator.Hydrator // optional
}

// Solve runs the backtracking search over g using idx as the candidate
// source, per opts.
func Solve(g *grid.Grid, idx *pattern.Index, opts Options) Result {
	start := time.Now()

	allSlots, byID := slots.Build(g)
	if len(allSlots) == 0 {
		return Result{OK: false, Reason: ReasonNoSlots, Stats: Stats{DurationMs: since(start)}}
	}

	used := domain.NewUsedSet()
	dm := domain.NewManager(idx, byID, used, rune(idx.UnknownChar))
	if opts.Hydrator != nil {
		opts.Hydrator.SetManager(dm)
	}
	assignment := make(map[string]string)
	rng := rand.New(rand.NewSource(opts.Seed))

	s := &solver{
		g:          g,
		idx:        idx,
		allSlots:   allSlots,
		byID:       byID,
		dm:         dm,
		used:       used,
		assignment: assignment,
		cfg:        opts.Config,
		hyd:        opts.Hydrator,
		rng:        rng,
		start:      start,
		nogoods:    make(map[nogoodKey]bool),
	}

	empties := dm.InitDomains(allSlots)
	if len(empties) > 0 {
		s.hydrateAll(empties)
		if stillEmpty := s.emptyDomainSlots(); len(stillEmpty) > 0 {
			return Result{
				OK:      false,
				Reason:  ReasonUnsatisfiableInitialDomains,
				Details: map[string]any{"slots": stillEmpty},
				Stats:   s.stats(),
			}
		}
	}

	return s.run()
}

type solver struct {
	g          *grid.Grid
	idx        *pattern.Index
	allSlots   []*slots.Slot
	byID       map[string]*slots.Slot
	dm         *domain.Manager
	used       *domain.UsedSet
	assignment map[string]string
	cfg        difficulty.Config
	hyd        *hydrator.Hydrator
	rng        *rand.Rand
	stack      []*Frame

	steps       int
	backtracks  int
	maxDepth    int
	start       time.Time
	nogoods     map[nogoodKey]bool
	rescuePairs int
}

type nogoodKey struct {
	slotID  string
	pattern string
}

func since(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

func (s *solver) stats() Stats {
	return Stats{Steps: s.steps, Backtracks: s.backtracks, MaxDepth: s.maxDepth, DurationMs: since(s.start), RescuePairs: s.rescuePairs}
}

func (s *solver) emptyDomainSlots() []string {
	var out []string
	for _, slot := range s.allSlots {
		if s.assignment[slot.ID] != "" {
			continue
		}
		if len(s.dm.Domain(slot.ID)) == 0 {
			out = append(out, slot.ID)
		}
	}
	return out
}

func (s *solver) hydrateAll(slotIDs []string) {
	if s.hyd == nil {
		return
	}
	for _, id := range slotIDs {
		s.hyd.HydrateSlot(s.g, s.byID[id], s.used)
	}
}

func (s *solver) unassignedSlots() []*slots.Slot {
	var out []*slots.Slot
	for _, slot := range s.allSlots {
		if s.assignment[slot.ID] == "" {
			out = append(out, slot)
		}
	}
	return out
}

func (s *solver) assignedSet() map[string]bool {
	out := make(map[string]bool, len(s.assignment))
	for id := range s.assignment {
		out[id] = true
	}
	return out
}

func (s *solver) tieBreak() []heuristics.TieBreak {
	if len(s.cfg.TieBreak) == 0 {
		return heuristics.DefaultTieBreak
	}
	out := make([]heuristics.TieBreak, 0, len(s.cfg.TieBreak))
	for _, tb := range s.cfg.TieBreak {
		switch tb {
		case difficulty.CrossingsDesc:
			out = append(out, heuristics.CrossingsDesc)
		case difficulty.LenDesc:
			out = append(out, heuristics.LenDesc)
		case difficulty.AlphaAsc:
			out = append(out, heuristics.AlphaAsc)
		}
	}
	return out
}

func (s *solver) topFrame() *Frame {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// run executes the main search loop. A Frame's Record field marks it as
// currently committed; a frame only ever carries a live Record while it
// sits anywhere but the top of the stack, or in the single step between a
// successful placement and the child frame pushed for the next slot. Any
// time a committed frame is re-examined as the top of the stack (because
// the child pushed on top of it was fully exhausted and popped), it is
// first undone and then advanced to its next candidate — never treated
// as a fresh slot to push a sibling frame for.
func (s *solver) run() Result {
	timeout := time.Duration(s.cfg.TimeoutMs) * time.Millisecond

	for {
		if s.cfg.TimeoutMs > 0 && time.Since(s.start) > timeout {
			return s.failure(ReasonTimeout)
		}
		if s.cfg.MaxBacktracks > 0 && s.backtracks > s.cfg.MaxBacktracks {
			return s.failure(ReasonBacktrackLimit)
		}
		if len(s.assignment) == len(s.allSlots) {
			return Result{OK: true, Grid: s.g, Assignments: s.assignment, Stats: s.stats()}
		}
		s.steps++

		if reason, done := s.deadDomainRescue(); done {
			return s.failure(reason)
		}

		switch top := s.topFrame(); {
		case top == nil:
			if !s.acquireFrame() {
				return s.failure(ReasonNoSelectableSlot)
			}
		case top.Exhausted:
			if !s.backtrackOnce() {
				return s.failure(ReasonExhaustedAllCandidates)
			}
		default:
			s.advanceCandidate(top)
		}
	}
}

// deadDomainRescue attempts a forced hydration for any unassigned slot
// whose domain is currently empty; if any remains empty, backtracks one
// frame. If backtracking empties the stack — the search has unwound
// completely with nowhere left to revise — and the difficulty
// configuration allows it, it tries adding one extra symmetric block
// pair to the grid and restarting the search from scratch rather than
// failing outright. Returns (reason, true) only when backtracking fails
// and no rescue was available (or allowed), signaling overall failure.
func (s *solver) deadDomainRescue() (FailureReason, bool) {
	empties := s.emptyDomainSlots()
	if len(empties) == 0 {
		return ReasonNone, false
	}
	s.hydrateAll(empties)
	if len(s.emptyDomainSlots()) == 0 {
		return ReasonNone, false
	}
	if s.backtrackOnce() {
		return ReasonNone, false
	}
	if s.tryRescueBlockPair() {
		return ReasonNone, false
	}
	return ReasonDeadEndNoMoreChoices, true
}

// tryRescueBlockPair adds one symmetric block pair to the grid and resets
// the search to start over against the reshaped slot layout. It is only
// reached once the stack has unwound completely, so there is nothing left
// to undo: the grid carries no letters placed during this attempt.
// Returns false if the difficulty configuration disallows rescue, the
// per-solve rescue budget is spent, or no run had room for another block.
func (s *solver) tryRescueBlockPair() bool {
	if !s.cfg.AllowRescueBlocks || s.rescuePairs >= s.cfg.MaxRescuePairs {
		return false
	}
	if !layout.AddRescueBlockPair(s.g, s.rng) {
		return false
	}
	s.rescuePairs++
	return s.resetAfterRescue()
}

// resetAfterRescue recomputes slots and domains against the rescued grid
// and restarts the search fresh. It returns false if the reshaped grid
// leaves some slot with no domain at all, in which case the rescue is
// treated as having failed to help.
func (s *solver) resetAfterRescue() bool {
	s.allSlots, s.byID = slots.Build(s.g)
	s.used = domain.NewUsedSet()
	s.dm = domain.NewManager(s.idx, s.byID, s.used, rune(s.idx.UnknownChar))
	if s.hyd != nil {
		s.hyd.SetManager(s.dm)
	}
	s.assignment = make(map[string]string)
	s.stack = nil
	s.nogoods = make(map[nogoodKey]bool)

	empties := s.dm.InitDomains(s.allSlots)
	if len(empties) > 0 {
		s.hydrateAll(empties)
		if len(s.emptyDomainSlots()) > 0 {
			return false
		}
	}
	return true
}

// acquireFrame selects the next slot via MRV (restricted to the frontier
// when possible), hydrates it if warranted, orders its candidates via
// LCV, and pushes a new Frame. Returns false if no slot could be
// selected (including when every slot is already assigned).
func (s *solver) acquireFrame() bool {
	unassigned := s.unassignedSlots()
	if len(unassigned) == 0 {
		return false
	}

	frontier := heuristics.Frontier(unassigned, s.assignedSet())
	slot := heuristics.SelectMRV(unassigned, s.dm, frontier, s.tieBreak())
	if slot == nil {
		return false
	}

	if s.hyd != nil && s.hyd.ShouldHydrate(len(s.dm.Domain(slot.ID))) {
		s.hyd.HydrateSlot(s.g, slot, s.used)
	}

	candidates := heuristics.OrderLCV(slot, s.dm.Domain(slot.ID), s.idx, s.byID, s.cfg.LCVDepth)
	if s.cfg.ShuffleCandidates {
		s.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	}

	s.stack = append(s.stack, &Frame{SlotID: slot.ID, Candidates: candidates, Idx: -1})
	if len(s.stack) > s.maxDepth {
		s.maxDepth = len(s.stack)
	}
	return true
}

// advanceCandidate tries frame's next candidate. If frame already carries
// a committed Record (we are retrying it after a child's subtree was
// fully exhausted), that placement is undone first. On a successful
// placement it commits the record and immediately descends by pushing
// the next slot's frame.
func (s *solver) advanceCandidate(frame *Frame) {
	if frame.Record != nil {
		s.undoRecord(frame.Record)
		frame.Record = nil
		delete(s.assignment, frame.SlotID)
	}

	frame.Idx++
	if frame.Idx >= len(frame.Candidates) {
		s.recordNogood(frame)
		frame.Exhausted = true
		return
	}

	word := frame.Candidates[frame.Idx]
	slot := s.byID[frame.SlotID]
	record, ok := s.tryPlaceAndPropagate(slot, word)
	if !ok {
		return // next loop iteration retries this same frame at idx+1
	}

	frame.Record = record
	s.assignment[slot.ID] = word
	s.acquireFrame() // descend: select and push the next slot's frame
}

func (s *solver) recordNogood(frame *Frame) {
	slot := s.byID[frame.SlotID]
	pat := slot.Pattern(rune(s.idx.UnknownChar))
	s.nogoods[nogoodKey{slotID: frame.SlotID, pattern: pat}] = true
}

// IsNogood reports whether (slotID, pattern) was already exhausted
// unsuccessfully earlier in this run.
func (s *solver) IsNogood(slotID, pattern string) bool {
	return s.nogoods[nogoodKey{slotID, pattern}]
}

// tryPlaceAndPropagate writes word into slot's cells, updates Used and
// domains, and forward-checks crossing slots. On any failure it fully
// undoes its own side effects and returns ok=false.
func (s *solver) tryPlaceAndPropagate(slot *slots.Slot, word string) (*PlacementRecord, bool) {
	snapshot := s.dm.SnapshotDomains()

	var changes []CellChange
	for i, cell := range slot.Cells {
		prev := cell.Letter
		newCh := rune(word[i])
		if prev == newCh {
			continue
		}
		if err := s.g.PlaceLetter(cell.Row, cell.Col, newCh); err != nil {
			s.undoCellChanges(changes)
			return nil, false
		}
		changes = append(changes, CellChange{Row: cell.Row, Col: cell.Col, Prev: prev, New: newCh})
	}

	s.used.Add(word)
	s.dm.RemoveWordFromAllDomains(word)

	emptied, _ := s.dm.RecomputeAfterPlacement(slot)
	if len(emptied) > 0 {
		s.undoCellChanges(changes)
		s.used.Remove(word)
		s.dm.RestoreDomainsSnapshot(snapshot)
		return nil, false
	}

	return &PlacementRecord{
		SlotID:        slot.ID,
		Word:          word,
		CellChanges:   changes,
		DomainsBefore: snapshot,
	}, true
}

func (s *solver) undoCellChanges(changes []CellChange) {
	for _, ch := range changes {
		if ch.Prev == 0 {
			s.g.ClearCell(ch.Row, ch.Col)
		} else {
			s.g.Cells[ch.Row][ch.Col].Letter = ch.Prev
		}
	}
}

// undoRecord reverses a committed placement: grid cells, domains, and
// Used set.
func (s *solver) undoRecord(record *PlacementRecord) {
	s.undoCellChanges(record.CellChanges)
	s.dm.RestoreDomainsSnapshot(record.DomainsBefore)
	s.used.Remove(record.Word)
}

// backtrackOnce pops the top frame, undoing its placement if it carries
// one. It returns false when the pop leaves the stack empty: the search
// has unwound completely and there is no earlier decision left to revise.
func (s *solver) backtrackOnce() bool {
	if len(s.stack) == 0 {
		return false
	}
	frame := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	if frame.Record != nil {
		s.undoRecord(frame.Record)
		delete(s.assignment, frame.SlotID)
	}
	s.backtracks++
	return len(s.stack) > 0
}

func (s *solver) failure(reason FailureReason) Result {
	return Result{
		OK:      false,
		Reason:  reason,
		Details: map[string]any{"assignedCount": len(s.assignment)},
		Stats:   s.stats(),
	}
}
