package screen

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrWouldCreateCycle = errors.New("screen: would create cycle")
	ErrUnknownSlot      = errors.New("screen: unknown slot")
)

// CheckAncestorCycle rejects child when it already appears in path, the chain
// of slot names from the root down to the prospective parent.
func CheckAncestorCycle(child string, path []string) error {
	child = strings.TrimSpace(child)
	for _, ancestor := range path {
		if strings.TrimSpace(ancestor) == child {
			chain := append(slices.Clone(path), child)
			return fmt.Errorf("%w: %s", ErrWouldCreateCycle, strings.Join(chain, " -> "))
		}
	}
	return nil
}

// OtherParents lists the slots, besides parent, that already declare a
// Slot-typed widget pointing at child. A non-empty result means child would be
// materialized under several parents.
func (s *Spec) OtherParents(child, parent string) []string {
	if s == nil {
		return nil
	}
	child, parent = strings.TrimSpace(child), strings.TrimSpace(parent)
	var out []string
	for _, slot := range s.Slots {
		name := strings.TrimSpace(slot.Name)
		if name == parent || slices.Contains(out, name) {
			continue
		}
		for _, w := range slot.Widgets {
			if w.TargetSlot() == child {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// LinkSlot grafts child under parent by appending a Slot-typed widget to
// parent, creating an empty SlotSpec for child when none exists. path is the
// chain from the root to parent; parent itself is checked even when path omits
// it. On a cycle the spec is left untouched. The returned names are other
// parents of child (ambiguous, not fatal).
func (s *Spec) LinkSlot(parent, child string, path []string) ([]string, error) {
	parent, child = strings.TrimSpace(parent), strings.TrimSpace(child)
	ancestors := path
	if len(path) == 0 || strings.TrimSpace(path[len(path)-1]) != parent {
		ancestors = append(slices.Clone(path), parent)
	}
	if err := CheckAncestorCycle(child, ancestors); err != nil {
		return nil, err
	}
	parentSlot, ok := s.Slot(parent)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, parent)
	}

	others := s.OtherParents(child, parent)
	parentSlot.Widgets = append(parentSlot.Widgets, WidgetSpec{
		Type:    WidgetTypeSlot,
		NameTag: child,
		SlotID:  child,
	})
	if _, exists := s.Slot(child); !exists {
		s.Slots = append(s.Slots, SlotSpec{Name: child})
	}
	return others, nil
}

// --- Diagnostics ---

type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

type DiagnosticCode string

const (
	DiagMissingRoot      DiagnosticCode = "missing-root"
	DiagDuplicateSlot    DiagnosticCode = "duplicate-slot"
	DiagOrphanSlot       DiagnosticCode = "orphan-slot"
	DiagCycle            DiagnosticCode = "cycle"
	DiagMultiParent      DiagnosticCode = "multi-parent"
	DiagUnknownSlotRef   DiagnosticCode = "unknown-slot-ref"
	DiagEmptySlotID      DiagnosticCode = "empty-slot-id"
	DiagDuplicateNameTag DiagnosticCode = "duplicate-name-tag"
)

// Diagnostic is one actionable finding about a spec's slot graph.
type Diagnostic struct {
	Severity Severity
	Code     DiagnosticCode
	Slot     string
	Widget   string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s", d.Severity, d.Code, d.Message)
}

// Validate inspects the slot graph of s without instantiating anything.
func Validate(s *Spec) []Diagnostic {
	if s == nil {
		return nil
	}
	var diags []Diagnostic
	add := func(sev Severity, code DiagnosticCode, slot, widget, format string, args ...any) {
		diags = append(diags, Diagnostic{Severity: sev, Code: code, Slot: slot, Widget: widget, Message: fmt.Sprintf(format, args...)})
	}

	if len(s.Slots) == 0 {
		add(SeverityError, DiagMissingRoot, "", "", "screen %q has no root slot", s.Key)
		return diags
	}

	// first registration wins, matching the composer
	table := make(map[string]*SlotSpec, len(s.Slots))
	order := make([]string, 0, len(s.Slots))
	for i := range s.Slots {
		name := strings.TrimSpace(s.Slots[i].Name)
		if _, dup := table[name]; dup {
			add(SeverityWarning, DiagDuplicateSlot, name, "", "slot %q declared more than once; first declaration wins", name)
			continue
		}
		table[name] = &s.Slots[i]
		order = append(order, name)
	}

	edges := make(map[string][]string, len(table))
	parents := make(map[string][]string)
	tags := make(map[string]string)
	for _, name := range order {
		for _, w := range table[name].Widgets {
			if w.Disabled {
				continue
			}
			if tag := w.Tag(); tag != "" {
				if first, dup := tags[tag]; dup {
					add(SeverityWarning, DiagDuplicateNameTag, name, tag, "name tag %q in slot %q already used in slot %q; first registration wins", tag, name, first)
				} else {
					tags[tag] = name
				}
			}
			if w.Type != WidgetTypeSlot {
				continue
			}
			target := w.TargetSlot()
			if target == "" {
				add(SeverityWarning, DiagEmptySlotID, name, w.Tag(), "slot widget %q in slot %q has no slot id", w.Tag(), name)
				continue
			}
			if _, ok := table[target]; !ok {
				add(SeverityInfo, DiagUnknownSlotRef, name, w.Tag(), "slot widget %q references slot %q which has no content", w.Tag(), target)
				continue
			}
			edges[name] = append(edges[name], target)
			if !slices.Contains(parents[target], name) {
				parents[target] = append(parents[target], name)
			}
		}
	}

	for _, name := range order {
		if len(parents[name]) > 1 {
			add(SeverityWarning, DiagMultiParent, name, "", "slot %q has several parents: %s", name, strings.Join(parents[name], ", "))
		}
	}

	// ancestor-cycle detection over every component, root first
	const (
		unvisited = iota
		onPath
		done
	)
	state := make(map[string]int, len(order))
	var path []string
	var walk func(string)
	walk = func(name string) {
		state[name] = onPath
		path = append(path, name)
		for _, child := range edges[name] {
			switch state[child] {
			case onPath:
				add(SeverityError, DiagCycle, name, child, "%v", CheckAncestorCycle(child, path))
			case unvisited:
				walk(child)
			}
		}
		path = path[:len(path)-1]
		state[name] = done
	}
	root := order[0]
	walk(root)
	reachable := make(map[string]bool, len(state))
	for name, st := range state {
		if st == done {
			reachable[name] = true
		}
	}
	for _, name := range order[1:] {
		if !reachable[name] {
			add(SeverityWarning, DiagOrphanSlot, name, "", "slot %q is not reachable from root slot %q", name, root)
		}
		if state[name] == unvisited {
			walk(name)
		}
	}

	return diags
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	return slices.ContainsFunc(diags, func(d Diagnostic) bool { return d.Severity == SeverityError })
}
