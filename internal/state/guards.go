package state

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
)

// AssignGuard registers a new on-duty guard at gate. On a validation failure
// the roster is left unchanged.
func (s *AppState) AssignGuard(name, phone, gate string) (common.Guard, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	gate = strings.TrimSpace(gate)

	if err := validateGuard(name, phone, gate); err != nil {
		return common.Guard{}, err
	}

	guard := common.Guard{
		ID:           fmt.Sprintf("G-%03d", s.nextGuardSeq),
		Name:         name,
		AssignedGate: gate,
		Status:       common.GuardOnDuty,
		Phone:        phone,
	}
	s.nextGuardSeq++
	s.guards = append(s.guards, guard)
	s.mutated()
	return guard, nil
}

// RemoveGuard takes a guard off the roster. Its ID is never reissued.
func (s *AppState) RemoveGuard(id string) error {
	idx := slices.IndexFunc(s.guards, func(g common.Guard) bool { return g.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrGuardNotFound, id)
	}
	s.guards = slices.Delete(s.guards, idx, idx+1)
	if s.guardCursor >= len(s.guards) && s.guardCursor > 0 {
		s.guardCursor = len(s.guards) - 1
	}
	s.mutated()
	return nil
}

// MoveGuardCursor moves the roster highlight, clamped to the list
func (s *AppState) MoveGuardCursor(delta int) {
	if len(s.guards) == 0 {
		return
	}
	next := min(max(s.guardCursor+delta, 0), len(s.guards)-1)
	if next == s.guardCursor {
		return
	}
	s.guardCursor = next
	s.mutated()
}

// HighlightedGuard returns the guard under the roster cursor
func (s *AppState) HighlightedGuard() (common.Guard, bool) {
	if s.guardCursor < 0 || s.guardCursor >= len(s.guards) {
		return common.Guard{}, false
	}
	return s.guards[s.guardCursor], true
}

func validateGuard(name, phone, gate string) error {
	if name == "" {
		return NewValidationError("name", name, "name is required")
	}
	if err := validatePhone(phone); err != nil {
		return err
	}
	if !slices.Contains(fixtures.GateShortNames(), gate) {
		return NewValidationError("gate", gate, fmt.Sprintf("unknown gate, expected one of %s",
			strings.Join(fixtures.GateShortNames(), ", ")))
	}
	return nil
}

// validatePhone accepts an empty number or one made of digits, spaces, '+',
// '-', parentheses and 'X' placeholders with at least three digits or Xs
func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9', r == 'X', r == 'x':
			digits++
		case r == ' ', r == '+', r == '-', r == '(', r == ')':
		default:
			return NewValidationError("phone", phone, fmt.Sprintf("unexpected character %q", r))
		}
	}
	if digits < 3 {
		return NewValidationError("phone", phone, "too few digits")
	}
	return nil
}

func highestGuardSeq(guards []common.Guard) int {
	highest := 0
	for _, g := range guards {
		n, err := strconv.Atoi(strings.TrimPrefix(g.ID, "G-"))
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest
}
