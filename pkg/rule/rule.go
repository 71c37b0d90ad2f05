// Package rule describes two-state birth/survival rules.
package rule

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnboundedRule is returned for rules that give birth to cells with zero
// live neighbors; such rules fill the infinite plane in one generation.
var ErrUnboundedRule = errors.New("rule: birth on 0 neighbors is not supported")

// Rule is a birth/survival rule. Bit n of Birth (Survival) is set when a dead
// (live) cell with n live neighbors is alive in the next generation.
type Rule struct {
	Birth    uint16
	Survival uint16
}

// Conway is the standard Game of Life rule, B3/S23.
var Conway = Rule{Birth: 1 << 3, Survival: 1<<2 | 1<<3}

// Next reports whether a cell is alive in the next generation.
func (r Rule) Next(alive bool, neighbors int) bool {
	if alive {
		return r.Survival&(1<<neighbors) != 0
	}
	return r.Birth&(1<<neighbors) != 0
}

// IsConway reports whether r is B3/S23.
func (r Rule) IsConway() bool { return r == Conway }

// Validate rejects rules the sparse engines cannot represent.
func (r Rule) Validate() error {
	if r.Birth&1 != 0 {
		return ErrUnboundedRule
	}
	if r.Birth>>9 != 0 || r.Survival>>9 != 0 {
		return fmt.Errorf("rule: neighbor counts above 8 in %s", r)
	}
	return nil
}

// String renders the rule in B/S notation.
func (r Rule) String() string {
	return "B" + digits(r.Birth) + "/S" + digits(r.Survival)
}

func digits(mask uint16) string {
	var b strings.Builder
	for n := 0; n <= 8; n++ {
		if mask&(1<<n) != 0 {
			b.WriteByte(byte('0' + n))
		}
	}
	return b.String()
}

// Parse reads a rule in B/S notation ("B3/S23") or the survival/birth
// notation used by Life 1.05 files ("23/3").
func Parse(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("rule: malformed %q", s)
	}
	var r Rule
	var err error
	upper0, upper1 := strings.ToUpper(parts[0]), strings.ToUpper(parts[1])
	switch {
	case strings.HasPrefix(upper0, "B") && strings.HasPrefix(upper1, "S"):
		if r.Birth, err = parseMask(upper0[1:]); err != nil {
			return Rule{}, fmt.Errorf("rule: birth of %q: %w", s, err)
		}
		if r.Survival, err = parseMask(upper1[1:]); err != nil {
			return Rule{}, fmt.Errorf("rule: survival of %q: %w", s, err)
		}
	case strings.HasPrefix(upper0, "S") && strings.HasPrefix(upper1, "B"):
		if r.Survival, err = parseMask(upper0[1:]); err != nil {
			return Rule{}, fmt.Errorf("rule: survival of %q: %w", s, err)
		}
		if r.Birth, err = parseMask(upper1[1:]); err != nil {
			return Rule{}, fmt.Errorf("rule: birth of %q: %w", s, err)
		}
	default:
		if r.Survival, err = parseMask(parts[0]); err != nil {
			return Rule{}, fmt.Errorf("rule: survival of %q: %w", s, err)
		}
		if r.Birth, err = parseMask(parts[1]); err != nil {
			return Rule{}, fmt.Errorf("rule: birth of %q: %w", s, err)
		}
	}
	return r, nil
}

func parseMask(s string) (uint16, error) {
	var mask uint16
	for _, ch := range s {
		if ch < '0' || ch > '8' {
			return 0, fmt.Errorf("unexpected %q", ch)
		}
		mask |= 1 << (ch - '0')
	}
	return mask, nil
}
