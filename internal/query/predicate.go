package query

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

type Field string

const (
	FieldID          Field = "id"
	FieldOwner       Field = "owner"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldPriority    Field = "priority"
	FieldStatus      Field = "status"
)

type Op int

const (
	OpEq Op = iota
	OpContains
)

var (
	errUnknownField   = errors.New("unknown field")
	errUnknownOp      = errors.New("unknown operator")
	errInvalidValue   = errors.New("invalid condition value")
	errEmptyCondition = errors.New("empty condition group")
)

// Condition is a single named test over a task field. A condition with
// Or set ignores Field, Op and Value and matches when any alternative does.
type Condition struct {
	Field Field
	Op    Op
	Value any
	Or    []Condition
}

func Eq(field Field, value any) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

// Contains tests for a case-sensitive substring.
func Contains(field Field, text string) Condition {
	return Condition{Field: field, Op: OpContains, Value: text}
}

func AnyOf(alternatives ...Condition) Condition {
	return Condition{Or: alternatives}
}

func (c Condition) validate() error {
	if c.Or != nil {
		if len(c.Or) == 0 {
			return errEmptyCondition
		}
		for _, alt := range c.Or {
			if err := alt.validate(); err != nil {
				return err
			}
		}
		return nil
	}

	switch c.Field {
	case FieldID, FieldOwner:
		if c.Op != OpEq {
			return fmt.Errorf("%w: %d on %s", errUnknownOp, c.Op, c.Field)
		}
		if _, ok := c.Value.(int64); !ok {
			return fmt.Errorf("%w: %s expects an integer, got %T", errInvalidValue, c.Field, c.Value)
		}
		return nil
	case FieldTitle, FieldDescription, FieldPriority, FieldStatus:
		if c.Op != OpEq && c.Op != OpContains {
			return fmt.Errorf("%w: %d on %s", errUnknownOp, c.Op, c.Field)
		}
		s, ok := c.Value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string, got %T", errInvalidValue, c.Field, c.Value)
		}
		// Postgres text columns reject both of these.
		if !utf8.ValidString(s) || strings.IndexByte(s, 0) >= 0 {
			return fmt.Errorf("%w: %s holds bytes that cannot be stored", errInvalidValue, c.Field)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", errUnknownField, c.Field)
}

func (c Condition) match(t *models.Task) bool {
	if c.Or != nil {
		for _, alt := range c.Or {
			if alt.match(t) {
				return true
			}
		}
		return false
	}

	v := fieldValue(t, c.Field)
	switch c.Op {
	case OpEq:
		return v == c.Value
	case OpContains:
		s, ok := v.(string)
		sub, _ := c.Value.(string)
		return ok && strings.Contains(s, sub)
	}
	return false
}

func fieldValue(t *models.Task, f Field) any {
	switch f {
	case FieldID:
		return t.ID
	case FieldOwner:
		return t.OwnerID
	case FieldTitle:
		return t.Title
	case FieldDescription:
		return t.Description
	case FieldPriority:
		return string(t.Priority)
	case FieldStatus:
		return string(t.Status)
	}
	return nil
}

// Predicate is a conjunction of conditions. The zero value matches every task.
type Predicate struct {
	conds []Condition
	none  bool
}

// All matches every task.
func All() Predicate {
	return Predicate{}
}

// None matches no task.
func None() Predicate {
	return Predicate{none: true}
}

// And returns a copy of p with conds appended.
func (p Predicate) And(conds ...Condition) Predicate {
	merged := make([]Condition, 0, len(p.conds)+len(conds))
	merged = append(merged, p.conds...)
	merged = append(merged, conds...)
	return Predicate{conds: merged, none: p.none}
}

func (p Predicate) Conditions() []Condition {
	return append([]Condition(nil), p.conds...)
}

func (p Predicate) IsNone() bool {
	return p.none
}

func (p Predicate) IsAll() bool {
	return !p.none && len(p.conds) == 0
}

func (p Predicate) Match(t *models.Task) bool {
	if p.none {
		return false
	}
	for _, c := range p.conds {
		if !c.match(t) {
			return false
		}
	}
	return true
}
