package query

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

// Builder turns optional request filters into predicates.
type Builder struct {
	logger zerolog.Logger
}

func NewBuilder(logger zerolog.Logger) *Builder {
	return &Builder{logger: logger}
}

// Filter builds the structured-mode predicate: every non-nil input adds an
// equality condition and all of them are ANDed. Filter values are compared
// as stored strings, so an unknown priority simply matches nothing.
//
// If composition fails, Filter does not report the error. It degrades to
// tasks with priority HIGH, still scoped to ownerID when one is given.
// Callers observe this narrower result set, so it must stay as is.
func (b *Builder) Filter(ownerID *int64, priority, status *string) Predicate {
	p, err := compose(func() []Condition {
		var conds []Condition
		if priority != nil {
			conds = append(conds, Eq(FieldPriority, *priority))
		}
		if status != nil {
			conds = append(conds, Eq(FieldStatus, *status))
		}
		if ownerID != nil {
			conds = append(conds, Eq(FieldOwner, *ownerID))
		}
		return conds
	})
	if err != nil {
		b.logger.Warn().
			Err(err).
			Msg("failed to build task filter, falling back to high priority")
		return fallback(ownerID)
	}
	return p
}

// Search builds the free-text predicate: title OR description contains text,
// ANDed with the owner condition. Blank text matches every task in scope.
func (b *Builder) Search(ownerID *int64, text *string) Predicate {
	if text == nil || strings.TrimSpace(*text) == "" {
		if ownerID == nil {
			return All()
		}
		return All().And(Eq(FieldOwner, *ownerID))
	}

	p, err := compose(func() []Condition {
		conds := []Condition{AnyOf(
			Contains(FieldTitle, *text),
			Contains(FieldDescription, *text),
		)}
		if ownerID != nil {
			conds = append(conds, Eq(FieldOwner, *ownerID))
		}
		return conds
	})
	if err != nil {
		// No stored title or description can contain such text.
		b.logger.Warn().
			Err(err).
			Msg("failed to build task search, matching nothing")
		return None()
	}
	return p
}

// ByIDAndOwner locates a single task only if ownerID owns it.
func ByIDAndOwner(taskID, ownerID int64) Predicate {
	return All().And(
		Eq(FieldOwner, ownerID),
		Eq(FieldID, taskID),
	)
}

func compose(build func() []Condition) (p Predicate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compose predicate: %v", r)
		}
	}()

	conds := build()
	for _, c := range conds {
		if err = c.validate(); err != nil {
			return Predicate{}, err
		}
	}
	return All().And(conds...), nil
}

func fallback(ownerID *int64) Predicate {
	p := All().And(Eq(FieldPriority, string(models.PriorityHigh)))
	if ownerID != nil {
		p = p.And(Eq(FieldOwner, *ownerID))
	}
	return p
}
