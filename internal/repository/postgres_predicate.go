package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adanyl0v/go-task-tracker/internal/query"
)

var taskColumns = map[query.Field]string{
	query.FieldID:          "id",
	query.FieldOwner:       "assigned_user_id",
	query.FieldTitle:       "title",
	query.FieldDescription: "description",
	query.FieldPriority:    "priority",
	query.FieldStatus:      "status",
}

// whereClause renders pred as a SQL boolean expression. Placeholders
// continue numbering after the arguments already in args.
func whereClause(pred query.Predicate, args []any) (string, []any, error) {
	if pred.IsNone() {
		return "FALSE", args, nil
	}

	conds := pred.Conditions()
	if len(conds) == 0 {
		return "TRUE", args, nil
	}

	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		var (
			part string
			err  error
		)
		part, args, err = conditionSQL(c, args)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " AND "), args, nil
}

func conditionSQL(c query.Condition, args []any) (string, []any, error) {
	if c.Or != nil {
		parts := make([]string, 0, len(c.Or))
		for _, alt := range c.Or {
			var (
				part string
				err  error
			)
			part, args, err = conditionSQL(alt, args)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, part)
		}
		return "(" + strings.Join(parts, " OR ") + ")", args, nil
	}

	column, ok := taskColumns[c.Field]
	if !ok {
		return "", nil, fmt.Errorf("no column for field %q", c.Field)
	}

	args = append(args, c.Value)
	placeholder := "$" + strconv.Itoa(len(args))
	switch c.Op {
	case query.OpEq:
		return column + " = " + placeholder, args, nil
	case query.OpContains:
		// Literal and case-sensitive: % and _ are not wildcards here.
		return "strpos(" + column + ", " + placeholder + ") > 0", args, nil
	}
	return "", nil, fmt.Errorf("unsupported operator %d", c.Op)
}
