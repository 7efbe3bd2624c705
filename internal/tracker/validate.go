package tracker

import (
	"fmt"
	"strings"

	"github.com/Attila01/DebtTracker/internal/apperr"
	"github.com/Attila01/DebtTracker/internal/schema"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateRow checks user-entered fields against the registry descriptors
// before anything reaches the store. On create, required fields must be
// present; on update, only the supplied fields are checked.
func validateRow(table schema.Table, row schema.Row, create bool) error {
	for _, f := range table.Fields {
		if f.Derived {
			// derived columns are owned by the recalculator; a supplied
			// value is tolerated and will be overwritten on next recompute
			continue
		}
		v, supplied := row[f.Name]
		if !supplied || v == nil {
			if create && f.Required {
				return apperr.New(apperr.KindValidation, f.Name+" is required")
			}
			continue
		}
		if err := validate.Var(v, fieldRule(f)); err != nil {
			return apperr.Wrap(apperr.KindValidation,
				fmt.Sprintf("%s has an invalid value", f.Name), err)
		}
	}
	return nil
}

// fieldRule translates a tagged field descriptor into validator constraints:
// the same registry that drives grid columns also drives input checking.
// Presence is enforced by validateRow, so the rules only constrain shape.
func fieldRule(f schema.Field) string {
	rules := []string{"omitempty"}
	switch f.Kind {
	case schema.Text:
		rules = append(rules, "max=255")
	case schema.Enum:
		opts := make([]string, len(f.Options))
		for i, o := range f.Options {
			opts[i] = "'" + o + "'"
		}
		rules = append(rules, "max=50", "oneof="+strings.Join(opts, " "))
	case schema.Decimal:
		rules = append(rules, "gte=0")
	case schema.Integer:
		rules = append(rules, "gte=0")
	case schema.Date:
		rules = append(rules, "datetime=2006-01-02")
	}
	return strings.Join(rules, ",")
}
