package sql

import (
	"strings"

	"github.com/gigabytetmn/freeradius-server/pkg/radius"
)

// Escape sanitizes an attribute value for interpolation into a SQL string
// literal. Single quotes are doubled per the SQL standard and NUL bytes are
// stripped entirely.
func Escape(req *radius.Request, value string, ctx any) string {
	value = strings.ReplaceAll(value, "\x00", "")
	return strings.ReplaceAll(value, "'", "''")
}
