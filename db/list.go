package db

import (
	"fmt"
	"strings"

	"github.com/vox-platform/vox-auth-services/models"
)

// orderClause builds a deterministic ORDER BY for a validated list request.
// The column map translates API order keys to SQL columns; the tiebreak
// column keeps pagination stable when the order column has duplicates.
func orderClause(p models.ListParams, columnMap map[string]string, defaultKey, tiebreak string) string {
	col, ok := columnMap[p.Order]
	if !ok {
		col = columnMap[defaultKey]
	}
	dir := "ASC"
	if strings.EqualFold(p.Direction, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s ASC", col, dir, tiebreak)
}

func limitClause(p models.ListParams) string {
	clause := ""
	if p.Limit >= 0 {
		clause += fmt.Sprintf(" LIMIT %d", p.Limit)
	}
	if p.Offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", p.Offset)
	}
	return clause
}

func searchPattern(search string) string {
	return "%" + search + "%"
}
