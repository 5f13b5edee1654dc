package persistence

import (
	"fmt"
	"strings"

	"github.com/eventhub/eventhub/internal/domain"
)

const recordColumns = "entity_id, fields, status, created_by, updated_by, created_at, updated_at"

// likeEscaper escapes ILIKE wildcards so search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// recordQuery accumulates positional arguments for one statement.
type recordQuery struct {
	args []interface{}
}

func (q *recordQuery) arg(v interface{}) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// where renders the filter for one resource. Field names are always bound
// as parameters, never spliced into the SQL text.
func (q *recordQuery) where(resource string, filter domain.Filter) string {
	conditions := []string{"resource = " + q.arg(resource)}

	if filter.ID != nil {
		conditions = append(conditions, "entity_id = "+q.arg(*filter.ID))
	}

	if filter.Status != nil {
		conditions = append(conditions, "status = "+q.arg(*filter.Status))
	}

	if filter.CreatedBy != nil {
		conditions = append(conditions, "created_by = "+q.arg(*filter.CreatedBy))
	}

	for _, key := range filter.EqualKeys() {
		conditions = append(conditions, fmt.Sprintf("fields->>(%s::text) = %s",
			q.arg(key), q.arg(domain.ScalarString(filter.Equals[key]))))
	}

	if filter.Search != nil && len(filter.Search.Fields) > 0 {
		term := q.arg("%" + likeEscaper.Replace(filter.Search.Term) + "%")
		var matches []string
		for _, field := range filter.Search.Fields {
			matches = append(matches, fmt.Sprintf("fields->>(%s::text) ILIKE %s", q.arg(field), term))
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
	}

	return strings.Join(conditions, " AND ")
}

// orderBy renders the sort with entity_id as tie breaker.
func (q *recordQuery) orderBy(sort domain.Sort) string {
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}

	var column string
	switch sort.Field {
	case domain.SortCreatedAt, "":
		column = "created_at"
	case domain.SortUpdatedAt:
		column = "updated_at"
	case domain.SortID:
		return "entity_id " + dir
	default:
		column = fmt.Sprintf("fields->(%s::text)", q.arg(sort.Field))
	}
	return fmt.Sprintf("%s %s, entity_id %s", column, dir, dir)
}

// firstMatch selects the lowest entity id matching the filter, used as the
// target of single-row writes.
func (q *recordQuery) firstMatch(resource string, filter domain.Filter) string {
	return fmt.Sprintf(
		"entity_id = (SELECT entity_id FROM resource_records WHERE %s ORDER BY entity_id LIMIT 1)",
		q.where(resource, filter),
	)
}

func buildFindMany(resource string, filter domain.Filter, sort domain.Sort, skip, limit int) (string, []interface{}) {
	q := &recordQuery{}
	query := fmt.Sprintf("SELECT %s FROM resource_records WHERE %s ORDER BY %s",
		recordColumns, q.where(resource, filter), q.orderBy(sort))

	if limit > 0 {
		query += " LIMIT " + q.arg(limit)
	}
	if skip > 0 {
		query += " OFFSET " + q.arg(skip)
	}
	return query, q.args
}

func buildCount(resource string, filter domain.Filter) (string, []interface{}) {
	q := &recordQuery{}
	query := "SELECT COUNT(*) FROM resource_records WHERE " + q.where(resource, filter)
	return query, q.args
}

func buildUpdate(resource string, filter domain.Filter, fieldsJSON []byte, patch domain.Patch) (string, []interface{}) {
	q := &recordQuery{}
	set := fmt.Sprintf(
		"fields = fields || %s::jsonb, status = COALESCE(%s, status), updated_by = COALESCE(%s, updated_by), updated_at = %s",
		q.arg(string(fieldsJSON)), q.arg(patch.Status), q.arg(patch.UpdatedBy), q.arg(patch.UpdatedAt),
	)
	query := fmt.Sprintf("UPDATE resource_records SET %s WHERE resource = %s AND %s RETURNING %s",
		set, q.arg(resource), q.firstMatch(resource, filter), recordColumns)
	return query, q.args
}

func buildDelete(resource string, filter domain.Filter) (string, []interface{}) {
	q := &recordQuery{}
	query := fmt.Sprintf("DELETE FROM resource_records WHERE resource = %s AND %s RETURNING %s",
		q.arg(resource), q.firstMatch(resource, filter), recordColumns)
	return query, q.args
}

func buildIncrement(resource string, filter domain.Filter, field string, delta int64, patch domain.Patch) (string, []interface{}) {
	q := &recordQuery{}
	key := q.arg(field)
	set := fmt.Sprintf(
		"fields = jsonb_set(fields, ARRAY[%[1]s::text], to_jsonb(GREATEST(0, COALESCE((fields->>(%[1]s::text))::bigint, 0) + %[2]s::bigint)), true), updated_at = %[3]s",
		key, q.arg(delta), q.arg(patch.UpdatedAt),
	)
	query := fmt.Sprintf("UPDATE resource_records SET %s WHERE resource = %s AND %s RETURNING %s",
		set, q.arg(resource), q.firstMatch(resource, filter), recordColumns)
	return query, q.args
}

func buildUniqueCheck(resource, field string, value interface{}, excludeID *int64) (string, []interface{}) {
	q := &recordQuery{}
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM resource_records WHERE resource = %s AND lower(fields->>(%s::text)) = lower(%s)",
		q.arg(resource), q.arg(field), q.arg(domain.ScalarString(value)),
	)
	if excludeID != nil {
		query += " AND entity_id <> " + q.arg(*excludeID)
	}
	return query + ")", q.args
}
