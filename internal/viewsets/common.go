package viewsets

import (
	"strconv"

	"viewset-bot/internal/repository/specification"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/viewset"
)

// parseID reads a numeric record id from a route token. Ids that do not
// parse name no record.
func parseID(id string) (uint, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func textOf(values map[string]cursor.Value, name string) string {
	v, ok := values[name]
	if !ok || v.IsNull() {
		return ""
	}
	return v.String()
}

func boolOf(values map[string]cursor.Value, name string) bool {
	b, _ := values[name].AsBool()
	return b
}

func idsOf(values map[string]cursor.Value, name string) []uint {
	var out []uint
	for _, raw := range values[name].Items() {
		if id, ok := parseID(raw); ok {
			out = append(out, id)
		}
	}
	return out
}

func refList(ids []uint) cursor.Value {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = formatID(id)
	}
	return cursor.RefList(out)
}

// page turns list options into the order and window specifications.
func page(opts viewset.ListOptions) []specification.Specification {
	order := opts.Order
	if order == "" {
		order = "id"
	}
	return []specification.Specification{
		specification.OrderBy{Field: order},
		specification.Pagination{Limit: opts.Limit, Offset: opts.Offset},
	}
}
