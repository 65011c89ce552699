package api

import (
	"net/url"
	"sort"
	"strings"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/models"
)

// RelationsKey — зарезервированный query-параметр со списком связей.
const RelationsKey = "relations"

// ParseFilter собирает фильтр списка из query-параметров.
//
// Формат: field[op]=value, просто field=value означает eq.
// Для in и between значения перечисляются через запятую.
// Какие поля и операторы реально применимы, решает хранилище,
// здесь отбрасываются только пустые значения и неизвестные операторы.
func ParseFilter(q url.Values) models.Filter {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var filter models.Filter
	for _, key := range keys {
		field, op, ok := parseFilterKey(key)
		if !ok || field == RelationsKey {
			continue
		}

		for _, raw := range q[key] {
			values := []string{raw}
			if op == models.OpIn || op == models.OpBetween {
				values = splitValues(raw)
			}
			if len(values) == 0 || values[0] == "" {
				continue
			}
			filter = append(filter, models.Predicate{Field: field, Op: op, Values: values})
		}
	}
	return filter
}

// parseFilterKey разбирает "name[ilike]" в ("name", ilike).
func parseFilterKey(key string) (string, models.Op, bool) {
	field, rest, found := strings.Cut(key, "[")
	if field == "" {
		return "", "", false
	}
	if !found {
		return field, models.OpEq, true
	}
	opStr, ok := strings.CutSuffix(rest, "]")
	if !ok {
		return "", "", false
	}
	op := models.Op(strings.ToLower(opStr))
	if !op.Valid() {
		return "", "", false
	}
	return field, op, true
}

func splitValues(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
