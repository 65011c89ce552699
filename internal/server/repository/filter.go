package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-user-accounts/internal/server/models"
)

// fieldKind — тип колонки, от него зависят допустимые операторы и проверка значений.
type fieldKind int

const (
	kindUUID fieldKind = iota
	kindText
	kindTime
)

type filterField struct {
	column string
	kind   fieldKind
}

// filterFields — поля, по которым разрешено фильтровать список.
var filterFields = map[string]filterField{
	"id":        {column: "id", kind: kindUUID},
	"name":      {column: "name", kind: kindText},
	"email":     {column: "email", kind: kindText},
	"createdAt": {column: `"createdAt"`, kind: kindTime},
	"updatedAt": {column: `"updatedAt"`, kind: kindTime},
}

var compareOps = map[models.Op]string{
	models.OpEq:    "=",
	models.OpNot:   "<>",
	models.OpLt:    "<",
	models.OpLte:   "<=",
	models.OpGt:    ">",
	models.OpGte:   ">=",
	models.OpLike:  "LIKE",
	models.OpILike: "ILIKE",
}

// buildWhere превращает фильтр в " WHERE ..." и список аргументов.
// Значения всегда передаются как $n параметры.
// Неизвестные поля, операторы и кривые условия пропускаются.
func buildWhere(filter models.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	placeholder := func(v string) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	for _, p := range filter {
		f, ok := filterFields[p.Field]
		if !ok || !p.Op.Valid() || !valuesValid(f.kind, p.Values) {
			continue
		}

		switch p.Op {
		case models.OpBetween:
			if len(p.Values) != 2 {
				continue
			}
			conds = append(conds, f.column+" BETWEEN "+placeholder(p.Values[0])+" AND "+placeholder(p.Values[1]))

		case models.OpIn:
			if len(p.Values) == 0 {
				continue
			}
			ph := make([]string, 0, len(p.Values))
			for _, v := range p.Values {
				ph = append(ph, placeholder(v))
			}
			conds = append(conds, f.column+" IN ("+strings.Join(ph, ",")+")")

		case models.OpLike, models.OpILike:
			if f.kind != kindText || len(p.Values) != 1 {
				continue
			}
			conds = append(conds, f.column+" "+compareOps[p.Op]+" "+placeholder(p.Values[0]))

		default:
			if len(p.Values) != 1 {
				continue
			}
			conds = append(conds, f.column+" "+compareOps[p.Op]+" "+placeholder(p.Values[0]))
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// valuesValid отсекает значения, которые postgres всё равно не примет
// для колонки этого типа (чтобы не получить 500 на кривой uuid или дате).
func valuesValid(kind fieldKind, values []string) bool {
	for _, v := range values {
		switch kind {
		case kindUUID:
			if _, err := uuid.Parse(v); err != nil {
				return false
			}
		case kindTime:
			if !validTime(v) {
				return false
			}
		}
	}
	return true
}

func validTime(v string) bool {
	for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
