// Серверная модель пользователя, частичного обновления, фильтров и связей
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User — запись пользователя в хранилище.
//
// PasswordHash содержит только хэш, сырой пароль не хранится никогда.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch — частичное обновление пользователя.
//
// nil-поля не изменяются. Password приходит от клиента в открытом виде,
// сервис превращает его в PasswordHash до передачи в хранилище.
type UserPatch struct {
	Name         *string
	Email        *string
	Password     *string
	PasswordHash *string
}

// Empty сообщает, что в патче нет ни одного поля для записи.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil
}

// Relations — набор связей, которые нужно подгрузить вместе с пользователем.
// Сейчас связей у пользователя нет, набор передаётся в хранилище как есть.
type Relations []string

// ParseRelations разбивает строку "a,b,a" в набор без повторов и пустых элементов.
func ParseRelations(spec string) Relations {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out Relations
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

// Op — оператор сравнения в фильтре списка.
type Op string

const (
	OpEq      Op = "eq"
	OpNot     Op = "not"
	OpLt      Op = "lt"
	OpLte     Op = "lte"
	OpGt      Op = "gt"
	OpGte     Op = "gte"
	OpBetween Op = "between"
	OpIn      Op = "in"
	OpLike    Op = "like"
	OpILike   Op = "ilike"
)

// Valid сообщает, известен ли оператор.
func (o Op) Valid() bool {
	switch o {
	case OpEq, OpNot, OpLt, OpLte, OpGt, OpGte, OpBetween, OpIn, OpLike, OpILike:
		return true
	}
	return false
}

// Predicate — одно условие фильтра: поле, оператор и значения.
// Для between значений ровно два, для in — одно и больше, для остальных — одно.
type Predicate struct {
	Field  string
	Op     Op
	Values []string
}

// Filter — набор условий, объединяемых через AND.
type Filter []Predicate
