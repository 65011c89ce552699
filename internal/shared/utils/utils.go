// Утилитарные функции общего назначения
package utils

// Ptr возвращает указатель на копию v.
func Ptr[T any](v T) *T {
	return &v
}

// PtrIfSet возвращает указатель на v только если флаг был задан.
// Используется для сборки частичных обновлений из флагов CLI.
func PtrIfSet[T any](v T, set bool) *T {
	if !set {
		return nil
	}
	return &v
}
