// Package format rewrites dependency lists of a parsed BUCK file into
// canonical order.
//
// Назначение: найти массивы под свойствами `deps` (или другими ключевыми
// словами) на любой глубине и переставить их элементы по CompareDeps.
// Не делает: IO, разбор файла, печать дерева целиком.
// Зависимости: internal/syntax, internal/token.
package format
