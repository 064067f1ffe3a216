package models

// ListName определяет один из пользовательских списков заведений.
type ListName string

const (
	// ListFavorites — список избранных заведений.
	ListFavorites ListName = "favorites"
	// ListVisitLater — список заведений "посетить позже".
	ListVisitLater ListName = "visit_later"
)

// Valid сообщает, относится ли имя к известному списку.
func (l ListName) Valid() bool {
	return l == ListFavorites || l == ListVisitLater
}

// Column возвращает имя колонки таблицы users для списка.
// Используется при построении запросов, значения ограничены константами.
func (l ListName) Column() string {
	return string(l)
}

// JSONKey возвращает ключ, под которым список отдается клиенту.
func (l ListName) JSONKey() string {
	return string(l)
}

// Label возвращает человекочитаемое имя списка для сообщений клиенту.
func (l ListName) Label() string {
	if l == ListVisitLater {
		return "Visit Later"
	}
	return "favorites"
}
