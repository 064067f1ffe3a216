package models

import "time"

// ListEvent описывает изменение пользовательского списка.
// Публикуется в брокер для конвейера аналитики.
type ListEvent struct {
	Username string    `json:"username"`
	List     ListName  `json:"list"`
	Item     string    `json:"item"`
	Action   string    `json:"action"` // added или removed
	At       time.Time `json:"at"`
}
