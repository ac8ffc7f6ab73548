// Package models содержит доменные структуры маркетплейса PDF-документов:
// пользователей, подписки, товары, покупки и карточки клиентов для админки.
package models

import "time"

// User представляет зарегистрированного пользователя витрины.
//
// Поля Plan, PlanExpiry и PdfDownloadCount изменяются только сервисом
// подписок и учётом скачиваний, обычные обработчики их не трогают.
type User struct {
	UID              string     // Уникальный идентификатор пользователя
	Name             string     // Имя пользователя
	Email            string     // Электронная почта (уникальная)
	Phone            string     // Телефон (опционально)
	Address          string     // Адрес (опционально)
	PasswordHash     string     // bcrypt-хэш пароля
	Role             string     // Роль: user или admin
	Plan             string     // Текущий тарифный план: free, basic, standard, premium
	PlanExpiry       *time.Time // Дата окончания действия плана, nil для free
	PdfDownloadCount int        // Счётчик скачиваний PDF в рамках текущего плана
	CreatedAt        time.Time
}
