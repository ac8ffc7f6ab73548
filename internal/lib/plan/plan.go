// Package plan описывает тарифные планы маркетплейса: квоты на скачивание
// PDF и скидки на разовые покупки. Все функции чистые и не возвращают
// ошибок: неизвестное имя плана деградирует к самой строгой политике
// (нулевая квота, без скидки), а не к отказу.
package plan

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Plan — закрытый тип тарифного плана.
type Plan string

const (
	Free     Plan = "free"
	Basic    Plan = "basic"
	Standard Plan = "standard"
	Premium  Plan = "premium"
)

// Parse приводит произвольную строку к Plan. Регистр не учитывается.
// Неизвестные значения возвращаются как есть: каталог сам выдаст для них
// самую строгую политику.
func Parse(s string) Plan {
	switch p := Plan(strings.ToLower(s)); p {
	case Free, Basic, Standard, Premium:
		return p
	default:
		return Plan(strings.ToLower(s))
	}
}

// Known сообщает, входит ли план в закрытый список тарифов.
func Known(p Plan) bool {
	switch p {
	case Free, Basic, Standard, Premium:
		return true
	}
	return false
}

// Limits описывает политику плана: месячная квота скачиваний и доля скидки
// на разовую покупку PDF. Для безлимитного плана Unlimited = true,
// значение DownloadLimit при этом не используется.
type Limits struct {
	DownloadLimit int
	Discount      decimal.Decimal
	Unlimited     bool
}

// catalog — статическая таблица тарифов. Premium скачивает без ограничений
// и получает PDF бесплатно.
var catalog = map[Plan]Limits{
	Free:     {DownloadLimit: 2, Discount: decimal.Zero},
	Basic:    {DownloadLimit: 5, Discount: decimal.NewFromFloat(0.75)},
	Standard: {DownloadLimit: 15, Discount: decimal.NewFromFloat(0.5)},
	Premium:  {Unlimited: true, Discount: decimal.NewFromInt(1)},
}

// fallback — политика для неизвестного плана. Квота нулевая: это строже,
// чем у free, поведение унаследовано от исходной системы намеренно.
var fallback = Limits{DownloadLimit: 0, Discount: decimal.Zero}

// LimitsFor возвращает политику плана. Никогда не завершается ошибкой:
// для неизвестного плана возвращается fallback.
func LimitsFor(p Plan) Limits {
	if l, ok := catalog[p]; ok {
		return l
	}
	return fallback
}

// Entitlement — результат проверки права на скачивание.
type Entitlement struct {
	Allowed   bool
	Remaining int
	Limit     int
	Unlimited bool
}

// CanDownload решает, разрешено ли пользователю очередное скачивание
// при данном плане и текущем счётчике. Побочных эффектов нет: инкремент
// счётчика — забота вызывающего.
func CanDownload(p Plan, downloadCount int) Entitlement {
	limits := LimitsFor(p)
	if limits.Unlimited {
		return Entitlement{Allowed: true, Remaining: -1, Limit: -1, Unlimited: true}
	}
	remaining := limits.DownloadLimit - downloadCount
	if remaining < 0 {
		remaining = 0
	}
	return Entitlement{
		Allowed:   downloadCount < limits.DownloadLimit,
		Remaining: remaining,
		Limit:     limits.DownloadLimit,
	}
}

// PriceFor вычисляет цену разовой покупки PDF для плана:
// price * (1 - скидка), округлённую до двух знаков. Для premium всегда 0.
func PriceFor(price float64, p Plan) float64 {
	limits := LimitsFor(p)
	full := decimal.NewFromFloat(price)
	discounted := full.Mul(decimal.NewFromInt(1).Sub(limits.Discount))
	result, _ := discounted.Round(2).Float64()
	return result
}

// Features возвращает маркетинговое описание плана для админ-консоли.
func Features(p Plan) []string {
	switch p {
	case Basic:
		return []string{"Access to 5 PDFs", "Basic Support", "Free Updates"}
	case Standard:
		return []string{"Access to 15 PDFs", "Priority Support", "Download Option"}
	case Premium:
		return []string{"Unlimited PDFs", "24/7 Support", "Early Access"}
	default:
		return []string{}
	}
}
