// Package razorpay содержит клиент платёжного провайдера Razorpay:
// создание заказов через его API и криптографическую проверку подписи
// колбэка об успешной оплате.
package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature проверяет подпись платёжного колбэка Razorpay.
//
// Ожидаемая подпись — HMAC-SHA256 от строки "orderID|paymentID" на секретном
// ключе, в hex-кодировке. Сравнение через hmac.Equal, чтобы не зависеть
// от времени сравнения. Функция чистая, в сеть не ходит.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
