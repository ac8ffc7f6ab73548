package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Для любой тройки orderID/paymentID/secret собственная подпись проходит проверку.
func TestVerifySignature_RoundTrip(t *testing.T) {
	triples := []struct{ orderID, paymentID, secret string }{
		{"order_ABC123", "pay_XYZ789", "key_secret"},
		{"", "", "empty-ids"},
		{"order_1", "pay_1", ""},
		{"заказ", "платёж", "ключ"},
	}
	for _, tr := range triples {
		assert.True(t, VerifySignature(tr.orderID, tr.paymentID,
			sign(tr.orderID, tr.paymentID, tr.secret), tr.secret))
	}
}

func TestVerifySignature_Mismatch(t *testing.T) {
	valid := sign("order_ABC", "pay_XYZ", "secret")

	tests := []struct {
		name      string
		signature string
	}{
		{"пустая подпись", ""},
		{"усечённая подпись", valid[:len(valid)-2]},
		{"мутация одного символа", flipLastByte(valid)},
		{"случайная строка", "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"},
		{"подпись с лишним хвостом", valid + "00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifySignature("order_ABC", "pay_XYZ", tt.signature, "secret"))
		})
	}

	// чужой секрет и подмена идентификаторов
	assert.False(t, VerifySignature("order_ABC", "pay_XYZ", valid, "other-secret"))
	assert.False(t, VerifySignature("order_DEF", "pay_XYZ", valid, "secret"))
	assert.False(t, VerifySignature("order_ABC", "pay_QRS", valid, "secret"))
}

func flipLastByte(s string) string {
	b := []byte(s)
	if b[len(b)-1] == 'a' {
		b[len(b)-1] = 'b'
	} else {
		b[len(b)-1] = 'a'
	}
	return string(b)
}
