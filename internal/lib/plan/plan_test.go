package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitsFor(t *testing.T) {
	tests := []struct {
		name      string
		plan      Plan
		wantLimit int
		unlimited bool
	}{
		{"free план", Free, 2, false},
		{"basic план", Basic, 5, false},
		{"standard план", Standard, 15, false},
		{"premium план без лимита", Premium, 0, true},
		{"неизвестный план строже free", Plan("gold"), 0, false},
		{"пустой план строже free", Plan(""), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LimitsFor(tt.plan)
			assert.Equal(t, tt.unlimited, l.Unlimited)
			if !tt.unlimited {
				assert.Equal(t, tt.wantLimit, l.DownloadLimit)
			}
		})
	}
}

func TestCanDownload(t *testing.T) {
	tests := []struct {
		name          string
		plan          Plan
		count         int
		wantAllowed   bool
		wantRemaining int
	}{
		{"free на границе лимита", Free, 2, false, 0},
		{"free под лимитом", Free, 1, true, 1},
		{"basic под лимитом", Basic, 4, true, 1},
		{"basic на лимите", Basic, 5, false, 0},
		{"standard выше лимита", Standard, 20, false, 0},
		{"premium всегда разрешён", Premium, 1000000, true, -1},
		{"неизвестный план запрещён сразу", Plan("vip"), 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CanDownload(tt.plan, tt.count)
			assert.Equal(t, tt.wantAllowed, e.Allowed)
			assert.Equal(t, tt.wantRemaining, e.Remaining)
		})
	}
}

func TestPriceFor(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		plan  Plan
		want  float64
	}{
		{"free без скидки", 199, Free, 199},
		{"basic скидка 75%", 199, Basic, 49.75},
		{"standard скидка 50%", 199, Standard, 99.5},
		{"premium бесплатно", 199, Premium, 0},
		{"неизвестный план платит полную цену", 249, Plan("gold"), 249},
		{"округление до двух знаков", 179.99, Basic, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PriceFor(tt.price, tt.plan), 0.001)
		})
	}
}

// Цена со скидкой всегда в границах [0, полная цена], premium всегда 0.
func TestPriceForBounds(t *testing.T) {
	prices := []float64{0, 1, 149, 179.99, 299, 9999.99}
	plans := []Plan{Free, Basic, Standard, Premium, Plan("unknown")}

	for _, price := range prices {
		for _, p := range plans {
			got := PriceFor(price, p)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, price)
			if p == Premium {
				assert.Zero(t, got)
			}
		}
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, Premium, Parse("PREMIUM"))
	assert.Equal(t, Basic, Parse("Basic"))
	assert.False(t, Known(Parse("gold")))
	assert.True(t, Known(Parse("standard")))
}
