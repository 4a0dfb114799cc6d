package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/pricing"
)

// TestUnitPrice_VectorReferencia fija el vector de referencia del motor de
// precios: costo 25.000 CLP con margen 15% debe dar 29.412 CLP exactos.
// Si alguien cambia la fórmula (margen sobre precio, no sobre costo) o el
// redondeo CLP a entero, este test falla de inmediato.
func TestUnitPrice_VectorReferencia(t *testing.T) {
	price := pricing.UnitPrice(
		decimal.NewFromInt(25_000),
		decimal.NewFromInt(15),
		entity.CurrencyCLP,
	)
	assert.True(t, decimal.NewFromInt(29_412).Equal(price),
		"25000 CLP con margen 15%% debe dar 29412, dio %s", price)
}

// TestUnitPrice_MargenSobrePrecio verifica la definición del margen: la
// ganancia dividida por el precio de venta debe dar el porcentaje pedido
// (salvo el redondeo de la moneda).
func TestUnitPrice_MargenSobrePrecio(t *testing.T) {
	cost := decimal.NewFromFloat(100)
	margin := decimal.NewFromInt(40)

	price := pricing.UnitPrice(cost, margin, entity.CurrencyUSD)
	require.True(t, price.GreaterThan(decimal.Zero))

	got := price.Sub(cost).Div(price).Mul(decimal.NewFromInt(100))
	assert.True(t, got.Sub(margin).Abs().LessThan(decimal.NewFromFloat(0.1)),
		"(precio-costo)/precio debe aproximar el margen pedido, dio %s", got)
}

func TestUnitPrice_GuardasDevuelvenCero(t *testing.T) {
	cases := []struct {
		name   string
		cost   decimal.Decimal
		margin decimal.Decimal
	}{
		{"costo cero", decimal.Zero, decimal.NewFromInt(15)},
		{"costo negativo", decimal.NewFromInt(-100), decimal.NewFromInt(15)},
		{"margen negativo", decimal.NewFromInt(1000), decimal.NewFromInt(-5)},
		{"margen 100", decimal.NewFromInt(1000), decimal.NewFromInt(100)},
		{"margen mayor a 100", decimal.NewFromInt(1000), decimal.NewFromInt(150)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price := pricing.UnitPrice(tc.cost, tc.margin, entity.CurrencyCLP)
			assert.True(t, price.IsZero(), "el precio debe ser cero, dio %s", price)
		})
	}
}

// TestUnitPrice_MargenCeroEsCostoRedondeado verifica que margen 0 es válido:
// el precio de venta es el costo, redondeado según la moneda.
func TestUnitPrice_MargenCeroEsCostoRedondeado(t *testing.T) {
	price := pricing.UnitPrice(decimal.NewFromFloat(1234.56), decimal.Zero, entity.CurrencyCLP)
	assert.True(t, decimal.NewFromInt(1235).Equal(price),
		"en CLP el costo se redondea a entero, dio %s", price)

	priceUSD := pricing.UnitPrice(decimal.NewFromFloat(1234.567), decimal.Zero, entity.CurrencyUSD)
	assert.True(t, decimal.NewFromFloat(1234.57).Equal(priceUSD),
		"en USD se conservan dos decimales, dio %s", priceUSD)
}

func TestRoundMoney_PorMoneda(t *testing.T) {
	v := decimal.NewFromFloat(1234.567)
	assert.True(t, decimal.NewFromInt(1235).Equal(pricing.RoundMoney(v, entity.CurrencyCLP)))
	assert.True(t, decimal.NewFromFloat(1234.57).Equal(pricing.RoundMoney(v, entity.CurrencyUSD)))
}

// TestTotals_CLPEnterosYAditivos verifica que en CLP subtotal, IVA y total son
// enteros y que sub + iva == tot exacto (el total nunca se redondea aparte).
func TestTotals_CLPEnterosYAditivos(t *testing.T) {
	lines := []entity.QuoteLine{
		{Qty: decimal.NewFromInt(2), Name: "Mantención equipo", Cost: decimal.NewFromInt(25_000), Margin: decimal.NewFromInt(15)},
		{Qty: decimal.NewFromInt(3), Name: "Repuesto filtro", Cost: decimal.NewFromFloat(7_333.33), Margin: decimal.NewFromInt(20)},
	}

	tot := pricing.Totals(lines, entity.CurrencyCLP)

	assert.True(t, tot.Sub.Equal(tot.Sub.Round(0)), "el subtotal CLP debe ser entero")
	assert.True(t, tot.IVA.Equal(tot.IVA.Round(0)), "el IVA CLP debe ser entero")
	assert.True(t, tot.Tot.Equal(tot.Tot.Round(0)), "el total CLP debe ser entero")
	assert.True(t, tot.Sub.Add(tot.IVA).Equal(tot.Tot),
		"sub + iva debe ser exactamente el total: %s + %s != %s", tot.Sub, tot.IVA, tot.Tot)
}

// TestTotals_IVADiecinuevePorciento verifica la tasa fija del 19% sobre un
// caso sin restos de redondeo.
func TestTotals_IVADiecinuevePorciento(t *testing.T) {
	lines := []entity.QuoteLine{
		{Qty: decimal.NewFromInt(1), Name: "Servicio", Cost: decimal.NewFromInt(50_000), Margin: decimal.Zero},
	}
	tot := pricing.Totals(lines, entity.CurrencyCLP)
	assert.True(t, decimal.NewFromInt(50_000).Equal(tot.Sub))
	assert.True(t, decimal.NewFromInt(9_500).Equal(tot.IVA))
	assert.True(t, decimal.NewFromInt(59_500).Equal(tot.Tot))
}

// TestTotals_ExcluyeLineasInvalidas verifica que líneas sin descripción o con
// cantidad no positiva no participan de los totales.
func TestTotals_ExcluyeLineasInvalidas(t *testing.T) {
	lines := []entity.QuoteLine{
		{Qty: decimal.NewFromInt(1), Name: "Válida", Cost: decimal.NewFromInt(10_000), Margin: decimal.Zero},
		{Qty: decimal.NewFromInt(5), Name: "   ", Cost: decimal.NewFromInt(99_999), Margin: decimal.Zero},
		{Qty: decimal.Zero, Name: "Cantidad cero", Cost: decimal.NewFromInt(99_999), Margin: decimal.Zero},
		{Qty: decimal.NewFromInt(-1), Name: "Cantidad negativa", Cost: decimal.NewFromInt(99_999), Margin: decimal.Zero},
	}
	tot := pricing.Totals(lines, entity.CurrencyCLP)
	assert.True(t, decimal.NewFromInt(10_000).Equal(tot.Sub),
		"solo la línea válida debe sumar, dio %s", tot.Sub)
}

func TestTotals_SinLineasEsCero(t *testing.T) {
	tot := pricing.Totals(nil, entity.CurrencyCLP)
	assert.True(t, tot.Sub.IsZero())
	assert.True(t, tot.IVA.IsZero())
	assert.True(t, tot.Tot.IsZero())
}

// TestFilterLines_DerivaPrecios verifica que cada línea válida sale con
// UnitPrice y Total resueltos bajo la moneda.
func TestFilterLines_DerivaPrecios(t *testing.T) {
	lines := pricing.FilterLines([]entity.QuoteLine{
		{Qty: decimal.NewFromInt(2), Name: "  Mantención  ", Cost: decimal.NewFromInt(25_000), Margin: decimal.NewFromInt(15)},
	}, entity.CurrencyCLP)

	require.Len(t, lines, 1)
	assert.Equal(t, "Mantención", lines[0].Name, "la descripción sale sin espacios laterales")
	assert.True(t, decimal.NewFromInt(29_412).Equal(lines[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(58_824).Equal(lines[0].Total))
}

func TestParseDecimal_ToleranciaDeLocale(t *testing.T) {
	cases := []struct {
		in   string
		want decimal.Decimal
	}{
		{"1234.5", decimal.NewFromFloat(1234.5)},
		{"1234,5", decimal.NewFromFloat(1234.5)},
		{"  25000 ", decimal.NewFromInt(25_000)},
		{"", decimal.Zero},
		{"abc", decimal.Zero},
		{"12a34", decimal.Zero},
	}
	for _, tc := range cases {
		got := pricing.ParseDecimal(tc.in)
		assert.True(t, tc.want.Equal(got), "ParseDecimal(%q) debe dar %s, dio %s", tc.in, tc.want, got)
	}
}
