package cart

import (
	"testing"

	"fresh-kart/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testProduct(id, name, price, minQty string) model.Product {
	return model.Product{
		ID:          id,
		Name:        name,
		Price:       dec(price),
		MinQuantity: dec(minQty),
		InStock:     true,
	}
}

func TestCart_AddItem_ClampsAndSnaps(t *testing.T) {
	tests := []struct {
		name      string
		minQty    string
		requested string
		expected  string
	}{
		{"Below minimum is raised", "1", "0.5", "1"},
		{"Exact minimum kept", "0.5", "0.5", "0.5"},
		{"Valid quantity kept", "1", "2.5", "2.5"},
		{"Off-step snapped up", "0.5", "1.2", "1.5"},
		{"Zero raised to minimum", "2", "0", "2"},
		{"Negative raised to minimum", "0.5", "-3", "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.AddItem(testProduct("P001", "Potato", "45", tt.minQty), dec(tt.requested))

			line, ok := c.Line("P001")
			require.True(t, ok)
			assert.True(t, line.Quantity.Equal(dec(tt.expected)),
				"expected %s, got %s", tt.expected, line.Quantity)
			// Resulting quantity is always on the 0.5 grid and above the floor.
			assert.True(t, line.Quantity.Mod(dec("0.5")).IsZero())
			assert.True(t, line.Quantity.GreaterThanOrEqual(dec(tt.minQty)))
		})
	}
}

func TestCart_AddItem_ExistingProductIsNoOp(t *testing.T) {
	c := New()
	potato := testProduct("P001", "Potato", "45", "1")

	c.AddItem(potato, dec("2"))
	c.AddItem(potato, dec("5"))

	require.Equal(t, 1, c.Len())
	line, _ := c.Line("P001")
	assert.True(t, line.Quantity.Equal(dec("2")))
}

func TestCart_SetQuantity_ClampsToMinimum(t *testing.T) {
	c := New()
	c.AddItem(testProduct("P001", "Potato", "45", "1"), dec("2"))

	c.SetQuantity("P001", dec("0.5"))

	line, _ := c.Line("P001")
	assert.True(t, line.Quantity.Equal(dec("1")), "quantity below minimum must clamp")

	// Clamping an already-valid quantity is a no-op.
	c.SetQuantity("P001", dec("1"))
	line, _ = c.Line("P001")
	assert.True(t, line.Quantity.Equal(dec("1")))
}

func TestCart_SetQuantity_RoundsToStep(t *testing.T) {
	c := New()
	c.AddItem(testProduct("P001", "Apples", "120", "0.5"), dec("0.5"))

	c.SetQuantity("P001", dec("1.3"))
	line, _ := c.Line("P001")
	assert.True(t, line.Quantity.Equal(dec("1.5")))

	c.SetQuantity("P001", dec("1.7"))
	line, _ = c.Line("P001")
	assert.True(t, line.Quantity.Equal(dec("1.5")))
}

func TestCart_SetQuantity_UnknownProductIsNoOp(t *testing.T) {
	c := New()
	c.SetQuantity("missing", dec("3"))
	assert.Equal(t, 0, c.Len())
}

func TestCart_RepeatedHalfStepAdjustmentsStayExact(t *testing.T) {
	c := New()
	c.AddItem(testProduct("P001", "Carrots", "60", "0.5"), dec("0.5"))

	// 100 increments then 100 decrements must return to exactly 0.5.
	q := dec("0.5")
	for i := 0; i < 100; i++ {
		q = q.Add(dec("0.5"))
		c.SetQuantity("P001", q)
	}
	for i := 0; i < 100; i++ {
		q = q.Sub(dec("0.5"))
		c.SetQuantity("P001", q)
	}

	line, _ := c.Line("P001")
	assert.True(t, line.Quantity.Equal(dec("0.5")),
		"expected 0.5, got %s", line.Quantity)
}

func TestCart_RemoveItem(t *testing.T) {
	c := New()
	c.AddItem(testProduct("P001", "Potato", "45", "1"), dec("1"))
	c.AddItem(testProduct("P002", "Onions", "35", "0.5"), dec("1"))

	c.RemoveItem("P001")
	assert.Equal(t, 1, c.Len())
	_, ok := c.Line("P001")
	assert.False(t, ok)

	// Removing an absent line is idempotent.
	c.RemoveItem("P001")
	assert.Equal(t, 1, c.Len())
}

func TestCart_TotalPrice(t *testing.T) {
	c := New()
	assert.True(t, c.TotalPrice().IsZero(), "empty cart totals zero")

	c.AddItem(testProduct("P001", "Potato", "45", "1"), dec("2"))
	c.AddItem(testProduct("P002", "Apples", "120", "0.5"), dec("1.5"))

	// 2 * 45 + 1.5 * 120 = 270
	assert.True(t, c.TotalPrice().Equal(dec("270")),
		"expected 270, got %s", c.TotalPrice())
}

func TestCart_AddThenRemoveRestoresTotal(t *testing.T) {
	c := New()
	c.AddItem(testProduct("P001", "Potato", "45", "1"), dec("2"))
	before := c.TotalPrice()

	c.AddItem(testProduct("P002", "Apples", "120", "0.5"), dec("1"))
	c.RemoveItem("P002")

	assert.True(t, c.TotalPrice().Equal(before))
}

func TestCart_PriceSnapshotSurvivesCatalogueChange(t *testing.T) {
	c := New()
	potato := testProduct("P001", "Potato", "45", "1")
	c.AddItem(potato, dec("2"))

	// A later catalogue price change must not affect the captured line price.
	potato.Price = dec("99")

	line, _ := c.Line("P001")
	assert.True(t, line.Price.Equal(dec("45")))
	assert.True(t, c.TotalPrice().Equal(dec("90")))
}

func TestCart_ToOrderItems_PreservesInsertionOrder(t *testing.T) {
	c := New()
	c.AddItem(testProduct("P002", "Onions", "35", "0.5"), dec("1"))
	c.AddItem(testProduct("P001", "Potato", "45", "1"), dec("2"))
	c.AddItem(testProduct("P003", "Apples", "120", "0.5"), dec("0.5"))

	items := c.ToOrderItems()
	require.Len(t, items, 3)
	assert.Equal(t, "P002", items[0].ProductID)
	assert.Equal(t, "P001", items[1].ProductID)
	assert.Equal(t, "P003", items[2].ProductID)
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.AddItem(testProduct("P001", "Potato", "45", "1"), dec("1"))
	c.AddItem(testProduct("P002", "Onions", "35", "0.5"), dec("1"))

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.TotalPrice().IsZero())
	assert.Empty(t, c.ToOrderItems())
}

func TestCart_PotatoScenario(t *testing.T) {
	// Potato at 45 per kg, minimum 1 kg: add, then two half-kilo increments.
	c := New()
	c.AddItem(testProduct("P001", "Potato", "45", "1"), dec("1"))

	line, _ := c.Line("P001")
	c.SetQuantity("P001", line.Quantity.Add(dec("0.5")))
	line, _ = c.Line("P001")
	c.SetQuantity("P001", line.Quantity.Add(dec("0.5")))

	line, _ = c.Line("P001")
	assert.True(t, line.Quantity.Equal(dec("2")))
	assert.True(t, c.TotalPrice().Equal(dec("90")))

	items := c.ToOrderItems()
	require.Len(t, items, 1)
	assert.True(t, items[0].Quantity.Equal(dec("2")))
	assert.True(t, items[0].Price.Equal(dec("45")))
}
