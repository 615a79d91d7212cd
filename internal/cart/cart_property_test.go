package cart

import (
	"testing"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var (
	sizes  = []string{"", "S", "M", "L"}
	colors = []string{"", "red", "black"}
)

type addOp struct {
	product  int
	size     string
	color    string
	quantity int
}

func genAddOp() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 2),
		gen.IntRange(0, len(sizes)-1),
		gen.IntRange(0, len(colors)-1),
		gen.IntRange(1, 5),
	).Map(func(v []interface{}) addOp {
		return addOp{
			product:  v[0].(int),
			size:     sizes[v[1].(int)],
			color:    colors[v[2].(int)],
			quantity: v[3].(int),
		}
	})
}

func testProducts() []*domain.Product {
	return []*domain.Product{
		{ID: uuid.New(), Name: "Tee", Price: 1000},
		{ID: uuid.New(), Name: "Cap", Price: 500},
		{ID: uuid.New(), Name: "Jacket", Price: 4500.5},
	}
}

// Feature: storefront, Property 6: Adding the same variant accumulates quantity
func TestProperty_AddMergesByVariant(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("each variant has one line whose quantity is the sum of adds", prop.ForAll(
		func(ops []addOp) bool {
			products := testProducts()
			c := New(uuid.New())

			type variant struct {
				product int
				size    string
				color   string
			}
			want := make(map[variant]int)

			for _, op := range ops {
				if _, _, err := c.Add(products[op.product], op.quantity, op.size, op.color); err != nil {
					t.Logf("FAIL: add returned %v", err)
					return false
				}
				want[variant{op.product, op.size, op.color}] += op.quantity
			}

			if c.Len() != len(want) {
				t.Logf("FAIL: expected %d lines, got %d", len(want), c.Len())
				return false
			}

			for v, qty := range want {
				item, ok := c.Find(products[v.product].ID, v.size, v.color)
				if !ok || item.Quantity != qty {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genAddOp()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: storefront, Property 7: Totals equal the sums over line items
func TestProperty_TotalsMatchLineItems(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("totalItems and totalAmount are recomputed after every mutation", prop.ForAll(
		func(ops []addOp, newQuantity int) bool {
			products := testProducts()
			c := New(uuid.New())

			check := func() bool {
				items, amount := 0, 0.0
				for _, item := range c.Items() {
					items += item.Quantity
					amount += item.Price * float64(item.Quantity)
				}
				return c.TotalItems() == items && c.TotalAmount() == amount
			}

			for _, op := range ops {
				_, _, _ = c.Add(products[op.product], op.quantity, op.size, op.color)
				if !check() {
					return false
				}
			}

			if c.Len() > 0 {
				c.UpdateQuantity(c.Items()[0].ID, newQuantity)
				if !check() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genAddOp()),
		gen.IntRange(-2, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: storefront, Property 8: UpdateQuantity sets exactly or removes
func TestProperty_UpdateQuantitySetsOrRemoves(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("n > 0 sets quantity to n, n <= 0 removes the line", prop.ForAll(
		func(initial int, n int) bool {
			c := New(uuid.New())
			item, _, err := c.Add(testProducts()[0], initial, "M", "")
			if err != nil {
				return false
			}

			c.UpdateQuantity(item.ID, n)

			got, ok := c.Get(item.ID)
			if n <= 0 {
				return !ok && c.Len() == 0
			}
			return ok && got.Quantity == n
		},
		gen.IntRange(1, 20),
		gen.IntRange(-5, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
