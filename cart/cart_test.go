package cart

import (
	"encoding/json"
	"math"
	"testing"

	"souq/models"
)

func snap(id, name string, price float64) models.ProductSnapshot {
	return models.ProductSnapshot{ProductID: id, Name: name, Price: price}
}

func TestAddItemMergesQuantities(t *testing.T) {
	c := New()
	c.AddItem(snap("p1", "Rice", 10), 2)
	c.AddItem(snap("p1", "Rice", 10), 3)

	if got := c.TotalUniqueItems(); got != 1 {
		t.Fatalf("expected 1 line, got %d", got)
	}
	if got := c.TotalItems(); got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}
}

func TestAddItemRefreshesSnapshot(t *testing.T) {
	c := New()
	c.AddItem(snap("p1", "Rice", 10), 1)
	c.AddItem(models.ProductSnapshot{ProductID: "p1", Name: "Basmati Rice", Price: 12, ImageURL: "new.jpg"}, 1)

	lines := c.Lines()
	if lines[0].Product.Name != "Basmati Rice" || lines[0].Product.ImageURL != "new.jpg" {
		t.Fatalf("expected latest snapshot fields, got %+v", lines[0].Product)
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected merged quantity 2, got %d", lines[0].Quantity)
	}
}

func TestAddItemIgnoresNegativeQuantity(t *testing.T) {
	c := New()
	c.AddItem(snap("p1", "Rice", 10), -5)
	if c.TotalUniqueItems() != 0 {
		t.Fatal("negative quantity must not create a line")
	}
}

func TestUpdateQuantityClampsAndDeletes(t *testing.T) {
	c := New()
	c.AddItem(snap("p1", "Rice", 10), 3)

	c.UpdateQuantity("p1", -100)
	if c.TotalUniqueItems() != 0 {
		t.Fatal("line clamped to zero must be deleted")
	}

	// line no longer exists, so a later increment is a no-op
	c.UpdateQuantity("p1", 1)
	if c.TotalUniqueItems() != 0 || c.TotalItems() != 0 {
		t.Fatal("update on missing line must not create it")
	}
}

func TestUpdateQuantityMissingLineNoop(t *testing.T) {
	c := New()
	c.UpdateQuantity("ghost", 5)
	if c.TotalUniqueItems() != 0 {
		t.Fatal("update must never create a line")
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	c := New()
	c.AddItem(snap("p1", "Rice", 10), 1)
	c.RemoveItem("p1")
	c.RemoveItem("p1")
	if c.TotalUniqueItems() != 0 {
		t.Fatal("expected empty cart")
	}
}

func TestTotalPrice(t *testing.T) {
	c := New()
	c.AddItem(snap("a", "A", 10.00), 2)
	c.AddItem(snap("b", "B", 5.00), 1)

	if got := c.TotalPrice(); got != 25.00 {
		t.Fatalf("expected subtotal 25.00, got %v", got)
	}
}

func TestTotalWithTax(t *testing.T) {
	c := New()
	c.AddItem(snap("a", "A", 100), 1)

	if got := c.Tax(); math.Abs(got-15.0) > 1e-9 {
		t.Fatalf("expected tax 15.0, got %v", got)
	}
	if got := c.TotalWithTax(); math.Abs(got-115.0) > 1e-9 {
		t.Fatalf("expected total 115.0, got %v", got)
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(snap("a", "A", 10), 2)
	c.AddItem(snap("b", "B", 5), 1)
	c.Clear()

	if c.TotalItems() != 0 || c.TotalUniqueItems() != 0 || c.TotalPrice() != 0 {
		t.Fatal("cleared cart must read as zero everywhere")
	}
}

func TestInvariantsUnderMixedSequence(t *testing.T) {
	c := New()
	c.AddItem(snap("a", "A", 3), 2)
	c.AddItem(snap("b", "B", 7), 1)
	c.UpdateQuantity("a", 1)
	c.AddItem(snap("c", "C", 1), 4)
	c.UpdateQuantity("b", -1)
	c.RemoveItem("missing")
	c.UpdateQuantity("c", -2)

	sum := 0
	for _, line := range c.Lines() {
		if line.Quantity <= 0 {
			t.Fatalf("line %s has non-positive quantity %d", line.Product.ProductID, line.Quantity)
		}
		sum += line.Quantity
	}
	if got := c.TotalItems(); got != sum {
		t.Fatalf("TotalItems %d does not match line sum %d", got, sum)
	}
}

func TestJSONRoundTripPreservesOrder(t *testing.T) {
	c := New()
	c.AddItem(snap("z", "Z", 1), 1)
	c.AddItem(snap("a", "A", 2), 2)
	c.AddItem(snap("m", "M", 3), 3)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := New()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"z", "a", "m"}
	lines := restored.Lines()
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, id := range want {
		if lines[i].Product.ProductID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, lines[i].Product.ProductID)
		}
	}
}

func TestOrderLinesSnapshotLeavesCartUntouched(t *testing.T) {
	c := New()
	c.AddItem(snap("a", "A", 10), 2)

	lines := c.OrderLines()
	if len(lines) != 1 || lines[0].Price != 10 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected order lines %+v", lines)
	}

	if c.TotalItems() != 2 {
		t.Fatal("snapshot must not mutate the cart")
	}
}
