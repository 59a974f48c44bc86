package store

import (
	"context"
	"testing"
	"time"

	"github.com/forkfulapp/forkful-server/internal/domain"
)

func TestAggregateShoppingList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "usr_1", "a@example.com", "alice")
	mustCreateIngredient(t, s, "ing_sugar", "Sugar", "g")
	mustCreateIngredient(t, s, "ing_salt", "Salt", "g")

	r1 := makeTestRecipe("rcp_1", "usr_1", time.Now())
	r1.Ingredients = []domain.IngredientLine{{IngredientID: "ing_sugar", Amount: 100}}
	r2 := makeTestRecipe("rcp_2", "usr_1", time.Now())
	r2.Ingredients = []domain.IngredientLine{
		{IngredientID: "ing_sugar", Amount: 50},
		{IngredientID: "ing_salt", Amount: 5},
	}
	for _, r := range []*domain.Recipe{r1, r2} {
		if err := s.CreateRecipe(ctx, r); err != nil {
			t.Fatalf("CreateRecipe %s: %v", r.ID, err)
		}
	}

	mustAddRelation(t, s, domain.RelationCart, "usr_1", "rcp_1")
	mustAddRelation(t, s, domain.RelationCart, "usr_1", "rcp_2")

	items, err := s.AggregateShoppingList(ctx, "usr_1")
	if err != nil {
		t.Fatalf("AggregateShoppingList: %v", err)
	}

	want := []domain.ShoppingItem{
		{Name: "Salt", MeasurementUnit: "g", Amount: 5},
		{Name: "Sugar", MeasurementUnit: "g", Amount: 150},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d: %+v", len(want), len(items), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d: got %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestAggregateShoppingList_SameNameDifferentUnit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "usr_1", "a@example.com", "alice")
	mustCreateIngredient(t, s, "ing_milk_ml", "Milk", "ml")
	mustCreateIngredient(t, s, "ing_milk_tbsp", "Milk", "tbsp")

	r := makeTestRecipe("rcp_1", "usr_1", time.Now())
	r.Ingredients = []domain.IngredientLine{
		{IngredientID: "ing_milk_ml", Amount: 200},
		{IngredientID: "ing_milk_tbsp", Amount: 2},
	}
	if err := s.CreateRecipe(ctx, r); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	mustAddRelation(t, s, domain.RelationCart, "usr_1", "rcp_1")

	items, err := s.AggregateShoppingList(ctx, "usr_1")
	if err != nil {
		t.Fatalf("AggregateShoppingList: %v", err)
	}

	// Different units must not collapse into one line.
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	if items[0].MeasurementUnit != "ml" || items[0].Amount != 200 {
		t.Errorf("item 0: got %+v", items[0])
	}
	if items[1].MeasurementUnit != "tbsp" || items[1].Amount != 2 {
		t.Errorf("item 1: got %+v", items[1])
	}
}

func TestAggregateShoppingList_EmptyCart(t *testing.T) {
	s := newTestStore(t)

	mustCreateUser(t, s, "usr_1", "a@example.com", "alice")

	items, err := s.AggregateShoppingList(context.Background(), "usr_1")
	if err != nil {
		t.Fatalf("AggregateShoppingList: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list, got %+v", items)
	}
}
