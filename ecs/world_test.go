package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/ldtkdrop/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for a dead entity")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestRecycledSlotIsNotTheOldEntity(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %s after %s", fresh, old)
	}
	if fresh == old {
		t.Fatalf("recycled entity must differ from the destroyed one")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("fresh entity must not inherit components")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive adding to stale entity, got %v", err)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get(w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove(w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove(w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get(w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove(w, e1, h3.Kind()) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})

	t.Run("nil_value_rejected", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		e := CreateEntity(w)
		if err := Add(w, e, h.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
			t.Fatalf("expected ErrNilComponent, got %v", err)
		}
	})

	t.Run("destroy_drops_components", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		e := CreateEntity(w)
		if err := Add(w, e, h.Kind(), intPtr(4)); err != nil {
			t.Fatal(err)
		}
		DestroyEntity(w, e)
		if w.Count(h.Kind()) != 0 {
			t.Fatalf("expected no components left, got %d", w.Count(h.Kind()))
		}
	})
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})

	t.Run("destroy_while_iterating", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		for i := 0; i < 4; i++ {
			if err := Add(w, CreateEntity(w), h.Kind(), intPtr(i)); err != nil {
				t.Fatal(err)
			}
		}
		visited := 0
		ForEach(w, h.Kind(), func(e Entity, _ *int) {
			visited++
			DestroyEntity(w, e)
		})
		if visited != 4 {
			t.Fatalf("expected 4 visits, got %d", visited)
		}
		if n := len(Entities(w)); n != 0 {
			t.Fatalf("expected empty world, got %d", n)
		}
	})

	t.Run("pointer_mutation_sticks", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		e := CreateEntity(w)
		if err := Add(w, e, h.Kind(), intPtr(1)); err != nil {
			t.Fatal(err)
		}
		ForEach(w, h.Kind(), func(_ Entity, v *int) { *v = 9 })
		if v, _ := Get(w, e, h.Kind()); *v != 9 {
			t.Fatalf("expected 9, got %d", *v)
		}
	})
}

func TestQueryIntersection(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	if err := Add(w, e1, ka, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, ka, intPtr(2)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, kb, stringPtr("x")); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e3, kb, stringPtr("y")); err != nil {
		t.Fatal(err)
	}

	res := w.Query(ka, kb)
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}
	if got := w.Query(ka, component.NewComponentKind[bool]()); len(got) != 0 {
		t.Fatalf("expected empty result for unused kind, got %v", got)
	}
}

func TestSingle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	if _, _, ok := Single(w, h.Kind()); ok {
		t.Fatalf("expected no single entity in empty world")
	}
	e := CreateEntity(w)
	if err := Add(w, e, h.Kind(), intPtr(7)); err != nil {
		t.Fatal(err)
	}
	got, v, ok := Single(w, h.Kind())
	if !ok || got != e || *v != 7 {
		t.Fatalf("expected (%s, 7), got (%s, %v, %v)", e, got, v, ok)
	}
	if err := Add(w, CreateEntity(w), h.Kind(), intPtr(8)); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := Single(w, h.Kind()); ok {
		t.Fatalf("expected Single to fail with two entities")
	}
}

func TestDestroyRecursive(t *testing.T) {
	w := NewWorld()
	root := CreateEntity(w)
	child := CreateEntity(w)
	grandchild := CreateEntity(w)
	bystander := CreateEntity(w)

	if err := SetParent(w, child, root); err != nil {
		t.Fatal(err)
	}
	if err := SetParent(w, grandchild, child); err != nil {
		t.Fatal(err)
	}

	if p, ok := Parent(w, grandchild); !ok || p != child {
		t.Fatalf("expected grandchild parent %s, got %s ok=%v", child, p, ok)
	}

	if n := DestroyRecursive(w, root); n != 3 {
		t.Fatalf("expected 3 destroyed, got %d", n)
	}
	for _, e := range []Entity{root, child, grandchild} {
		if IsAlive(w, e) {
			t.Fatalf("%s should be dead", e)
		}
	}
	if !IsAlive(w, bystander) {
		t.Fatalf("bystander should survive")
	}
	if len(Children(w, root)) != 0 {
		t.Fatalf("destroyed root should have no children left")
	}
}

func TestDestroyEntityOrphansChildren(t *testing.T) {
	w := NewWorld()
	parent := CreateEntity(w)
	child := CreateEntity(w)
	if err := SetParent(w, child, parent); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, parent)
	if !IsAlive(w, child) {
		t.Fatalf("plain destroy must not take children")
	}
	if _, ok := Parent(w, child); ok {
		t.Fatalf("child should be detached")
	}
}

func TestSetParentRejectsDeadEntities(t *testing.T) {
	w := NewWorld()
	parent := CreateEntity(w)
	child := CreateEntity(w)
	DestroyEntity(w, parent)
	if err := SetParent(w, child, parent); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

type countingSystem struct {
	order *[]string
	name  string
}

func (c countingSystem) Update(*World) { *c.order = append(*c.order, c.name) }

func TestSchedulerRunsInOrder(t *testing.T) {
	var order []string
	s := NewScheduler(countingSystem{&order, "a"}, nil, countingSystem{&order, "b"})
	s.Add(countingSystem{&order, "c"})
	s.Update(NewWorld())
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("unexpected order %v", order)
	}
}
