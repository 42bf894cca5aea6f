package calchub

import (
	"fmt"
	"testing"
)

func TestStoreAddAssignsIdentity(t *testing.T) {
	st := NewStore(10)
	a := st.Add(&Evaluation{Expression: "1 + 1", Result: "2", Source: "http"})
	b := st.Add(&Evaluation{Expression: "2 + 2", Result: "4", Source: "http"})

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty ids")
	}
	if a.ID == b.ID {
		t.Error("ids must be unique")
	}
	if a.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, ok := st.Get(a.ID)
	if !ok || got.Expression != "1 + 1" {
		t.Errorf("Get(%s) = %+v, %v", a.ID, got, ok)
	}
}

func TestStoreEvictsOldest(t *testing.T) {
	st := NewStore(3)
	var ids []string
	for i := 0; i < 5; i++ {
		ev := st.Add(&Evaluation{Expression: fmt.Sprintf("%d + 0", i), Source: "http"})
		ids = append(ids, ev.ID)
	}

	if st.Len() != 3 {
		t.Fatalf("len = %d, want 3", st.Len())
	}
	for _, id := range ids[:2] {
		if _, ok := st.Get(id); ok {
			t.Errorf("evicted id %s still present", id)
		}
	}
	for _, id := range ids[2:] {
		if _, ok := st.Get(id); !ok {
			t.Errorf("id %s missing", id)
		}
	}
}

func TestStoreRecentNewestFirst(t *testing.T) {
	st := NewStore(10)
	for _, expr := range []string{"1", "2", "3"} {
		st.Add(&Evaluation{Expression: expr, Source: "http"})
	}

	recent := st.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("got %d, want 2", len(recent))
	}
	if recent[0].Expression != "3" || recent[1].Expression != "2" {
		t.Errorf("recent = [%s, %s], want [3, 2]", recent[0].Expression, recent[1].Expression)
	}

	if got := len(st.Recent(0)); got != 3 {
		t.Errorf("Recent(0) = %d records, want all 3", got)
	}
}

func TestStoreCountBySource(t *testing.T) {
	st := NewStore(10)
	st.Add(&Evaluation{Expression: "1", Source: "http"})
	st.Add(&Evaluation{Expression: "2", Source: "ws"})
	st.Add(&Evaluation{Expression: "3", Source: "http"})

	counts := st.CountBySource()
	if counts["http"] != 2 || counts["ws"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
