package history

import (
	"fmt"
	"testing"

	"github.com/polkiloo/storefront/internal/domain/model"
)

func TestMirrorNewestFirstAndBounded(t *testing.T) {
	m := NewMirror(3)
	for i := 1; i <= 5; i++ {
		m.Record(model.Order{ID: fmt.Sprintf("o%d", i), UserID: "u1", Status: model.OrderStatusPending})
	}
	m.Record(model.Order{ID: "x", UserID: "u2"})

	got := m.Recent("u1")
	if len(got) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(got))
	}
	for i, want := range []string{"o5", "o4", "o3"} {
		if got[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got[i].ID)
		}
	}
	if len(m.Recent("u2")) != 1 || len(m.Recent("nobody")) != 0 {
		t.Fatal("expected histories to be kept per user")
	}
}

func TestMirrorRecordReplacesSameID(t *testing.T) {
	m := NewMirror(0)
	m.Record(model.Order{ID: "o1", UserID: "u1", Status: model.OrderStatusPending})
	m.Record(model.Order{ID: "o2", UserID: "u1"})
	m.Record(model.Order{ID: "o1", UserID: "u1", Status: model.OrderStatusCompleted})

	got := m.Recent("u1")
	if len(got) != 2 || got[0].ID != "o1" || got[0].Status != model.OrderStatusCompleted {
		t.Fatalf("unexpected history %+v", got)
	}
}

func TestMirrorUpdateStatus(t *testing.T) {
	m := NewMirror(5)
	m.Record(model.Order{ID: "o1", UserID: "u1", Status: model.OrderStatusPending})
	m.UpdateStatus("o1", model.OrderStatusProcessing)
	m.UpdateStatus("missing", model.OrderStatusCompleted)

	if got := m.Recent("u1")[0].Status; got != model.OrderStatusProcessing {
		t.Fatalf("expected processing, got %s", got)
	}
}

func TestMirrorRecentReturnsCopy(t *testing.T) {
	m := NewMirror(5)
	m.Record(model.Order{ID: "o1", UserID: "u1"})
	got := m.Recent("u1")
	got[0].ID = "changed"
	if m.Recent("u1")[0].ID != "o1" {
		t.Fatal("expected mirror to be isolated from returned slice")
	}
}
