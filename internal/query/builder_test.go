package query

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

func ptr[T any](v T) *T {
	return &v
}

var sampleTasks = []*models.Task{
	{ID: 1, OwnerID: 1, Title: "Ship report", Description: "Q3 numbers", Priority: models.PriorityHigh, Status: models.StatusPending},
	{ID: 2, OwnerID: 1, Title: "Water plants", Description: "balcony", Priority: models.PriorityLow, Status: models.StatusDone},
	{ID: 3, OwnerID: 2, Title: "Ship parcel", Description: "Q3 invoice", Priority: models.PriorityHigh, Status: models.StatusPending},
	{ID: 4, OwnerID: 1, Title: "ship lowercase", Description: "", Priority: models.PriorityMedium, Status: models.StatusInProgress},
}

func matchingIDs(p Predicate) []int64 {
	var ids []int64
	for _, task := range sampleTasks {
		if p.Match(task) {
			ids = append(ids, task.ID)
		}
	}
	return ids
}

func assertIDs(t *testing.T, got []int64, want ...int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, got)
		}
	}
}

func TestFilterWithoutInputsMatchesEverything(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	p := b.Filter(nil, nil, nil)
	if !p.IsAll() {
		t.Fatalf("expected trivially true predicate, got %+v", p.Conditions())
	}
	assertIDs(t, matchingIDs(p), 1, 2, 3, 4)
}

func TestFilterScopesToOwner(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	assertIDs(t, matchingIDs(b.Filter(ptr(int64(1)), nil, nil)), 1, 2, 4)
	assertIDs(t, matchingIDs(b.Filter(ptr(int64(2)), nil, nil)), 3)
}

func TestFilterCombinesConditions(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	p := b.Filter(ptr(int64(1)), ptr("HIGH"), ptr("PENDING"))

	conds := p.Conditions()
	if len(conds) != 3 {
		t.Fatalf("expected 3 conditions, got %d", len(conds))
	}
	if conds[0].Field != FieldPriority || conds[1].Field != FieldStatus || conds[2].Field != FieldOwner {
		t.Fatalf("unexpected condition order: %+v", conds)
	}
	assertIDs(t, matchingIDs(p), 1)
}

func TestFilterComparesStoredValuesVerbatim(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	assertIDs(t, matchingIDs(b.Filter(ptr(int64(1)), ptr("high"), nil)))
	assertIDs(t, matchingIDs(b.Filter(ptr(int64(1)), ptr("bogus"), nil)))
}

func TestFilterFallsBackToHighPriority(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	p := b.Filter(ptr(int64(1)), ptr("LOW\x00"), nil)

	conds := p.Conditions()
	if len(conds) != 2 {
		t.Fatalf("expected fallback with 2 conditions, got %+v", conds)
	}
	if conds[0].Field != FieldPriority || conds[0].Value != "HIGH" {
		t.Fatalf("expected priority HIGH fallback, got %+v", conds[0])
	}
	assertIDs(t, matchingIDs(p), 1)
}

func TestFilterFallbackWithoutOwner(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	p := b.Filter(nil, nil, ptr(string([]byte{0xff, 0xfe})))
	assertIDs(t, matchingIDs(p), 1, 3)
}

func TestComposeRecoversPanics(t *testing.T) {
	_, err := compose(func() []Condition {
		var owner *int64
		return []Condition{Eq(FieldOwner, *owner)}
	})
	if err == nil {
		t.Fatal("expected error from panicking composition")
	}
}

func TestSearchBlankMatchesOwnerScope(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	for _, text := range []*string{nil, ptr(""), ptr("   ")} {
		assertIDs(t, matchingIDs(b.Search(ptr(int64(1)), text)), 1, 2, 4)
	}
	assertIDs(t, matchingIDs(b.Search(nil, nil)), 1, 2, 3, 4)
}

func TestSearchMatchesTitleOrDescription(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	assertIDs(t, matchingIDs(b.Search(ptr(int64(1)), ptr("Q3"))), 1)
	assertIDs(t, matchingIDs(b.Search(ptr(int64(1)), ptr("balc"))), 2)
	assertIDs(t, matchingIDs(b.Search(nil, ptr("Q3"))), 1, 3)
	assertIDs(t, matchingIDs(b.Search(ptr(int64(1)), ptr("zzz"))))
}

func TestSearchIsCaseSensitive(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	assertIDs(t, matchingIDs(b.Search(ptr(int64(1)), ptr("Ship"))), 1)
	assertIDs(t, matchingIDs(b.Search(ptr(int64(1)), ptr("ship"))), 4)
}

func TestSearchWithUnstorableTextMatchesNothing(t *testing.T) {
	b := NewBuilder(zerolog.Nop())
	p := b.Search(ptr(int64(1)), ptr("Ship\x00"))
	if !p.IsNone() {
		t.Fatalf("expected empty predicate, got %+v", p.Conditions())
	}
	assertIDs(t, matchingIDs(p))
}

func TestByIDAndOwner(t *testing.T) {
	assertIDs(t, matchingIDs(ByIDAndOwner(1, 1)), 1)
	assertIDs(t, matchingIDs(ByIDAndOwner(3, 1)))
	assertIDs(t, matchingIDs(ByIDAndOwner(3, 2)), 3)
}
