package event

import "testing"

func TestMergePrecedence(t *testing.T) {
	detail := []Event{
		{UID: "ksinr:10", Title: "Bauausschuss", Date: "01.02.2026", Source: SourceDetail},
	}
	text := []Event{
		{UID: "txt:aaa", Title: "BAUAUSSCHUSS", Date: "01.02.2026", Source: SourceText},
		{UID: "txt:bbb", Title: "Ortsbeirat Nord", Date: "03.02.2026", Source: SourceText},
	}

	merged := Merge(detail, text)

	if len(merged) != 2 {
		t.Fatalf("expected 2 merged events, got %d: %v", len(merged), merged)
	}
	if merged[0].UID != "ksinr:10" {
		t.Errorf("detail-linked record must survive, got %s", merged[0].UID)
	}
	if merged[1].UID != "txt:bbb" {
		t.Errorf("non-colliding text record must survive, got %s", merged[1].UID)
	}
}

func TestMergeKeepsAllWithoutCollisions(t *testing.T) {
	detail := []Event{{UID: "ksinr:1", Title: "A", Date: "01.02.2026"}}
	text := []Event{{UID: "txt:x", Title: "B", Date: "01.02.2026"}}

	if merged := Merge(detail, text); len(merged) != 2 {
		t.Errorf("expected both records kept, got %v", merged)
	}
}

func TestDedup(t *testing.T) {
	events := []Event{
		{UID: "a", Title: "first"},
		{UID: "a", Title: "second"},
		{UID: "b"},
	}

	out := Dedup(events)
	if len(out) != 2 {
		t.Fatalf("expected 2 events, got %d", len(out))
	}
	if out[0].Title != "first" {
		t.Error("first occurrence should win")
	}
}
