package buysim

import "testing"

func TestResultAccessorsMissingFields(t *testing.T) {
	r := Result{}
	if !r.Empty() {
		t.Fatal("expected empty result")
	}
	if got := r.Str("status"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := r.Float("spend"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := r.Int("impressions"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestResultAccessorsMistypedFields(t *testing.T) {
	r := Result{"status": 12, "spend": "a lot"}
	if got := r.Str("status"); got != "" {
		t.Fatalf("expected empty string for mistyped field, got %q", got)
	}
	if got := r.Float("spend"); got != 0 {
		t.Fatalf("expected 0 for mistyped field, got %v", got)
	}
}

func TestResultFloatAcceptsJSONAndNativeNumbers(t *testing.T) {
	r := Result{"a": float64(1.5), "b": int(2), "c": int64(3)}
	if got := r.Float("a"); got != 1.5 {
		t.Fatalf("float64: got %v", got)
	}
	if got := r.Float("b"); got != 2 {
		t.Fatalf("int: got %v", got)
	}
	if got := r.Int("c"); got != 3 {
		t.Fatalf("int64: got %v", got)
	}
}

func TestResultDecode(t *testing.T) {
	r := Result{
		"statuses": []any{
			map[string]any{"creative_id": "cr_1", "status": "approved"},
		},
	}
	var out struct {
		Statuses []struct {
			CreativeID string `json:"creative_id"`
			Status     string `json:"status"`
		} `json:"statuses"`
	}
	if err := r.Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(out.Statuses))
	}
	if out.Statuses[0].CreativeID != "cr_1" || out.Statuses[0].Status != "approved" {
		t.Fatalf("unexpected decode result: %+v", out.Statuses[0])
	}
}
