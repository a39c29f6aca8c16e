package expression

import (
	"testing"
)

func TestEvaluator_Evaluate(t *testing.T) {
	ev := New()
	env := map[string]any{
		"user":  map[string]any{"name": "Ada", "age": 36},
		"items": []any{1, 2, 3},
	}

	tests := []struct {
		source string
		want   any
	}{
		{source: "user.name", want: "Ada"},
		{source: "user.age + 1", want: 37},
		{source: "len(items)", want: 3},
		{source: "missing", want: nil},
		{source: `"x" + "y"`, want: "xy"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := ev.Evaluate(tt.source, env)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if got != tt.want {
				t.Fatalf("want %v (%T), got %v (%T)", tt.want, tt.want, got, got)
			}
		})
	}
}

func TestEvaluator_CachesPrograms(t *testing.T) {
	ev := New()
	for i := 0; i < 3; i++ {
		if _, err := ev.Evaluate("a", map[string]any{"a": i}); err != nil {
			t.Fatalf("evaluate: %v", err)
		}
	}
	if ev.Len() != 1 {
		t.Fatalf("expected one cached program, got %d", ev.Len())
	}
}

func TestEvaluator_CompileErrors(t *testing.T) {
	ev := New()
	if err := ev.Compile(""); err == nil {
		t.Fatalf("expected error for empty source")
	}
	if err := ev.Compile("a +"); err == nil {
		t.Fatalf("expected syntax error")
	}
}
