package cmd

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/ardnew/calc/cli/cmd/repl"
)

func TestNumber_MarshalJSON(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{3, "3"},
		{-0.25, "-0.25"},
		{1e21, "1e+21"},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
		{math.NaN(), `"NaN"`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(number(tt.v))
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", tt.v, err)
		}

		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestNewRecord(t *testing.T) {
	cfg := repl.Config{}
	ctx := context.Background()

	present := newRecord("f", 1, cfg.Evaluate(ctx, "|2-9|"))
	if present.Value == nil || *present.Value != 7 || present.Failed() {
		t.Errorf("present record = %+v", present)
	}

	absent := newRecord("f", 2, cfg.Evaluate(ctx, "  "))
	if !absent.Absent || absent.Value != nil || absent.Failed() {
		t.Errorf("absent record = %+v", absent)
	}

	failed := newRecord("f", 3, cfg.Evaluate(ctx, "1 + )"))
	if !failed.Failed() || failed.Index == nil || *failed.Index != 4 {
		t.Errorf("failed record = %+v", failed)
	}

	if failed.reply != "!!! Extra input, at index 4" {
		t.Errorf("reply = %q", failed.reply)
	}
}
