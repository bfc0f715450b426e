package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectQuestionLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"quizdeck"},
			want: []string{"quizdeck"},
		},
		{
			name: "direct question id first token",
			in:   []string{"quizdeck", "q-abc123"},
			want: []string{"quizdeck", "questions", "show", "q-abc123"},
		},
		{
			name: "direct question id after value flag",
			in:   []string{"quizdeck", "--dir", "./tmp-test-ws", "q-abc123"},
			want: []string{"quizdeck", "--dir", "./tmp-test-ws", "questions", "show", "q-abc123"},
		},
		{
			name: "direct question id after equals flag",
			in:   []string{"quizdeck", "--dir=./tmp-test-ws", "q-abc123"},
			want: []string{"quizdeck", "--dir=./tmp-test-ws", "questions", "show", "q-abc123"},
		},
		{
			name: "direct question id after bool flag",
			in:   []string{"quizdeck", "--pretty", "q-abc123"},
			want: []string{"quizdeck", "--pretty", "questions", "show", "q-abc123"},
		},
		{
			name: "direct question id after double dash",
			in:   []string{"quizdeck", "--dir", "./tmp-test-ws", "--", "q-abc123"},
			want: []string{"quizdeck", "--dir", "./tmp-test-ws", "--", "questions", "show", "q-abc123"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"quizdeck", "questions", "show", "q-abc123"},
			want: []string{"quizdeck", "questions", "show", "q-abc123"},
		},
		{
			name: "deck id not rewritten",
			in:   []string{"quizdeck", "deck-abc123"},
			want: []string{"quizdeck", "deck-abc123"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"quizdeck", "wat"},
			want: []string{"quizdeck", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectQuestionLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewrite(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
