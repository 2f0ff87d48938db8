package engine

import (
	"errors"
	"testing"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "bare array",
			raw:  `[{"a":1}]`,
			want: `[{"a":1}]`,
		},
		{
			name: "wrapped in prose",
			raw:  "Here is your quiz:\n[{\"a\":1}]\nGood luck!",
			want: `[{"a":1}]`,
		},
		{
			name: "code fence",
			raw:  "```json\n[1, 2]\n```",
			want: "[1, 2]",
		},
		{
			name: "nested arrays take outermost pair",
			raw:  `x [[1],[2]] y`,
			want: `[[1],[2]]`,
		},
		{
			name:    "no brackets",
			raw:     `{"question": "no array here"}`,
			wantErr: true,
		},
		{
			name:    "only opening bracket",
			raw:     `[{"a":1}`,
			wantErr: true,
		},
		{
			name:    "closing before opening",
			raw:     `] nope [`,
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONArray(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedResponse) {
					t.Fatalf("ExtractJSONArray() error = %v, want ErrMalformedResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSONArray() unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ExtractJSONArray() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeJSONArray(t *testing.T) {
	raw := `Sure! [{"question":"Q1","options":["a","b","c","d"],"correct_answer":"B","explanation":"because"}] Enjoy.`
	qs, err := DecodeJSONArray[QuizQuestion](raw)
	if err != nil {
		t.Fatalf("DecodeJSONArray() error: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	if qs[0].Question != "Q1" || qs[0].CorrectAnswer != "B" || len(qs[0].Options) != 4 {
		t.Errorf("unexpected question: %+v", qs[0])
	}
}

func TestDecodeJSONArrayInvalidJSON(t *testing.T) {
	_, err := DecodeJSONArray[QuizQuestion](`[{"question": "unterminated}]`)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}
