package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDeadlineUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  *time.Time
		fails bool
	}{
		{
			name:  "date only maps to UTC midnight",
			input: `"2026-02-19"`,
			want:  ptrTime(time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:  "rfc3339 with offset",
			input: `"2026-02-19T14:30:00+02:00"`,
			want:  ptrTime(time.Date(2026, 2, 19, 14, 30, 0, 0, time.FixedZone("", 2*3600))),
		},
		{
			name:  "rfc3339 zulu",
			input: `"2026-02-19T14:30:00Z"`,
			want:  ptrTime(time.Date(2026, 2, 19, 14, 30, 0, 0, time.UTC)),
		},
		{name: "null clears", input: `null`, want: nil},
		{name: "empty string clears", input: `""`, want: nil},
		{name: "blank string clears", input: `"   "`, want: nil},
		{name: "garbage", input: `"next tuesday"`, fails: true},
		{name: "wrong json type", input: `42`, fails: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Deadline
			err := json.Unmarshal([]byte(tc.input), &d)
			if tc.fails {
				if err == nil {
					t.Fatalf("expected an error for %s", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s: %v", tc.input, err)
			}
			got := d.Ptr()
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("got %v, want nil", got)
			case tc.want != nil && got == nil:
				t.Fatalf("got nil, want %v", tc.want)
			case tc.want != nil && !got.Equal(*tc.want):
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDeadlineInsideUpdateRequest(t *testing.T) {
	var req UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"title":"x"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Deadline != nil {
		t.Fatalf("absent deadline should stay nil")
	}
	// JSON null collapses to an absent pointer field; clearing a
	// deadline goes through the empty string instead.
	req = UpdateTaskRequest{}
	if err := json.Unmarshal([]byte(`{"deadline":null}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Deadline != nil {
		t.Fatalf("explicit null should read as absent")
	}
	req = UpdateTaskRequest{}
	if err := json.Unmarshal([]byte(`{"deadline":""}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Deadline == nil || req.Deadline.Ptr() != nil {
		t.Fatalf("empty string should be present and clear the value, got %+v", req.Deadline)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
