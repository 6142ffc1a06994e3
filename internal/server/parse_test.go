package server

import "testing"

func TestParseBotReply(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want botReply
	}{
		{
			name: "json wrapped in prose",
			raw:  "Sure! Here you go: {\"response\": \"hi\", \"affection_change\": 5} hope that helps",
			want: botReply{Response: "hi", AffectionChange: 5},
		},
		{
			name: "plain json",
			raw:  `{"response": "hello there", "affection_change": -3}`,
			want: botReply{Response: "hello there", AffectionChange: -3},
		},
		{
			name: "no braces at all",
			raw:  "just plain text",
			want: botReply{Response: "just plain text"},
		},
		{
			name: "non-numeric affection",
			raw:  `{"response": "hi", "affection_change": "notanumber"}`,
			want: botReply{Response: `{"response": "hi", "affection_change": "notanumber"}`},
		},
		{
			name: "affection as numeric string",
			raw:  `{"response": "hi", "affection_change": "7"}`,
			want: botReply{Response: "hi", AffectionChange: 7},
		},
		{
			name: "fractional affection truncates",
			raw:  `{"response": "hi", "affection_change": 4.9}`,
			want: botReply{Response: "hi", AffectionChange: 4},
		},
		{
			name: "missing response field",
			raw:  `{"affection_change": 2}`,
			want: botReply{Response: fallbackReply, AffectionChange: 2},
		},
		{
			name: "missing affection field",
			raw:  `{"response": "hi"}`,
			want: botReply{Response: "hi"},
		},
		{
			name: "null affection",
			raw:  `{"response": "hi", "affection_change": null}`,
			want: botReply{Response: `{"response": "hi", "affection_change": null}`},
		},
		{
			name: "malformed json",
			raw:  `{"response": "hi", }`,
			want: botReply{Response: `{"response": "hi", }`},
		},
		{
			name: "closing brace before opening",
			raw:  "} nothing here {",
			want: botReply{Response: "} nothing here {"},
		},
		{
			name: "empty input",
			raw:  "",
			want: botReply{Response: ""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseBotReply(tc.raw)
			if got != tc.want {
				t.Errorf("parseBotReply(%q) = %+v, want %+v", tc.raw, got, tc.want)
			}
		})
	}
}
