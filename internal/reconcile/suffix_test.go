package reconcile

import "testing"

func TestStripClubAffixes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Arsenal FC", want: "Arsenal"},
		{in: "Club FC.", want: "Club"},
		{in: "Real Madrid CF", want: "Real Madrid"},
		{in: "Columbus Crew SC", want: "Columbus Crew"},
		{in: "Bournemouth AFC", want: "Bournemouth"},
		{in: "Leicester RFC", want: "Leicester"},
		{in: "Liverpool LFC", want: "Liverpool"},
		{in: "IFK Göteborg", want: "Göteborg"},
		{in: "Viking FK Stavanger", want: "Viking Stavanger"},
		{in: "  Arsenal  ", want: "Arsenal"},
		{in: "FC Porto", want: "FC Porto"},
		{in: "Chelsea", want: "Chelsea"},
		{in: "", want: ""},
	}

	for _, tc := range tests {
		if got := StripClubAffixes(tc.in); got != tc.want {
			t.Fatalf("StripClubAffixes(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestStripClubAffixes_AppliesEachRuleOnce(t *testing.T) {
	if got := StripClubAffixes("Dynamo FC FC"); got != "Dynamo FC" {
		t.Fatalf("expected a single FC suffix to be removed, got %q", got)
	}
}
