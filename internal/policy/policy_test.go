package policy

import "testing"

func TestExtract(t *testing.T) {
	cases := []struct {
		in   string
		text string
		refs []string
	}{
		{"Restricted*1,2", "Restricted", []string{"*", "1", "2"}},
		{"Free*", "Free", []string{"*"}},
		{"Conditional2", "Conditional", []string{"2"}},
		{"Free", "Free", nil},
		{"", "", nil},
		{"Prohibited**", "Prohibited", []string{"*", "*"}},
		{"Restricted 12", "Restricted", []string{"1", "2"}},
	}
	for _, c := range cases {
		text, refs := Extract(c.in)
		if text != c.text {
			t.Errorf("%q: expected text %q, got %q", c.in, c.text, text)
		}
		if len(refs) != len(c.refs) {
			t.Errorf("%q: expected refs %v, got %v", c.in, c.refs, refs)
			continue
		}
		for i := range refs {
			if refs[i] != c.refs[i] {
				t.Errorf("%q: refs[%d]: expected %q, got %q", c.in, i, c.refs[i], refs[i])
			}
		}
	}
}
