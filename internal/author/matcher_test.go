package author

import (
	"errors"
	"strings"
	"testing"
)

var owner = Owner{Surname: "Ajnabi", Initials: "J"}

func TestNewMatcher_RequiresSurname(t *testing.T) {
	if _, err := NewMatcher(Owner{Initials: "J"}); !errors.Is(err, ErrNoSurname) {
		t.Errorf("NewMatcher() error = %v, want ErrNoSurname", err)
	}
}

func TestIsFirstAuthor(t *testing.T) {
	m := MustMatcher(owner)

	tests := []struct {
		authors string
		want    bool
	}{
		{"Ajnabi, J., Lee, K.", true},
		{"Ajnabi, J, Lee, K.", true},
		{"ajnabi, j., Lee, K.", true},
		{"Ajnabi,J.", true},
		{"   Ajnabi, J.", true},
		{"J. Ajnabi, K. Lee", true},
		{"J Ajnabi, K. Lee", true},
		{"J.Ajnabi", true},
		{"Lee, K., Ajnabi, J.", false},
		{"K. Lee, J. Ajnabi", false},
		{"Ajnabian, J., Lee, K.", false},
		{"Ajnabi, Jo., Lee, K.", false},
		{"JAjnabi, K. Lee", false},
		{"J. Ajnabian", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.authors, func(t *testing.T) {
			if got := m.IsFirstAuthor(tt.authors); got != tt.want {
				t.Errorf("IsFirstAuthor(%q) = %v, want %v", tt.authors, got, tt.want)
			}
		})
	}
}

func TestHighlight(t *testing.T) {
	m := MustMatcher(owner)

	tests := []struct {
		name    string
		authors string
		want    string
	}{
		{
			name:    "leading surname first",
			authors: "Ajnabi, J., Lee, K.",
			want:    "<strong>Ajnabi, J.</strong>, Lee, K.",
		},
		{
			name:    "middle initials first",
			authors: "K. Lee, J. Ajnabi, M. Chen",
			want:    "K. Lee, <strong>J. Ajnabi</strong>, M. Chen",
		},
		{
			name:    "both forms",
			authors: "Ajnabi, J. and J. Ajnabi",
			want:    "<strong>Ajnabi, J.</strong> and <strong>J. Ajnabi</strong>",
		},
		{
			name:    "case preserved",
			authors: "AJNABI, J.",
			want:    "<strong>AJNABI, J.</strong>",
		},
		{
			name:    "no match leaves string alone",
			authors: "Ajnabian, J., Lee, K.",
			want:    "Ajnabian, J., Lee, K.",
		},
		{
			name:    "hyphenated surname is another name",
			authors: "Lee, K., Al-Ajnabi, J.",
			want:    "Lee, K., Al-Ajnabi, J.",
		},
		{
			name:    "double-barrelled surname is another name",
			authors: "K. Lee, J. Ajnabi-Smith",
			want:    "K. Lee, J. Ajnabi-Smith",
		},
		{
			name:    "apostrophe prefix is another name",
			authors: "O'Ajnabi, J.",
			want:    "O'Ajnabi, J.",
		},
		{
			name:    "empty",
			authors: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Highlight(tt.authors); got != tt.want {
				t.Errorf("Highlight(%q) = %q, want %q", tt.authors, got, tt.want)
			}
		})
	}
}

func TestSpans_ReassembleInput(t *testing.T) {
	m := MustMatcher(owner)

	inputs := []string{
		"Ajnabi, J., Lee, K., J. Ajnabi",
		"Lee, K.",
		"  J. Ajnabi  ",
		"",
	}
	for _, in := range inputs {
		var b strings.Builder
		for _, s := range m.Spans(in) {
			if s.Match && !m.Matches(s.Text) {
				t.Errorf("span %q marked as match but does not match", s.Text)
			}
			b.WriteString(s.Text)
		}
		if b.String() != in {
			t.Errorf("Spans(%q) reassembled to %q", in, b.String())
		}
	}
}

func TestMatcher_SurnameOnly(t *testing.T) {
	m := MustMatcher(Owner{Surname: "Ajnabi"})

	if !m.IsFirstAuthor("Ajnabi, Lee") {
		t.Error("surname-only owner should match leading surname")
	}
	if m.IsFirstAuthor("Ajnabian, Lee") {
		t.Error("surname-only owner should not match a longer surname")
	}
	if got := m.Highlight("Lee, Ajnabi"); got != "Lee, <strong>Ajnabi</strong>" {
		t.Errorf("Highlight() = %q", got)
	}
}

func TestMatcher_MultipleInitials(t *testing.T) {
	m := MustMatcher(Owner{Surname: "Ajnabi", Initials: "J.A."})

	for _, s := range []string{"Ajnabi, J. A.", "Ajnabi, JA", "J.A. Ajnabi", "J. A. Ajnabi"} {
		if !m.IsFirstAuthor(s) {
			t.Errorf("IsFirstAuthor(%q) = false, want true", s)
		}
	}
	if m.IsFirstAuthor("Ajnabi, J.") {
		t.Error("a single initial should not match a two-initial owner")
	}
}

func TestMatcher_NonASCIISurname(t *testing.T) {
	m := MustMatcher(Owner{Surname: "Özdemir", Initials: "A"})

	tests := []struct {
		authors   string
		first     bool
		highlight string
	}{
		{"Özdemir, A., Lee, K.", true, "<strong>Özdemir, A.</strong>, Lee, K."},
		{"Lee, K., Özdemir, A.", false, "Lee, K., <strong>Özdemir, A.</strong>"},
		{"A. Özdemir, K. Lee", true, "<strong>A. Özdemir</strong>, K. Lee"},
		{"K. Lee, a. özdemir", false, "K. Lee, <strong>a. özdemir</strong>"},
		{"Özdemirci, A.", false, "Özdemirci, A."},
		{"Lee, K., Çelik-Özdemir, A.", false, "Lee, K., Çelik-Özdemir, A."},
	}
	for _, tt := range tests {
		t.Run(tt.authors, func(t *testing.T) {
			if got := m.IsFirstAuthor(tt.authors); got != tt.first {
				t.Errorf("IsFirstAuthor(%q) = %v, want %v", tt.authors, got, tt.first)
			}
			if got := m.Highlight(tt.authors); got != tt.highlight {
				t.Errorf("Highlight(%q) = %q, want %q", tt.authors, got, tt.highlight)
			}
		})
	}
}
