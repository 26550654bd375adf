package author

import "testing"

func TestParseOwner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Owner
	}{
		{"surname only", "Ajnabi", Owner{Surname: "Ajnabi"}},
		{"first last", "Johan Ajnabi", Owner{Surname: "Ajnabi", Initials: "J"}},
		{"abbreviated first", "J. A. Ajnabi", Owner{Surname: "Ajnabi", Initials: "JA"}},
		{"compact abbreviation", "J.A. Ajnabi", Owner{Surname: "Ajnabi", Initials: "JA"}},
		{"last, first", "Ajnabi, Johan", Owner{Surname: "Ajnabi", Initials: "J"}},
		{"hyphenated given name", "Jean-Luc Picard", Owner{Surname: "Picard", Initials: "JL"}},
		{"whitespace", "  Ajnabi  ", Owner{Surname: "Ajnabi"}},
		{"empty", "", Owner{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOwner(tt.input)
			if got != tt.want {
				t.Errorf("ParseOwner(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
