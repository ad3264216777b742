package input

import (
	"strings"
	"testing"
)

// TestParseRows tests CSV row parsing.
func TestParseRows(t *testing.T) {
	t.Parallel()

	t.Run("parses complete rows", func(t *testing.T) {
		t.Parallel()

		csv := "example.com,https://example.com/about,About Us\n" +
			"https://other.com,https://other.com/x,\n"

		rows := ParseRows(strings.NewReader(csv))
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}

		if rows[0].RowNum != 1 || rows[0].Site != "https://example.com" ||
			rows[0].Link != "https://example.com/about" || rows[0].Anchor != "About Us" {
			t.Errorf("unexpected first row: %+v", rows[0])
		}
		if rows[1].Site != "https://other.com" || rows[1].Anchor != "" {
			t.Errorf("unexpected second row: %+v", rows[1])
		}
	})

	t.Run("anchor column optional", func(t *testing.T) {
		t.Parallel()

		rows := ParseRows(strings.NewReader("a.com,https://a.com/x\n"))
		if len(rows) != 1 || rows[0].Anchor != "" {
			t.Fatalf("expected 1 row with empty anchor, got %+v", rows)
		}
	})

	t.Run("drops invalid rows but preserves row numbers", func(t *testing.T) {
		t.Parallel()

		csv := "just-one-column\n" +
			",https://missing-site.com/x\n" +
			"b.com,https://b.com/y,B\n"

		rows := ParseRows(strings.NewReader(csv))
		if len(rows) != 1 {
			t.Fatalf("expected 1 valid row, got %d", len(rows))
		}
		if rows[0].RowNum != 3 {
			t.Errorf("expected dropped lines to keep their numbers, got row_num %d", rows[0].RowNum)
		}
	})

	t.Run("scheme defaulted only when missing", func(t *testing.T) {
		t.Parallel()

		csv := "http://plain.com,http://plain.com/x\n" +
			"bare.com,https://bare.com/y\n"

		rows := ParseRows(strings.NewReader(csv))
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0].Site != "http://plain.com" {
			t.Errorf("expected existing scheme kept, got %q", rows[0].Site)
		}
		if rows[1].Site != "https://bare.com" {
			t.Errorf("expected https default, got %q", rows[1].Site)
		}
	})

	t.Run("quoted anchor with comma", func(t *testing.T) {
		t.Parallel()

		rows := ParseRows(strings.NewReader(`a.com,https://a.com/x,"Hello, World"` + "\n"))
		if len(rows) != 1 || rows[0].Anchor != "Hello, World" {
			t.Fatalf("expected quoted anchor preserved, got %+v", rows)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		if rows := ParseRows(strings.NewReader("")); len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	})
}

// TestParseDomainList tests host list parsing.
func TestParseDomainList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "newline separated",
			in:   "a.com\nb.com\nc.com",
			want: []string{"a.com", "b.com", "c.com"},
		},
		{
			name: "comma separated",
			in:   "a.com, b.com,c.com",
			want: []string{"a.com", "b.com", "c.com"},
		},
		{
			name: "mixed separators and blanks",
			in:   "a.com\n\n , b.com",
			want: []string{"a.com", "b.com"},
		},
		{
			name: "scheme and www stripped",
			in:   "https://www.a.com/\nhttp://b.com",
			want: []string{"a.com", "b.com"},
		},
		{
			name: "lowercased",
			in:   "EXAMPLE.com",
			want: []string{"example.com"},
		},
		{
			name: "trailing slashes removed",
			in:   "a.com///",
			want: []string{"a.com"},
		},
		{
			name: "duplicates dropped keeping first-seen order",
			in:   "b.com\na.com\nb.com\na.com",
			want: []string{"b.com", "a.com"},
		},
		{
			name: "duplicates after normalization",
			in:   "https://www.a.com/, a.com\nA.COM",
			want: []string{"a.com"},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseDomainList(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("position %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
