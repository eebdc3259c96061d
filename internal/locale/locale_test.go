package locale

import (
	"testing"
	"time"

	"mizan/internal/core"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
	}{
		{"en", English},
		{"ar", Arabic},
		{"", Arabic},
		{"fr", Arabic},
	}
	for i, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("case %d: Parse(%q) = %q, want %q", i, tt.in, got, tt.want)
		}
	}
}

func TestColumnLabels(t *testing.T) {
	for _, l := range []Lang{Arabic, English} {
		if got := ColumnLabels(l); len(got) != 4 {
			t.Errorf("ColumnLabels(%q) has %d labels, want 4", l, len(got))
		}
	}
	if got := ColumnLabels(Arabic)[0]; got != "التاريخ" {
		t.Errorf("first Arabic label = %q, want التاريخ", got)
	}
	if got := ColumnLabels(English)[3]; got != "Amount" {
		t.Errorf("last English label = %q, want Amount", got)
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(time.August, Arabic); got != "أغسطس" {
		t.Errorf("MonthName(August, ar) = %q", got)
	}
	if got := MonthName(time.August, English); got != "Aug" {
		t.Errorf("MonthName(August, en) = %q", got)
	}
	if got := MonthName(time.Month(13), English); got != "" {
		t.Errorf("MonthName(13, en) = %q, want empty", got)
	}
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		typ   core.TransactionType
		lang  Lang
		count int
		first string
	}{
		{core.TypeExpense, Arabic, 8, "طعام"},
		{core.TypeExpense, English, 8, "Food"},
		{core.TypeIncome, Arabic, 6, "راتب"},
		{core.TypeIncome, English, 6, "Salary"},
	}
	for i, tt := range tests {
		got := Builtins(tt.typ, tt.lang)
		if len(got) != tt.count {
			t.Fatalf("case %d: got %d builtins, want %d", i, len(got), tt.count)
		}
		if got[0] != tt.first {
			t.Errorf("case %d: first builtin = %q, want %q", i, got[0], tt.first)
		}
	}
}

func TestBuiltins_ReturnsCopy(t *testing.T) {
	a := Builtins(core.TypeExpense, English)
	a[0] = "mutated"
	if b := Builtins(core.TypeExpense, English); b[0] == "mutated" {
		t.Error("Builtins returned shared backing array")
	}
}
