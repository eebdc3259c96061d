// Package locale holds the bilingual display text: export column labels,
// month names, date layouts and the built-in category catalog. Callers pass
// the active language explicitly; there is no ambient locale state.
package locale

import (
	"time"

	"mizan/internal/core"
)

// Lang is a supported interface language.
type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"
)

// CurrencyCode is the fixed regional currency suffix used on displayed and
// exported amounts.
const CurrencyCode = "SAR"

// Parse normalizes a language tag, defaulting to Arabic like the original
// interface.
func Parse(s string) Lang {
	if s == string(English) {
		return English
	}
	return Arabic
}

// ColumnLabels returns the four export column headers (date, title,
// category, amount) in the given language.
func ColumnLabels(l Lang) []string {
	if l == English {
		return []string{"Date", "Title", "Category", "Amount"}
	}
	return []string{"التاريخ", "العنوان", "الفئة", "المبلغ"}
}

// DateLayout returns the locale's short date form.
func DateLayout(l Lang) string {
	if l == English {
		return "1/2/2006"
	}
	return "02/01/2006"
}

var monthsEnglish = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var monthsArabic = []string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// MonthName returns the calendar month label used for series buckets.
func MonthName(m time.Month, l Lang) string {
	if m < time.January || m > time.December {
		return ""
	}
	if l == English {
		return monthsEnglish[m-1]
	}
	return monthsArabic[m-1]
}

var (
	expenseArabic  = []string{"طعام", "مواصلات", "سكن", "فواتير", "صحة", "تسوق", "ترفيه", "أخرى"}
	expenseEnglish = []string{"Food", "Transport", "Housing", "Bills", "Health", "Shopping", "Entertainment", "Other"}
	incomeArabic   = []string{"راتب", "عمل حر", "استثمار", "هدية", "مكافأة", "أخرى"}
	incomeEnglish  = []string{"Salary", "Freelance", "Investment", "Gift", "Bonus", "Other"}
)

// Builtins returns the built-in category labels for a transaction type:
// 8 expense labels and 6 income labels per language. The slice is a copy and
// safe for callers to append to.
func Builtins(t core.TransactionType, l Lang) []string {
	var src []string
	switch {
	case t == core.TypeExpense && l == English:
		src = expenseEnglish
	case t == core.TypeExpense:
		src = expenseArabic
	case t == core.TypeIncome && l == English:
		src = incomeEnglish
	case t == core.TypeIncome:
		src = incomeArabic
	}
	return append([]string(nil), src...)
}
