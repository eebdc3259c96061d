// Package insight produces the AI-generated narrative analysis of a
// transaction set. The upstream model is reached through the OpenRouter
// chat-completions API; any failure degrades to a localized static fallback
// so the user always receives a readable analysis.
package insight

import (
	"context"

	"mizan/internal/core"
	"mizan/internal/locale"
)

// Analysis is the structured narrative returned to the client. Field names
// follow the wire contract the frontend expects.
type Analysis struct {
	Summary            string   `json:"summary"`
	Hotspots           []string `json:"hotspots"`
	RatioAdvice        string   `json:"ratioAdvice"`
	SavingsSuggestions []string `json:"savingsSuggestions"`
	RiskAlerts         []string `json:"riskAlerts"`
}

// Analyzer is the port the HTTP layer consumes.
type Analyzer interface {
	Analyze(ctx context.Context, txs []core.Transaction, lang locale.Lang) Analysis
}

// Fallback is the static narrative served when the upstream model is
// unreachable or returns garbage.
func Fallback(lang locale.Lang) Analysis {
	if lang == locale.English {
		return Analysis{
			Summary:            "Sorry, the smart analysis service encountered a technical issue.",
			Hotspots:           []string{"Please try again later."},
			RatioAdvice:        "Make sure to review your expenses manually for now.",
			SavingsSuggestions: []string{},
			RiskAlerts:         []string{"AI connection failed."},
		}
	}
	return Analysis{
		Summary:            "عذراً، خدمة التحليل الذكي واجهت مشكلة فنية.",
		Hotspots:           []string{"يرجى المحاولة لاحقاً."},
		RatioAdvice:        "تأكد من مراجعة مصاريفك يدوياً حالياً.",
		SavingsSuggestions: []string{},
		RiskAlerts:         []string{"فشل الاتصال بالذكاء الاصطناعي."},
	}
}
