package answer

import (
	"strings"
	"testing"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/retrieval"
)

func TestBuildPrompt_FullRequest(t *testing.T) {
	req := domain.AnswerRequest{
		QueryText:      "banana leaf spot treatment",
		CropType:       "Banana",
		FarmerLocation: "Wayanad",
		Urgency:        "high",
		ImagePath:      "/uploads/leaf.jpg",
		AudioPath:      "/uploads/question.ogg",
	}
	contexts := []retrieval.Match{
		matchWithScore("first", 0.9),
		matchWithScore("second", 0.4),
	}

	prompt := buildPrompt(req, domain.LanguageEnglish, contexts)

	for _, want := range []string{
		systemPreamble,
		englishRule,
		"[Context 1] context text for first",
		"[Context 2] context text for second",
		"Crop: Banana | Location: Wayanad | Urgency: high | " +
			"Image provided: /uploads/leaf.jpg | Audio provided: /uploads/question.ogg",
		"Question: banana leaf spot treatment",
		formatRule,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}
}

func TestBuildPrompt_MalayalamDirective(t *testing.T) {
	prompt := buildPrompt(domain.AnswerRequest{QueryText: "q"}, domain.LanguageMalayalam, nil)
	if !strings.Contains(prompt, malayalamRule) {
		t.Error("prompt missing strict Malayalam directive")
	}
	if strings.Contains(prompt, englishRule) {
		t.Error("prompt carries English directive for Malayalam request")
	}
}

func TestBuildPrompt_EmptyOptionalFields(t *testing.T) {
	prompt := buildPrompt(domain.AnswerRequest{QueryText: "q"}, domain.LanguageEnglish, nil)

	if strings.Contains(prompt, "Crop:") || strings.Contains(prompt, "Location:") {
		t.Error("prompt carries optional fields that were not set")
	}
	// Empty context list still yields a well-formed prompt.
	if !strings.Contains(prompt, "Knowledge:") || !strings.Contains(prompt, "Question: q") {
		t.Errorf("prompt malformed:\n%s", prompt)
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := domain.AnswerRequest{QueryText: "q", CropType: "Rice"}
	ctxs := []retrieval.Match{matchWithScore("d", 0.5)}

	if buildPrompt(req, "en", ctxs) != buildPrompt(req, "en", ctxs) {
		t.Error("identical inputs produced different prompts")
	}
}
