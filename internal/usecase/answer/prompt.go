package answer

import (
	"fmt"
	"strings"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/retrieval"
)

const systemPreamble = "You are Kerala Krishi AI, a helpful, reliable agricultural advisor. " +
	"Be concise, step-wise, and safe."

const malayalamRule = "RESPONSE LANGUAGE: Respond STRICTLY in Malayalam. " +
	"Do NOT use English words except crop/chemical names if unavoidable."

const englishRule = "RESPONSE LANGUAGE: Respond in English."

const formatRule = "Provide clearly labeled sections: " +
	"1) Direct Answer, 2) Steps, 3) Safety, 4) Unclear Information."

// buildPrompt assembles the structured instruction sent to the model:
// preamble, language directive, position-labeled contexts, flattened
// optional request fields, the literal question, and the section format.
// An empty context list still produces a valid prompt.
func buildPrompt(req domain.AnswerRequest, language string, contexts []retrieval.Match) string {
	ctxBlocks := make([]string, len(contexts))
	for i, m := range contexts {
		ctxBlocks[i] = fmt.Sprintf("[Context %d] %s", i+1, m.Document.Text)
	}

	var userCtx []string
	if req.CropType != "" {
		userCtx = append(userCtx, "Crop: "+req.CropType)
	}
	if req.FarmerLocation != "" {
		userCtx = append(userCtx, "Location: "+req.FarmerLocation)
	}
	if req.Urgency != "" {
		userCtx = append(userCtx, "Urgency: "+req.Urgency)
	}
	if req.ImagePath != "" {
		userCtx = append(userCtx, "Image provided: "+req.ImagePath)
	}
	if req.AudioPath != "" {
		userCtx = append(userCtx, "Audio provided: "+req.AudioPath)
	}

	langRule := englishRule
	if language == domain.LanguageMalayalam {
		langRule = malayalamRule
	}

	return fmt.Sprintf("%s\n%s\n\nKnowledge:\n%s\n\nUserContext: %s\n\nQuestion: %s\n\n%s",
		systemPreamble,
		langRule,
		strings.Join(ctxBlocks, "\n\n"),
		strings.Join(userCtx, " | "),
		req.QueryText,
		formatRule,
	)
}
