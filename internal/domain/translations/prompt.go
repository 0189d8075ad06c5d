package translations

import (
	"strings"

	"pet-translator/internal/ports/llm"
)

const systemInstruction = "You are a pet translator that converts pet sounds and behaviors into fun, relatable human language. Keep translations short, entertaining, and accurate to the context."

var moodHints = map[string]string{
	"hungry":  "The context suggests the pet might be hungry or wanting food. ",
	"playful": "The context suggests the pet is playful and energetic, wanting to play. ",
	"moody":   "The context suggests the pet is moody or expressing some annoyance. ",
	"sleepy":  "The context suggests the pet is tired or sleepy. ",
}

// BuildPrompt arma el prompt de usuario. Partes opcionales: transcripción y pista de mood
// (solo para los cuatro moods conocidos, match exacto).
func BuildPrompt(petType, transcription, mode string) string {
	var b strings.Builder
	b.WriteString("You are a professional pet translator. A ")
	b.WriteString(petType)
	b.WriteString(" just made a sound. ")

	if transcription != "" {
		b.WriteString(`The actual sounds detected were: "`)
		b.WriteString(transcription)
		b.WriteString(`". `)
	}

	if hint, ok := moodHints[mode]; ok {
		b.WriteString(hint)
	}

	b.WriteString("Based on ")
	if transcription != "" {
		b.WriteString("the actual sounds and ")
	}
	b.WriteString("the ")
	b.WriteString(petType)
	b.WriteString("'s typical behavior, translate what they're trying to say into a short, fun, and relatable human sentence. Keep it under 20 words. Be creative and entertaining but accurate to what a ")
	b.WriteString(petType)
	b.WriteString(" would actually be thinking or feeling in this situation.")
	return b.String()
}

func completionRequest(prompt string) llm.CompletionRequest {
	return llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemInstruction},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature: 0.8,
		MaxTokens:   100,
	}
}
