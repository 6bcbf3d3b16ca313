package llm

import (
	"fmt"
	"strings"
)

func SummarizePrompt(text string) string {
	return "Summarize the following legal document in at most five short sentences. " +
		"Keep obligations, fees and data use.\n\n" + text
}

func ExplainPrompt(text string) string {
	return "Explain the following legal text in plain English for someone without legal training. " +
		"Call out anything that can cost them money or limit their rights.\n\n" + text
}

func TranslatePrompt(text string, lang string) string {
	return fmt.Sprintf("Translate the following text into the language with ISO code %q. "+
		"Reply with the translation only.\n\n%s", lang, text)
}

func cleanCompletion(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
