package domain

import (
	"regexp"
	"strings"
)

// nonWord casa todo lo que no es carácter de palabra ASCII ([0-9A-Za-z_]) ni espacio.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// Preprocess normaliza un texto en tokens: minúsculas, sin puntuación,
// separado por espacios. No hay stemming ni stop words.
func Preprocess(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), "")
	return strings.Fields(cleaned)
}

// WordCount cuenta las palabras del texto crudo separado por espacios.
// La puntuación suelta cuenta como palabra.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Jaccard calcula |A ∩ B| / |A ∪ B| sobre los conjuntos de tokens.
// Devuelve 0 si ambos están vacíos.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// toSet colapsa duplicados.
func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
