package textnorm

// defaultStopwords returns the English stopword set used during
// normalisation. Question words are included on purpose: the question
// type is classified from the original text before stopword removal.
func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else",
		"for", "to", "of", "in", "on", "at", "by", "with", "as",
		"is", "are", "was", "were", "be", "been", "being",
		"am", "do", "does", "did", "doing", "have", "has", "had",
		"it", "its", "this", "that", "these", "those",
		"i", "me", "my", "we", "our", "you", "your", "he", "him",
		"his", "she", "her", "they", "them", "their",
		"what", "which", "who", "whom", "why", "how", "when", "where",
		"from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through",
		"during", "before", "after", "above", "below", "out", "off",
		"own", "same", "too", "very", "can", "will", "just", "should",
		"now", "not", "no", "nor", "only", "both", "each", "few",
		"more", "most", "other", "some", "any", "all",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// irregularLemmas maps irregular plural forms to their singular base.
func irregularLemmas() map[string]string {
	return map[string]string{
		"children": "child",
		"men":      "man",
		"women":    "woman",
		"people":   "person",
		"feet":     "foot",
		"teeth":    "tooth",
		"mice":     "mouse",
		"geese":    "goose",
		"leaves":   "leaf",
		"lives":    "life",
		"knives":   "knife",
		"wives":    "wife",
		"indices":  "index",
		"matrices": "matrix",
		"criteria": "criterion",
		"data":     "datum",
	}
}
