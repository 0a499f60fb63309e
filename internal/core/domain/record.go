package domain

// QuestionType is the coarse category of a question, derived from the
// first word of the original (pre-normalisation) question text.
type QuestionType string

// The six fixed question types.
const (
	QuestionWhat  QuestionType = "what"
	QuestionWhy   QuestionType = "why"
	QuestionHow   QuestionType = "how"
	QuestionWhen  QuestionType = "when"
	QuestionWho   QuestionType = "who"
	QuestionOther QuestionType = "other"
)

// IsValid returns true if the question type is one of the fixed tags.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionWhat, QuestionWhy, QuestionHow, QuestionWhen, QuestionWho, QuestionOther:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t QuestionType) String() string {
	return string(t)
}

// AllQuestionTypes returns every recognised question type.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{
		QuestionWhat,
		QuestionWhy,
		QuestionHow,
		QuestionWhen,
		QuestionWho,
		QuestionOther,
	}
}

// Record is one question/answer pair from an ingested knowledge base.
// Records are immutable after ingestion and are destroyed with their
// owning source.
type Record struct {
	// ID is the unique identifier for the record.
	ID string

	// SourceID links to the Source that produced this record.
	SourceID string

	// Question is the original question text as it appeared in the file.
	Question string

	// Answer is the stored answer text.
	Answer string

	// Normalized is the question text after normalisation
	// (lowercased, stopwords removed, lemmatized). Embeddings are
	// computed over this field.
	Normalized string

	// Type is the question type derived from the original question.
	Type QuestionType

	// Position is the ordinal row position within the source file.
	Position int
}

// Candidate is a per-query search hit: a record plus its similarity
// distance to the query. Candidates are never persisted.
type Candidate struct {
	// Record is the matched record.
	Record Record

	// Distance is the embedding distance to the query.
	// Non-negative, lower is more similar. Not a probability.
	Distance float64

	// SourceID identifies the source whose index produced the hit.
	SourceID string
}

// Query is a user question after preprocessing. Derived once per ask.
type Query struct {
	// Raw is the question exactly as the user typed it.
	Raw string

	// Normalized is the normalised form used for embedding search.
	Normalized string

	// Type is the question type derived from the raw text.
	Type QuestionType
}
