package entities

// QuizQuestion is a single multiple choice question shown to the user.
// Correct is always one of Choices.
type QuizQuestion struct {
	Prompt  string   // German term
	Choices []string // shuffled options, exactly one of them is Correct
	Correct string   // Vietnamese translation of Prompt
}

// AnswerKeyEntry maps a question prompt to its correct answer.
type AnswerKeyEntry struct {
	Prompt  string `json:"prompt"`
	Correct string `json:"correct"`
}

// AnswerKey is kept in the user session between quiz generation and submission.
type AnswerKey struct {
	Topic   string           `json:"topic"`   // topic the quiz was generated for
	Entries []AnswerKeyEntry `json:"entries"` // in question order
}

// NewAnswerKey builds the answer key for the generated questions.
// The key holds one entry per prompt: a repeated prompt keeps the position
// of its first question and the answer of its last one.
func NewAnswerKey(topic string, questions []QuizQuestion) *AnswerKey {
	entries := make([]AnswerKeyEntry, 0, len(questions))
	index := make(map[string]int, len(questions))
	for _, q := range questions {
		if i, ok := index[q.Prompt]; ok {
			entries[i].Correct = q.Correct
			continue
		}
		index[q.Prompt] = len(entries)
		entries = append(entries, AnswerKeyEntry{Prompt: q.Prompt, Correct: q.Correct})
	}

	return &AnswerKey{
		Topic:   topic,
		Entries: entries,
	}
}

// AnswerOutcome describes how a single question was answered.
type AnswerOutcome struct {
	Prompt        string
	UserAnswer    *string // nil when the question was left unanswered
	CorrectAnswer string
	IsCorrect     bool
}

// ScoreReport is the outcome of scoring a submitted quiz.
type ScoreReport struct {
	Topic    *string // nil when no quiz was generated in this session
	Score    int
	Total    int
	Outcomes []AnswerOutcome
}
