package service

import "github.com/aliskhannn/deutsch-quiz/internal/domain/entities"

// Score compares submitted answers with the answer key. A prompt missing from
// answers counts as unanswered. A nil key yields an empty report.
func Score(key *entities.AnswerKey, answers map[string]string) entities.ScoreReport {
	if key == nil {
		return entities.ScoreReport{Outcomes: []entities.AnswerOutcome{}}
	}

	topic := key.Topic
	report := entities.ScoreReport{
		Topic:    &topic,
		Total:    len(key.Entries),
		Outcomes: make([]entities.AnswerOutcome, 0, len(key.Entries)),
	}

	for _, entry := range key.Entries {
		outcome := entities.AnswerOutcome{
			Prompt:        entry.Prompt,
			CorrectAnswer: entry.Correct,
		}

		if answer, ok := answers[entry.Prompt]; ok {
			outcome.UserAnswer = &answer
			outcome.IsCorrect = answer == entry.Correct
		}

		if outcome.IsCorrect {
			report.Score++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report
}
