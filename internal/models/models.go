package models

// Flashcard is a single question/answer pair. IDs are 1-based and assigned in
// emission order.
type Flashcard struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizQuestion is a multiple-choice question with exactly four options.
// CorrectAnswer indexes into Options.
type QuizQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// StudyBundle is everything generated for one upload.
type StudyBundle struct {
	Summary    string         `json:"summary"`
	Flashcards []Flashcard    `json:"flashcards"`
	Quiz       []QuizQuestion `json:"quiz"`
}

// Clone returns a deep copy so callers can't mutate shared bundles.
func (b StudyBundle) Clone() StudyBundle {
	out := StudyBundle{Summary: b.Summary}
	if b.Flashcards != nil {
		out.Flashcards = append([]Flashcard(nil), b.Flashcards...)
	}
	if b.Quiz != nil {
		out.Quiz = make([]QuizQuestion, len(b.Quiz))
		for i, q := range b.Quiz {
			q.Options = append([]string(nil), q.Options...)
			out.Quiz[i] = q
		}
	}
	return out
}
