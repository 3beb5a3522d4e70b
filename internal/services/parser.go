package services

import (
	"strings"
	"unicode/utf8"

	"studybuddy/internal/models"
)

const (
	MinFlashcards = 3
	MaxFlashcards = 8
	MinQuiz       = 2
	MaxQuiz       = 5

	// QuizOptions is the exact number of options every quiz question carries.
	QuizOptions = 4

	// maxQuestionLineLen bounds the "contains a question mark" heuristic.
	maxQuestionLineLen = 200

	placeholderAnswer = "See study material for details"
	optionLetters     = "ABCD"
)

// ParseSummary returns the model output verbatim.
func ParseSummary(text string) string {
	return text
}

// looksLikeQuestion classifies a trimmed flashcard line as a question. Lines
// without a Q:/Question prefix count when short and containing a '?'.
func looksLikeQuestion(line string) bool {
	if strings.HasPrefix(line, "Q:") || strings.HasPrefix(line, "Question") {
		return true
	}
	return strings.Contains(line, "?") && utf8.RuneCountInString(line) < maxQuestionLineLen
}

func looksLikeAnswer(line string) bool {
	return strings.HasPrefix(line, "A:") || strings.HasPrefix(line, "Answer")
}

func normalizeQuestion(line string) string {
	q := stripTokens(line, "Q:", "Question", ":")
	if !strings.HasSuffix(q, "?") {
		q += "?"
	}
	return q
}

func normalizeAnswer(line string) string {
	return stripTokens(line, "A:", "Answer", ":")
}

// stripTokens removes every occurrence of each token, in order, and trims.
func stripTokens(s string, tokens ...string) string {
	for _, tok := range tokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	return strings.TrimSpace(s)
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

type flashcardState int

const (
	flashcardIdle flashcardState = iota
	flashcardAwaitingAnswer
)

// flashcardParser pairs question lines with the answer line that follows.
type flashcardParser struct {
	state   flashcardState
	pending string
	cards   []models.Flashcard
}

func (p *flashcardParser) feed(line string) {
	switch {
	case looksLikeQuestion(line):
		p.flushPending()
		p.pending = normalizeQuestion(line)
		p.state = flashcardAwaitingAnswer
	case looksLikeAnswer(line):
		if p.state != flashcardAwaitingAnswer {
			return
		}
		answer := normalizeAnswer(line)
		if answer == "" {
			answer = placeholderAnswer
		}
		p.add(p.pending, answer)
		p.pending = ""
		p.state = flashcardIdle
	}
}

// flushPending records an unanswered question with the placeholder answer,
// unless the same question is already present.
func (p *flashcardParser) flushPending() {
	if p.state != flashcardAwaitingAnswer {
		return
	}
	if !p.has(p.pending) {
		p.add(p.pending, placeholderAnswer)
	}
	p.pending = ""
	p.state = flashcardIdle
}

func (p *flashcardParser) has(question string) bool {
	for _, card := range p.cards {
		if card.Question == question {
			return true
		}
	}
	return false
}

func (p *flashcardParser) add(question, answer string) {
	p.cards = append(p.cards, models.Flashcard{
		ID:       len(p.cards) + 1,
		Question: question,
		Answer:   answer,
	})
}

func (p *flashcardParser) finish() []models.Flashcard {
	p.flushPending()
	for i := 0; len(p.cards) < MinFlashcards; i++ {
		filler := fillerFlashcards[i%len(fillerFlashcards)]
		p.add(filler.Question, filler.Answer)
	}
	if len(p.cards) > MaxFlashcards {
		p.cards = p.cards[:MaxFlashcards]
	}
	return p.cards
}

// ParseFlashcards extracts between MinFlashcards and MaxFlashcards cards from
// free-form Q:/A: text, topping up with generic cards when needed.
func ParseFlashcards(text string) []models.Flashcard {
	p := &flashcardParser{}
	for _, line := range splitLines(text) {
		p.feed(line)
	}
	return p.finish()
}

type quizState int

const (
	quizIdle quizState = iota
	quizAccumulating
)

// quizParser collects a QUESTION: line, its lettered options and the
// CORRECT: letter. Options are kept in the order they appear, whatever their
// letters say.
type quizParser struct {
	state     quizState
	question  string
	options   []string
	correct   byte
	questions []models.QuizQuestion
}

func isQuizQuestionStart(line string) bool {
	return strings.HasPrefix(line, "QUESTION:") || strings.HasPrefix(line, "Q:")
}

func isOptionLine(line string) bool {
	if len(line) < 2 || strings.IndexByte(optionLetters, line[0]) < 0 {
		return false
	}
	return line[1] == ')' || line[1] == '.' || line[1] == ':'
}

func isCorrectLine(line string) bool {
	return strings.HasPrefix(line, "CORRECT:") || strings.HasPrefix(line, "ANSWER:")
}

func (p *quizParser) feed(line string) {
	switch {
	case isQuizQuestionStart(line):
		p.finalize()
		p.question = stripTokens(line, "QUESTION:", "Q:")
		p.options = nil
		p.correct = 0
		p.state = quizAccumulating
	case p.state != quizAccumulating:
		return
	case isOptionLine(line):
		p.options = append(p.options, strings.TrimSpace(line[2:]))
	case isCorrectLine(line):
		letter := stripTokens(line, "CORRECT:", "ANSWER:")
		if letter != "" && strings.IndexByte(optionLetters, letter[0]) >= 0 {
			p.correct = letter[0]
		}
	}
}

// finalize turns the pending question into a record when it has a question
// text, a correct letter and at least QuizOptions options.
func (p *quizParser) finalize() {
	if p.state != quizAccumulating {
		return
	}
	p.state = quizIdle
	if p.question == "" || p.correct == 0 || len(p.options) < QuizOptions {
		return
	}
	index := strings.IndexByte(optionLetters, p.correct)
	if index < 0 {
		index = 0
	}
	p.add(p.question, p.options[:QuizOptions], index)
}

func (p *quizParser) add(question string, options []string, correct int) {
	p.questions = append(p.questions, models.QuizQuestion{
		ID:            len(p.questions) + 1,
		Question:      question,
		Options:       append([]string(nil), options...),
		CorrectAnswer: correct,
	})
}

func (p *quizParser) finish() []models.QuizQuestion {
	p.finalize()
	for i := 0; len(p.questions) < MinQuiz; i++ {
		filler := fillerQuiz[i%len(fillerQuiz)]
		p.add(filler.Question, filler.Options, filler.CorrectAnswer)
	}
	if len(p.questions) > MaxQuiz {
		p.questions = p.questions[:MaxQuiz]
	}
	return p.questions
}

// ParseQuiz extracts between MinQuiz and MaxQuiz multiple-choice questions
// from QUESTION:/A)-D)/CORRECT: blocks.
func ParseQuiz(text string) []models.QuizQuestion {
	p := &quizParser{}
	for _, line := range splitLines(text) {
		p.feed(line)
	}
	return p.finish()
}
