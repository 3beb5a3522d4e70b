package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"studybuddy/internal/models"
)

const (
	summaryContextLimit = 6000
	itemsContextLimit   = 4000
)

// StudyService turns extracted document text into a StudyBundle using the
// configured generator, falling back to canned content on any failure.
type StudyService struct {
	ai     Generator
	logger *zap.Logger
}

// NewStudyService wires the orchestrator. A nil generator means AI is
// disabled and every request gets the sample bundle.
func NewStudyService(ai Generator, logger *zap.Logger) *StudyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudyService{ai: ai, logger: logger}
}

// AIEnabled reports whether a generator is configured.
func (s *StudyService) AIEnabled() bool {
	return s.ai != nil
}

// Process runs the summary, flashcard and quiz prompts in that order. It
// never fails: errors and panics yield the AI-attempted canned bundle.
func (s *StudyService) Process(ctx context.Context, text string) (bundle models.StudyBundle) {
	if !s.AIEnabled() {
		s.logger.Info("ai unavailable, using sample data")
		return CannedBundle(false)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("study processing panicked", zap.Any("panic", r))
			bundle = CannedBundle(true)
		}
	}()

	bundle, err := s.generate(ctx, text)
	if err != nil {
		s.logger.Warn("ai processing failed, using sample data", zap.Error(err))
		return CannedBundle(true)
	}
	return bundle
}

func (s *StudyService) generate(ctx context.Context, text string) (models.StudyBundle, error) {
	s.logger.Info("processing study material", zap.Int("chars", len([]rune(text))))

	summary, err := s.stage(ctx, "summary", summaryPrompt(text))
	if err != nil {
		return models.StudyBundle{}, err
	}

	rawCards, err := s.stage(ctx, "flashcards", flashcardPrompt(text))
	if err != nil {
		return models.StudyBundle{}, err
	}
	flashcards := ParseFlashcards(rawCards)
	s.logger.Info("parsed flashcards", zap.Int("count", len(flashcards)))

	rawQuiz, err := s.stage(ctx, "quiz", quizPrompt(text))
	if err != nil {
		return models.StudyBundle{}, err
	}
	quiz := ParseQuiz(rawQuiz)
	s.logger.Info("parsed quiz questions", zap.Int("count", len(quiz)))

	return models.StudyBundle{
		Summary:    ParseSummary(summary),
		Flashcards: flashcards,
		Quiz:       quiz,
	}, nil
}

func (s *StudyService) stage(ctx context.Context, name, prompt string) (string, error) {
	s.logger.Debug("generating", zap.String("stage", name))
	out, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate %s: %w", name, err)
	}
	return out, nil
}

// truncateRunes keeps at most limit characters of s.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func summaryPrompt(text string) string {
	return `Please create a comprehensive, well-structured summary of the following study material.
Organize it with clear headings and bullet points. Focus on key concepts and main ideas.

STUDY MATERIAL:
` + truncateRunes(text, summaryContextLimit) + `

Please provide a detailed summary:`
}

func flashcardPrompt(text string) string {
	return `Create 5 educational flashcards from this study material. Each flashcard should have:
- A clear question that tests understanding
- A concise, accurate answer

For each flashcard, format it as:
Q: [question]
A: [answer]

STUDY MATERIAL:
` + truncateRunes(text, itemsContextLimit) + `

Create 5 flashcards:`
}

func quizPrompt(text string) string {
	return `Create 3 multiple choice questions based on this study material. For each question:
- Provide a clear question
- 4 plausible options (A, B, C, D)
- Indicate the correct answer

Format each question as:
QUESTION: [question text]
A) [option A]
B) [option B]
C) [option C]
D) [option D]
CORRECT: [letter of correct answer]

STUDY MATERIAL:
` + truncateRunes(text, itemsContextLimit) + `

Create 3 questions:`
}
