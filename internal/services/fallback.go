package services

import "studybuddy/internal/models"

// fillerFlashcards top up a short flashcard list. The first two are always
// used in this order; the third only matters for empty input.
var fillerFlashcards = []models.Flashcard{
	{
		Question: "What are the main topics covered in this material?",
		Answer:   "The material covers key concepts and important information relevant to the subject.",
	},
	{
		Question: "How can this knowledge be applied practically?",
		Answer:   "This knowledge can be applied to solve problems and understand related concepts.",
	},
	{
		Question: "Which key terms from this material should you remember?",
		Answer:   "Review the definitions and terminology introduced throughout the material.",
	},
}

// fillerQuiz tops up a short quiz. The first entry is the standard filler;
// the second is only reached when no question parsed at all.
var fillerQuiz = []models.QuizQuestion{
	{
		Question: "What is the primary focus of this study material?",
		Options: []string{
			"Technical implementation details",
			"Theoretical concepts and frameworks",
			"Key concepts and main ideas presented",
			"Historical background and context",
		},
		CorrectAnswer: 2,
	},
	{
		Question: "What is the best way to review this material?",
		Options: []string{
			"Read it once quickly",
			"Memorize every sentence",
			"Skip the difficult sections",
			"Test yourself on the key concepts",
		},
		CorrectAnswer: 3,
	},
}

// aiAttemptedBundle is served when the model was called but something failed.
var aiAttemptedBundle = models.StudyBundle{
	Summary: "# AI-Generated Summary\n\nThe AI processing encountered a temporary issue, but here's a sample of what you'll get:\n\n## Key Features\n- **Smart Summaries**: Concise overviews of your study materials\n- **Interactive Flashcards**: Test your knowledge with Q&A cards\n- **Practice Quizzes**: Multiple-choice questions for self-assessment\n\n## How It Works\n1. Upload PDF or text files\n2. AI analyzes the content\n3. Get instant learning resources\n\n*Note: The AI is currently experiencing high demand. Please try again shortly.*",
	Flashcards: []models.Flashcard{
		{ID: 1, Question: "What does AI Study Buddy do?", Answer: "It transforms study materials into interactive learning resources using AI."},
		{ID: 2, Question: "What file types are supported?", Answer: "PDF, TXT, and MD files can be processed."},
		{ID: 3, Question: "How are summaries generated?", Answer: "AI analyzes the content and creates structured, topic-wise summaries."},
	},
	Quiz: []models.QuizQuestion{
		{
			ID:       1,
			Question: "What is the main purpose of AI Study Buddy?",
			Options: []string{
				"To replace teachers",
				"To create interactive learning resources from study materials",
				"To generate random questions",
				"To convert images to text",
			},
			CorrectAnswer: 1,
		},
	},
}

// aiUnavailableBundle is served when no API key is configured.
var aiUnavailableBundle = models.StudyBundle{
	Summary: "# AI Study Buddy - Sample Output\n\n## 📚 How to Get Started\n\n1. **Get your Gemini API Key** from https://aistudio.google.com/\n2. **Add it to the .env file** in your backend folder\n3. **Restart the server** and try uploading files again\n\n## 🔧 Current Status\n- AI Features: Ready\n- File Processing: Working\n- Sample Mode: Active\n\nOnce configured, you'll get AI-generated summaries, flashcards, and quizzes!",
	Flashcards: []models.Flashcard{
		{ID: 1, Question: "Where do I get the Gemini API key?", Answer: "Visit https://aistudio.google.com/ and create a free API key"},
		{ID: 2, Question: "What file types are supported?", Answer: "PDF, TXT, and MD files"},
		{ID: 3, Question: "How do I enable AI features?", Answer: "Add your Gemini API key to the .env file and restart the server"},
	},
	Quiz: []models.QuizQuestion{
		{
			ID:       1,
			Question: "What is the first step to enable AI features?",
			Options: []string{
				"Install more Python packages",
				"Get a Gemini API key from Google AI Studio",
				"Restart your computer",
				"Pay for a subscription",
			},
			CorrectAnswer: 1,
		},
	},
}

// CannedBundle returns a fresh copy of the static sample content. aiAttempted
// selects the "AI failed" variant over the "AI not configured" one.
func CannedBundle(aiAttempted bool) models.StudyBundle {
	if aiAttempted {
		return aiAttemptedBundle.Clone()
	}
	return aiUnavailableBundle.Clone()
}
