package constant

const (
	NotesCommandReply = "I'll create comprehensive notes from our discussion for you! 📝"
	ExamCommandReply  = "Let me create an exam to test your understanding! 📋"

	NotesCreatedReplyTemplate = "✅ Notes created successfully! Check the Notes section in the sidebar to view \"%s\"."
	NotesFailedReply          = "❌ Failed to create notes. Please try again."
	ExamCreatedReplyTemplate  = "📋 Exam created successfully! Check the Exams section in the sidebar to take \"%s\"."
	ExamFailedReply           = "❌ Failed to create exam. Make sure you have notes available."

	ChatErrorReply = "Sorry, I encountered an error. Please try again."

	EmptyAnswerMessage = "Please provide an answer before submitting."
	NoNotesForExam     = "No notes available for exam generation. Please create some study sessions with notes first."
)

var TutorFallbackReplies = []string{
	"Let me explain this step by step. First, let's start with the basic idea. Do you understand this part?",
	"Good question. Let's take this slowly. The main concept here is simple. Are you following so far?",
	"I'll help you understand this. Let's begin with the foundation. Does this make sense to you?",
	"Let's work through this together. I'll explain it in small steps. Ready to start?",
}

var (
	NotesCommandKeywords = []string{"make notes", "generate notes", "create notes", "save notes", "notes please"}
	ExamCommandKeywords  = []string{"make exam", "create exam", "generate exam", "make test", "create test", "quiz me"}
)

// TopicKeywords are matched in order against the first user message.
var TopicKeywords = []string{
	"physics", "chemistry", "biology", "mathematics", "math",
	"history", "geography", "literature", "science", "algebra",
	"calculus", "geometry", "newton", "einstein", "photosynthesis",
	"cell", "atom", "molecule", "equation", "theorem",
}

const (
	WelcomeStudySession = "Hello! I'm your personal teacher and I'm excited to help you learn! 🎓 Whether you want to explore a new topic, solve problems, or dive deep into any subject, I'm here to guide you step by step. What would you like to learn about today?"

	WelcomeNotes = "📝 Hello! I'm your notes assistant. I can help you organize, summarize, and create comprehensive study notes from your learning sessions. What topic would you like to create notes for?"

	WelcomeExams = `📋 Welcome to Exam Mode! I'm your exam preparation assistant. I can help you:

• Create practice tests from your study materials
• Generate questions on specific topics
• Review and explain exam concepts
• Provide study strategies for better performance

What subject or topic would you like to prepare for today?`
)
