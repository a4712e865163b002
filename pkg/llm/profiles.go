package llm

// Sampling profiles used by the study features. Conversation is looser,
// notes and exams stay close to the source material.

func TutorProfile() []Option {
	return []Option{WithTemperature(0.8), WithTopK(40), WithTopP(0.95), WithMaxTokens(1024)}
}

func GeneralProfile() []Option {
	return []Option{WithTemperature(0.7), WithTopK(40), WithTopP(0.95), WithMaxTokens(1024)}
}

func NotesProfile() []Option {
	return []Option{WithTemperature(0.3), WithTopK(20), WithTopP(0.8), WithMaxTokens(1024)}
}

func ExamProfile() []Option {
	return []Option{WithTemperature(0.3), WithTopK(20), WithTopP(0.8), WithMaxTokens(1024)}
}
