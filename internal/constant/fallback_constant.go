package constant

const (
	// FallbackNotesTemplate takes the topic four times.
	FallbackNotesTemplate = `# %[1]s - Notes

## 1. Introduction
This study session covered key concepts related to %[1]s.

## 2. Key Concepts
- Main principles discussed
- Important definitions
- Core concepts explained

## 3. Detailed Explanation
The session provided comprehensive coverage of %[1]s fundamentals, including theoretical background and practical applications.

## 4. Examples
Practical examples and real-world applications were discussed to illustrate the concepts.

## 5. Important Points
- Key principles to remember
- Critical information highlighted
- Essential formulas or rules

## 6. Summary
%[1]s involves understanding the fundamental principles and their practical applications in real-world scenarios.

## 7. Keywords
%[1]s, concepts, principles, applications, theory, practice`

	FallbackSessionNoteTemplate = `## %[1]s

Key points from recent discussion:

- Main concepts covered in the conversation
- Important details and explanations
- Practical applications discussed

*Note: This is a summary of the recent conversation about %[1]s.*`

	DefaultTopic            = "Study Session"
	DefaultSessionNoteTopic = "Discussion Topic"
	DefaultExamTopic        = "Study Material"
)
