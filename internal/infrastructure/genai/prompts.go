package genai

import "fmt"

func standardQuestionsPrompt(jobRole string, count int) string {
	return fmt.Sprintf(`You are an AI assistant designed to generate interview questions for a given job role.

Generate a diverse set of %d HR, %d technical, %d behavioral, and %d aptitude questions suitable for the role. The questions should be highly relevant to the specified job role.

Job Role: %s

Respond with a JSON object with four keys: hrQuestions, technicalQuestions, behavioralQuestions, and aptitudeQuestions. Each key must contain an array of strings representing the corresponding questions. Respond with JSON only.`,
		count, count, count, count, jobRole)
}

func resumeQuestionsPrompt(resumeText string, count int) string {
	return fmt.Sprintf(`You are an expert career coach specializing in helping people prepare for job interviews. You will be provided with the text from a resume, and your job is to generate a list of %d potential interview questions that a hiring manager might ask, based on the content of the resume.

Resume:
%s

Respond with a JSON object with a single key "questions" containing an array of strings. Respond with JSON only.`,
		count, resumeText)
}

func analyzeAnswerPrompt(question, answer, resume string) string {
	p := fmt.Sprintf(`You are an AI interview coach. Provide detailed feedback on a candidate's answer to an interview question.

Instructions:
1. Analyze the answer against the question and the resume if one is provided.
2. Structure the main feedback around the STAR method (Situation, Task, Action, Result).
3. Assign a score from 0 to 100 based on clarity, relevance, structure, and impact.
4. Provide specific grammar feedback and suggest relevant keywords the candidate could have used.

Question: %s
Answer: %s
`, question, answer)

	if resume != "" {
		p += fmt.Sprintf("\nResume:\n%s\n", resume)
	}

	p += `
Respond with a JSON object with keys: feedback (string), score (number), grammarFeedback (string), keywordFeedback (string). Respond with JSON only.`
	return p
}
