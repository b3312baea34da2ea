package notes

// The instruction templates insist on preserving lecture order: study notes
// that rearrange topics are worse than none, because students revise
// against the recording.

const singlePassPrompt = `Create comprehensive and detailed study notes from this lecture transcription:

%s

CRITICAL Instructions:
1. Maintain the EXACT ORDER of topics as they appear in the transcription - do not rearrange
2. Extract and include ALL concepts, definitions, explanations, and examples mentioned
3. Preserve the original sequence and flow of the lecture content
4. Include every specific detail and explanation from the transcription
5. Organize content with clear headings and structure while maintaining the original order
6. Highlight key points important for exams
7. Use markdown formatting for better readability
8. Do NOT skip, omit, or reorder any content - preserve everything in sequence

COMPREHENSIVE STUDY NOTES (maintaining exact order and all content):`

const chunkPrompt = `Create comprehensive and detailed notes from this lecture transcription segment (Part %d of %d):

%s

CRITICAL Instructions:
1. Maintain the EXACT ORDER of topics as they appear in the transcription - do not rearrange or reorder
2. Extract and include ALL concepts, definitions, explanations, and examples mentioned
3. Preserve the original logical flow and sequence of the lecture content
4. Use clear, organized formatting with bullet points and sections
5. Do NOT skip, omit, or summarize any content - preserve everything
6. Highlight key points that would be important for exams

DETAILED NOTES (maintaining exact order):`

const combinePrompt = `Using the following detailed notes from different parts of a lecture, create a final, well-organized comprehensive study note:

%s

CRITICAL Instructions:
1. Preserve the EXACT ORDER of all topics and concepts as they appear in the notes above
2. Do NOT rearrange, reorganize, or change the sequence of topics
3. Include ALL content from every section - nothing should be omitted
4. Remove redundancy ONLY if the exact same information is repeated, but keep the order
5. Create clear sections and subsections with appropriate headings while maintaining sequence
6. Use markdown formatting for better readability

Create a complete, exam-ready study note that maintains the exact order and includes all content:`
