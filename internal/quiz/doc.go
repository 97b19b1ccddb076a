// Package quiz parses multiple-choice answer sheets from CSV and grades them.
//
// Parsing locates the question, correct_answer and user_answer columns by
// header name, so column order and extra columns do not matter. Grading is a
// pure function over the parsed rows: answers match when they are equal after
// trimming surrounding whitespace and lower-casing.
package quiz
