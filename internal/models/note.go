// Package models defines the domain types for Glosa.
package models

import "time"

// Note is a free-text document together with the result of its last analysis.
type Note struct {
	ID            int64          `json:"id"`
	Title         *string        `json:"title"`
	Content       string         `json:"content"`
	AnalyzedWords []AnalyzedWord `json:"analyzed_words"`
	AnalyzedCount int            `json:"analyzed_count"`
	TotalWords    int            `json:"total_words"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// AnalyzedWord pairs a candidate word with the definition it resolved to.
type AnalyzedWord struct {
	Word       string `json:"word"`
	Definition *Entry `json:"definition"`
}
