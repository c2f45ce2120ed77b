package mcpserver

// AnalysisGuide describes how Glosa notes are analyzed and how analyzed
// words are shaped, for LLM consumers of the tools below.
const AnalysisGuide = `# Glosa Analysis Guide

Glosa stores free-text Spanish notes and resolves their words against the
RAE dictionary.

## Candidate words

` + "`" + `extract_words` + "`" + ` and ` + "`" + `analyze_note` + "`" + ` (without explicit words) pick candidates the same way:

1. Text is lower-cased and split on anything that is not a letter, digit or
   underscore. Spanish letters (á é í ó ú ñ ü) are kept inside words.
2. Tokens of two characters or fewer, numbers, and common Spanish stop words
   (el, la, de, que, muy, ...) are dropped. Stop words match with or without
   accents.
3. Duplicates are removed; the first occurrence keeps its position.

## Resolution

Each word is looked up in the local cache first. On a miss Glosa asks the
dictionary, then its first spelling suggestion, then an exact-match search.
Words are resolved five at a time with a short pause between groups.
Words that cannot be resolved are skipped; they lower ` + "`" + `analyzed_count` + "`" + ` but never
fail the analysis.

## Analyzed word shape

` + "```" + `json
{
  "word": "perro",
  "definition": {
    "word": "perro",
    "meanings": [{
      "origin": {"raw": "...", "type": "...", "voice": "...", "text": "..."},
      "senses": [{
        "raw": "1. m. Mamífero doméstico... Sin.: can, chucho.",
        "meaning_number": 1,
        "category": "noun",
        "usage": "common",
        "description": "m. Mamífero doméstico...",
        "synonyms": ["can", "chucho"],
        "antonyms": []
      }]
    }]
  }
}
` + "```" + `

` + "`" + `raw` + "`" + ` is the dictionary's original text. ` + "`" + `description` + "`" + ` is the cleaned gloss: the leading
number and the inline "Sin.:"/"Ant.:" lists are removed because synonyms and
antonyms are already listed separately.

## Category and usage codes

Categories: noun (Sustantivo), verb (Verbo), adjective (Adjetivo), adverb
(Adverbio), pronoun (Pronombre), article (Artículo), preposition
(Preposición), conjunction (Conjunción), interjection (Interjección).

Usage: common (Uso común), rare (Uso poco común), outdated (Anticuado),
colloquial (Coloquial), obsolete (En desuso).
`
