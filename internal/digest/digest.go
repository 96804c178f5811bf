package digest

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/matheuskafuri/mednews/internal/cache"
	"github.com/matheuskafuri/mednews/internal/classify"
)

// Digest summarizes the current window of articles for the home screen
// and the digest subcommand.
type Digest struct {
	Greeting      string
	NewCount      int
	ActiveSources string
	Trending      string
	TopicCounts   []TopicCount
}

// TopicCount pairs a topic with how many window articles matched it.
type TopicCount struct {
	Topic classify.Topic
	Count int
}

// Generate builds a digest from the articles in the current window against
// the full cached corpus (the corpus feeds the TF-IDF trending terms).
func Generate(windowArticles, allArticles []cache.Article) Digest {
	d := Digest{
		Greeting: greeting(time.Now()),
		NewCount: len(windowArticles),
	}

	if len(windowArticles) > 0 {
		d.ActiveSources = activeSources(windowArticles)
		d.Trending = trending(windowArticles, allArticles)
		d.TopicCounts = topicCounts(windowArticles)
	}

	return d
}

func greeting(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func topicCounts(articles []cache.Article) []TopicCount {
	counts := map[classify.Topic]int{}
	for _, a := range articles {
		for _, t := range classify.Split(a.Topics) {
			counts[t]++
		}
	}

	// Canonical topic order keeps the digest stable between runs
	var out []TopicCount
	for _, t := range classify.AllTopics() {
		if counts[t] > 0 {
			out = append(out, TopicCount{Topic: t, Count: counts[t]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func activeSources(articles []cache.Article) string {
	counts := map[string]int{}
	for _, a := range articles {
		counts[a.Source]++
	}

	type sc struct {
		name  string
		count int
	}
	var sorted []sc
	for name, count := range counts {
		sorted = append(sorted, sc{name, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})

	limit := 3
	if len(sorted) < limit {
		limit = len(sorted)
	}

	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		parts[i] = fmt.Sprintf("%s (%d)", sorted[i].name, sorted[i].count)
	}
	return strings.Join(parts, ", ")
}

// trending extracts top keywords from window article titles using TF-IDF.
func trending(windowArticles, allArticles []cache.Article) string {
	df := map[string]int{}
	for _, a := range allArticles {
		seen := map[string]bool{}
		for _, w := range tokenize(a.Title) {
			if !seen[w] {
				df[w]++
				seen[w] = true
			}
		}
	}

	tf := map[string]int{}
	for _, a := range windowArticles {
		for _, w := range tokenize(a.Title) {
			tf[w]++
		}
	}

	totalDocs := len(allArticles)
	if totalDocs == 0 {
		totalDocs = 1
	}

	type scored struct {
		term  string
		score float64
	}
	var terms []scored
	for term, freq := range tf {
		if freq < 2 {
			continue
		}
		docFreq := df[term]
		if docFreq == 0 {
			docFreq = 1
		}
		idf := math.Log(float64(totalDocs) / float64(docFreq))
		terms = append(terms, scored{term, float64(freq) * idf})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].score != terms[j].score {
			return terms[i].score > terms[j].score
		}
		return terms[i].term < terms[j].term
	})

	limit := 3
	if len(terms) < limit {
		limit = len(terms)
	}

	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		parts[i] = terms[i].term
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ")
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "it": true, "its": true,
	"this": true, "that": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "can": true, "not": true, "no": true, "nor": true,
	"how": true, "what": true, "when": true, "where": true, "who": true, "which": true,
	"why": true, "all": true, "each": true, "every": true, "both": true, "few": true,
	"more": true, "most": true, "other": true, "some": true, "such": true, "than": true,
	"too": true, "very": true, "just": true, "about": true, "into": true, "over": true,
	"after": true, "before": true, "between": true, "under": true, "above": true,
	"out": true, "up": true, "down": true, "off": true, "our": true, "your": true,
	"we": true, "you": true, "they": true, "them": true, "their": true, "new": true,
	"use": true, "using": true, "used": true,
}

func tokenize(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(word) < 4 {
			continue
		}
		if stopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
