package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/matheuskafuri/mednews/internal/cache"
	"github.com/matheuskafuri/mednews/internal/classify"
)

func articleWithTopics(source, title, topics string) cache.Article {
	return cache.Article{
		Source:    source,
		Title:     title,
		Link:      "https://example.com/" + title,
		Published: time.Now(),
		Topics:    topics,
	}
}

func TestGenerateEmpty(t *testing.T) {
	d := Generate(nil, nil)
	if d.NewCount != 0 {
		t.Errorf("expected NewCount 0, got %d", d.NewCount)
	}
	if d.Greeting == "" {
		t.Error("expected a greeting even with no articles")
	}
	if d.ActiveSources != "" || d.Trending != "" {
		t.Error("expected empty sources/trending with no articles")
	}
}

func TestGenerateCountsAndSources(t *testing.T) {
	window := []cache.Article{
		articleWithTopics("Nature", "MRI advances one", "|Medical Imaging|"),
		articleWithTopics("Nature", "MRI advances two", "|Medical Imaging|"),
		articleWithTopics("arXiv", "Genome sequencing study", "|Genomics|"),
	}
	d := Generate(window, window)

	if d.NewCount != 3 {
		t.Errorf("expected NewCount 3, got %d", d.NewCount)
	}
	if !strings.HasPrefix(d.ActiveSources, "Nature (2)") {
		t.Errorf("expected Nature listed first, got %q", d.ActiveSources)
	}
}

func TestGenerateTopicCounts(t *testing.T) {
	window := []cache.Article{
		articleWithTopics("Nature", "one", "|Medical Imaging|Genomics|"),
		articleWithTopics("BMJ", "two", "|Medical Imaging|"),
		articleWithTopics("arXiv", "three", ""),
	}
	d := Generate(window, window)

	if len(d.TopicCounts) != 2 {
		t.Fatalf("expected 2 topic counts, got %v", d.TopicCounts)
	}
	if d.TopicCounts[0].Topic != classify.MedicalImaging || d.TopicCounts[0].Count != 2 {
		t.Errorf("expected Medical Imaging x2 first, got %+v", d.TopicCounts[0])
	}
	if d.TopicCounts[1].Topic != classify.Genomics || d.TopicCounts[1].Count != 1 {
		t.Errorf("expected Genomics x1 second, got %+v", d.TopicCounts[1])
	}
}

func TestTrendingRequiresRepetition(t *testing.T) {
	window := []cache.Article{
		articleWithTopics("Nature", "radiomics models for oncology", ""),
		articleWithTopics("BMJ", "radiomics benchmarks released", ""),
		articleWithTopics("arXiv", "unrelated telehealth pilot", ""),
	}
	d := Generate(window, window)

	if !strings.Contains(d.Trending, "radiomics") {
		t.Errorf("expected 'radiomics' trending (appears twice), got %q", d.Trending)
	}
	if strings.Contains(d.Trending, "telehealth") {
		t.Errorf("single-occurrence term should not trend, got %q", d.Trending)
	}
}

func TestTokenizeFiltersStopWordsAndShortWords(t *testing.T) {
	tokens := tokenize("The new MRI for the clinic and its uses")
	for _, tok := range tokens {
		if stopWords[tok] {
			t.Errorf("stop word leaked through: %q", tok)
		}
		if len(tok) < 4 {
			t.Errorf("short token leaked through: %q", tok)
		}
	}
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{8, "Good morning"},
		{13, "Good afternoon"},
		{20, "Good evening"},
	}
	for _, tt := range tests {
		now := time.Date(2026, 8, 31, tt.hour, 0, 0, 0, time.UTC)
		if got := greeting(now); got != tt.want {
			t.Errorf("greeting(hour=%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}
