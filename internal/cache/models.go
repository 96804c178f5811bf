package cache

import "time"

type Article struct {
	ID        string
	Source    string
	Title     string
	Link      string
	Summary   string
	Published time.Time
	FetchedAt time.Time
	Topics    string // delimited topic set, see classify.Join
	AISummary string
	AITags    string
}

type QueryOpts struct {
	Since   time.Time
	Sources []string
	Topic   string
	Search  string
	Limit   int
}
