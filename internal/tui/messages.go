package tui

import (
	"github.com/matheuskafuri/mednews/internal/aggregate"
	"github.com/matheuskafuri/mednews/internal/ai"
	"github.com/matheuskafuri/mednews/internal/cache"
)

type feedsLoadedMsg struct {
	articles []cache.Article
}

type feedErrMsg struct {
	err error
}

type refreshDoneMsg struct {
	result aggregate.Result
}

type summaryLoadedMsg struct {
	articleID string
	result    ai.Result
}
