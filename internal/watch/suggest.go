package watch

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang-stock-dashboard/pkg/logger"
)

// QuietPeriod is how long typing has to pause before a suggestion
// request fires.
const QuietPeriod = 250 * time.Millisecond

// MinQueryLength is the shortest input that triggers a suggestion fetch.
const MinQueryLength = 2

// Direction moves the active suggestion highlight.
type Direction int

const (
	Down Direction = iota
	Up
)

// Session is the live typeahead state: the query its results answer,
// the results themselves, and which one is highlighted (-1 for none).
type Session struct {
	Query       string
	Results     []SuggestionItem
	ActiveIndex int
}

// SuggestionItem is one entry in the dropdown.
type SuggestionItem struct {
	Symbol   string
	Exchange string
	Name     string
}

// Open reports whether the dropdown has anything to show.
func (s Session) Open() bool {
	return len(s.Results) > 0
}

// SuggestController debounces keystrokes into suggestion fetches and
// tracks dropdown navigation and selection. Responses carry the request
// token issued when they were scheduled; a response whose token is no
// longer the latest is discarded, so a slow early request can never
// overwrite the results of a fast later one.
type SuggestController struct {
	api      API
	logger   *logger.Logger
	quiet    time.Duration
	onRender func(Session)
	onCommit func(symbol string)

	mu      sync.Mutex
	timer   *time.Timer
	token   uint64
	input   string
	session Session
	wg      sync.WaitGroup
}

// NewSuggestController creates a suggestion controller. onRender is
// called with the session after every state change; onCommit receives
// the committed symbol text when a suggestion or raw input is accepted.
func NewSuggestController(api API, log *logger.Logger, onRender func(Session), onCommit func(symbol string)) *SuggestController {
	return &SuggestController{
		api:      api,
		logger:   log,
		quiet:    QuietPeriod,
		onRender: onRender,
		onCommit: onCommit,
		session:  Session{ActiveIndex: -1},
	}
}

// SetQuietPeriod overrides the debounce delay. Useful for tests.
func (c *SuggestController) SetQuietPeriod(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quiet = d
}

// Input records a keystroke's resulting text. Short input clears the
// dropdown without a network call; otherwise the pending fetch, if any,
// is rescheduled so only the final text of a typing burst is queried.
func (c *SuggestController) Input(text string) {
	c.mu.Lock()
	c.input = text
	c.stopTimerLocked()

	query := strings.TrimSpace(text)
	if len(query) < MinQueryLength {
		c.closeLocked()
		render := c.onRender
		session := c.session
		c.mu.Unlock()
		if render != nil {
			render(session)
		}
		return
	}

	c.timer = time.AfterFunc(c.quiet, func() {
		c.fetch(query)
	})
	c.mu.Unlock()
}

// fetch issues one suggestion request and applies the result only if no
// newer request has been issued since.
func (c *SuggestController) fetch(query string) {
	c.mu.Lock()
	c.token++
	token := c.token
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		items, err := c.api.Suggest(context.Background(), query)

		c.mu.Lock()
		if token != c.token {
			c.mu.Unlock()
			return
		}
		if err != nil {
			c.logger.Warn("Suggestion fetch failed", logger.ErrorField(err), logger.StringField("query", query))
			c.session = Session{ActiveIndex: -1}
		} else {
			results := make([]SuggestionItem, 0, len(items))
			for _, it := range items {
				results = append(results, SuggestionItem{Symbol: it.Symbol, Exchange: it.Exchange, Name: it.Name})
			}
			c.session = Session{Query: query, Results: results, ActiveIndex: -1}
		}
		render := c.onRender
		session := c.session
		c.mu.Unlock()
		if render != nil {
			render(session)
		}
	}()
}

// Navigate moves the highlight circularly through the current results.
// With an empty list it does nothing.
func (c *SuggestController) Navigate(dir Direction) {
	c.mu.Lock()
	n := len(c.session.Results)
	if n == 0 {
		c.mu.Unlock()
		return
	}
	switch dir {
	case Down:
		if c.session.ActiveIndex < 0 {
			c.session.ActiveIndex = 0
		} else {
			c.session.ActiveIndex = (c.session.ActiveIndex + 1) % n
		}
	case Up:
		if c.session.ActiveIndex <= 0 {
			c.session.ActiveIndex = n - 1
		} else {
			c.session.ActiveIndex--
		}
	}
	render := c.onRender
	session := c.session
	c.mu.Unlock()
	if render != nil {
		render(session)
	}
}

// Pick commits the suggestion at index: its bare symbol becomes the
// committed text and the dropdown closes. Out-of-range indexes are a
// no-op.
func (c *SuggestController) Pick(index int) {
	c.mu.Lock()
	if index < 0 || index >= len(c.session.Results) {
		c.mu.Unlock()
		return
	}
	symbol := c.session.Results[index].Symbol
	c.input = symbol
	c.closeLocked()
	commit := c.onCommit
	render := c.onRender
	session := c.session
	c.mu.Unlock()

	if render != nil {
		render(session)
	}
	if commit != nil {
		commit(symbol)
	}
}

// Enter commits the highlighted suggestion when one is active, or the
// raw typed text when none is.
func (c *SuggestController) Enter() {
	c.mu.Lock()
	idx := c.session.ActiveIndex
	if idx >= 0 && idx < len(c.session.Results) {
		c.mu.Unlock()
		c.Pick(idx)
		return
	}
	text := c.input
	c.closeLocked()
	commit := c.onCommit
	render := c.onRender
	session := c.session
	c.mu.Unlock()

	if render != nil {
		render(session)
	}
	if commit != nil {
		commit(text)
	}
}

// Escape closes the dropdown without committing anything.
func (c *SuggestController) Escape() {
	c.mu.Lock()
	c.closeLocked()
	render := c.onRender
	session := c.session
	c.mu.Unlock()
	if render != nil {
		render(session)
	}
}

// Session returns a copy of the current typeahead state.
func (c *SuggestController) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Wait blocks until all in-flight suggestion fetches have settled.
// Useful for tests.
func (c *SuggestController) Wait() {
	c.wg.Wait()
}

func (c *SuggestController) closeLocked() {
	c.stopTimerLocked()
	c.token++ // any in-flight response is now stale
	c.session = Session{ActiveIndex: -1}
}

func (c *SuggestController) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
