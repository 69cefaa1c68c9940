// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/contentforge/internal/httputil"
	"github.com/pdiddy/contentforge/pkg/types"
)

// Serper endpoints. Tests override these to point at httptest servers.
var (
	serperSearchURL = "https://google.serper.dev/search"
	serperNewsURL   = "https://google.serper.dev/news"
)

// ErrMissingAPIKey is reported (and logged) when no Serper key is configured.
var ErrMissingAPIKey = errors.New("search API key not configured")

// maxRelatedQuestions bounds the "people also ask" results appended per call.
const maxRelatedQuestions = 3

// answerBoxTitle is used when the provider's answer box has no title.
const answerBoxTitle = "Doğrudan Cevap"

// SerperGateway searches Google web and news results through the Serper API.
type SerperGateway struct {
	apiKey    string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	logger    *zap.SugaredLogger
}

// NewSerperGateway creates a gateway from cfg. A nil logger is replaced by a
// no-op logger. RequestsPerSecond > 0 paces calls with a token bucket.
func NewSerperGateway(cfg types.SearchConfig, logger *zap.SugaredLogger) *SerperGateway {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &SerperGateway{
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
		client:    httputil.NewClient(cfg.Timeout),
		limiter:   limiter,
		logger:    logger,
	}
}

// Enabled reports whether the gateway has credentials.
func (g *SerperGateway) Enabled() bool { return g.apiKey != "" }

// Search implements Gateway. Failures are logged and produce an empty slice.
func (g *SerperGateway) Search(ctx context.Context, req Request) []types.SearchResult {
	out := g.Do(ctx, req)
	if !out.OK() {
		g.logger.Warnw("search failed", "provider", "serper", "query", req.Query, "mode", req.Mode, "error", out.Err)
		return []types.SearchResult{}
	}
	return out.Results
}

// serperRequest is the JSON body sent to both endpoints.
type serperRequest struct {
	Q   string `json:"q"`
	GL  string `json:"gl"`
	HL  string `json:"hl"`
	Num int    `json:"num"`
	TBS string `json:"tbs,omitempty"`
}

type serperResponse struct {
	Organic []serperItem `json:"organic"`
	News    []serperItem `json:"news"`

	KnowledgeGraph *struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Website     string `json:"website"`
	} `json:"knowledgeGraph"`

	AnswerBox *struct {
		Title   string `json:"title"`
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"answerBox"`

	PeopleAlsoAsk []struct {
		Question string `json:"question"`
		Snippet  string `json:"snippet"`
		Link     string `json:"link"`
	} `json:"peopleAlsoAsk"`
}

type serperItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
	Date    string `json:"date"`
	Source  string `json:"source"`
}

// Do performs one call and reports its outcome explicitly.
func (g *SerperGateway) Do(ctx context.Context, req Request) Outcome {
	if !g.Enabled() {
		return Outcome{Err: ErrMissingAPIKey}
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return Outcome{Err: errors.Wrap(err, "waiting for rate limiter")}
		}
	}

	endpoint := serperSearchURL
	if req.Mode == types.ModeNews {
		endpoint = serperNewsURL
	}

	body := serperRequest{
		Q:   req.Query,
		GL:  countryFor(req.Language),
		HL:  req.Language,
		Num: req.Num,
	}
	if req.TimeWindow != types.WindowNone {
		body.TBS = "qdr:" + string(req.TimeWindow)
	}

	httpReq, err := httputil.NewJSONRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Outcome{Err: err}
	}
	httpReq.Header.Set("X-API-KEY", g.apiKey)
	if g.userAgent != "" {
		httpReq.Header.Set("User-Agent", g.userAgent)
	}

	var resp serperResponse
	if err := httputil.DoJSON(g.client, httpReq, &resp); err != nil {
		return Outcome{Err: errors.Wrapf(err, "serper %s", req.Mode)}
	}
	return Outcome{Results: normalize(resp, req.Mode)}
}

func countryFor(language string) string {
	if language == "tr" {
		return "tr"
	}
	return "us"
}

// normalize converts a provider response into results: the answer box
// first, then the knowledge panel, then organic or news items, then up to
// three related questions.
func normalize(resp serperResponse, mode types.SearchMode) []types.SearchResult {
	results := []types.SearchResult{}

	if ab := resp.AnswerBox; ab != nil {
		title := ab.Title
		if title == "" {
			title = answerBoxTitle
		}
		snippet := ab.Answer
		if snippet == "" {
			snippet = ab.Snippet
		}
		results = append(results, types.SearchResult{
			Title:    title,
			Snippet:  snippet,
			Link:     ab.Link,
			Source:   types.SourceAnswerBox,
			IsAnswer: true,
		})
	}

	if kg := resp.KnowledgeGraph; kg != nil {
		results = append(results, types.SearchResult{
			Title:   kg.Title,
			Snippet: kg.Description,
			Link:    kg.Website,
			Source:  types.SourceKnowledgeGraph,
			IsKG:    true,
		})
	}

	if mode == types.ModeNews {
		for _, item := range resp.News {
			results = append(results, types.SearchResult{
				Title:   item.Title,
				Snippet: item.Snippet,
				Link:    item.Link,
				Date:    item.Date,
				Source:  item.Source,
			})
		}
	} else {
		for _, item := range resp.Organic {
			results = append(results, types.SearchResult{
				Title:   item.Title,
				Snippet: item.Snippet,
				Link:    item.Link,
				Date:    item.Date,
				Source:  Domain(item.Link),
			})
		}
	}

	for i, q := range resp.PeopleAlsoAsk {
		if i == maxRelatedQuestions {
			break
		}
		results = append(results, types.SearchResult{
			Title:      q.Question,
			Snippet:    q.Snippet,
			Link:       q.Link,
			Source:     types.SourceRelatedQ,
			IsQuestion: true,
		})
	}

	return results
}
