// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images looks up illustrative photos for an article. Like search,
// image lookup never fails its caller: missing credentials or a failing
// provider yield no images.
package images

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/contentforge/internal/httputil"
	"github.com/pdiddy/contentforge/pkg/types"
)

// unsplashSearchURL is the photo search endpoint. Tests override it.
var unsplashSearchURL = "https://api.unsplash.com/search/photos"

// ErrMissingAccessKey is logged when no Unsplash key is configured.
var ErrMissingAccessKey = errors.New("image API access key not configured")

// Gateway searches for images. Implementations return an empty slice on any failure.
type Gateway interface {
	SearchImages(ctx context.Context, query string, count int) []types.Image
}

// UnsplashGateway searches landscape photos on Unsplash.
type UnsplashGateway struct {
	accessKey string
	userAgent string
	client    *http.Client
	logger    *zap.SugaredLogger
}

// NewUnsplashGateway creates a gateway from cfg. A nil logger is replaced by
// a no-op logger.
func NewUnsplashGateway(cfg types.ImageConfig, logger *zap.SugaredLogger) *UnsplashGateway {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &UnsplashGateway{
		accessKey: cfg.AccessKey,
		userAgent: cfg.UserAgent,
		client:    httputil.NewClient(cfg.Timeout),
		logger:    logger,
	}
}

// Enabled reports whether the gateway has credentials.
func (g *UnsplashGateway) Enabled() bool { return g.accessKey != "" }

type unsplashResponse struct {
	Results []struct {
		AltDescription *string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

// SearchImages implements Gateway.
func (g *UnsplashGateway) SearchImages(ctx context.Context, query string, count int) []types.Image {
	images, err := g.search(ctx, query, count)
	if err != nil {
		g.logger.Warnw("image search failed", "provider", "unsplash", "query", query, "error", err)
		return []types.Image{}
	}
	return images
}

func (g *UnsplashGateway) search(ctx context.Context, query string, count int) ([]types.Image, error) {
	if !g.Enabled() {
		return nil, ErrMissingAccessKey
	}
	if count <= 0 {
		count = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(count))
	params.Set("orientation", "landscape")

	req, err := httputil.NewJSONRequest(ctx, http.MethodGet, unsplashSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Client-ID "+g.accessKey)
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	var resp unsplashResponse
	if err := httputil.DoJSON(g.client, req, &resp); err != nil {
		return nil, errors.Wrap(err, "unsplash search")
	}

	images := make([]types.Image, 0, len(resp.Results))
	for _, r := range resp.Results {
		alt := query
		if r.AltDescription != nil && *r.AltDescription != "" {
			alt = *r.AltDescription
		}
		images = append(images, types.Image{
			URL:          r.URLs.Regular,
			ThumbnailURL: r.URLs.Thumb,
			AltText:      alt,
			Credit:       r.User.Name,
			CreditLink:   r.User.Links.HTML,
		})
	}
	return images, nil
}

// HeroSection names the lead image returned by ForTopic.
const HeroSection = "hero"

// maxSections bounds the per-section lookups of ForTopic.
const maxSections = 5

// ForTopic finds a hero image for topic and one image per section (at most
// five), searching "<section> <topic>" for each section. Sections with no
// image are omitted; the hero, when found, comes first.
func ForTopic(ctx context.Context, gw Gateway, topic string, sections []string) []types.SectionImage {
	out := []types.SectionImage{}
	if hero := gw.SearchImages(ctx, topic, 1); len(hero) > 0 {
		out = append(out, types.SectionImage{Section: HeroSection, Image: hero[0]})
	}
	if len(sections) > maxSections {
		sections = sections[:maxSections]
	}
	for _, s := range sections {
		if found := gw.SearchImages(ctx, s+" "+topic, 1); len(found) > 0 {
			out = append(out, types.SectionImage{Section: s, Image: found[0]})
		}
	}
	return out
}
