package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cinetrack-backend/internal/catalog/repository"
	profiledomain "cinetrack-backend/internal/profile/domain"
	"cinetrack-backend/pkg/tmdb"

	"github.com/charmbracelet/log"
)

// maxPage is the deepest page the catalog API serves.
const maxPage = 500

var sortKeys = map[string]struct{}{
	"popularity.desc":           {},
	"popularity.asc":            {},
	"vote_average.desc":         {},
	"vote_average.asc":          {},
	"primary_release_date.desc": {},
	"primary_release_date.asc":  {},
	"first_air_date.desc":       {},
	"first_air_date.asc":        {},
}

// BrowseParams describes one catalog browsing request: media kind, genre
// filter, release-year filter, sort order and page.
type BrowseParams struct {
	Kind   string
	Genres []int
	Year   int
	SortBy string
	Page   int
}

// Values shapes the parameters into the catalog API's query format. The
// sort key is whitelisted and the page clamped to the API's valid range.
func (p BrowseParams) Values() (url.Values, error) {
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	if _, ok := sortKeys[sortBy]; !ok {
		return nil, fmt.Errorf("unsupported sort key %q", p.SortBy)
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	values := url.Values{}
	values.Set("sort_by", sortBy)
	values.Set("page", strconv.Itoa(page))
	values.Set("include_adult", "false")

	if len(p.Genres) > 0 {
		ids := make([]string, 0, len(p.Genres))
		for _, id := range p.Genres {
			ids = append(ids, strconv.Itoa(id))
		}
		values.Set("with_genres", strings.Join(ids, ","))
	}

	if p.Year > 0 {
		if p.Kind == profiledomain.MediaKindTV {
			values.Set("first_air_date_year", strconv.Itoa(p.Year))
		} else {
			values.Set("primary_release_year", strconv.Itoa(p.Year))
		}
	}

	return values, nil
}

// CatalogUsecase shapes browse/search/detail requests for the catalog API
// and keeps the genre lists cached on disk.
type CatalogUsecase interface {
	Discover(ctx context.Context, params BrowseParams) (*tmdb.Page, error)
	Search(ctx context.Context, kind, query string, page int) (*tmdb.Page, error)
	Details(ctx context.Context, kind, id string) (*tmdb.TitleDetails, error)
	Credits(ctx context.Context, kind, id string) (*tmdb.Credits, error)
	Reviews(ctx context.Context, kind, id string, page int) (*tmdb.ReviewPage, error)
	Similar(ctx context.Context, kind, id string, page int) (*tmdb.Page, error)
	Genres(ctx context.Context, kind string) ([]tmdb.Genre, error)
}

// catalogUsecase implements CatalogUsecase interface
type catalogUsecase struct {
	api    *tmdb.Client
	cache  repository.GenreCache
	logger *log.Logger
}

// NewCatalogUsecase creates a new instance of catalogUsecase
func NewCatalogUsecase(api *tmdb.Client, cache repository.GenreCache, logger *log.Logger) CatalogUsecase {
	return &catalogUsecase{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

func (u *catalogUsecase) Discover(ctx context.Context, params BrowseParams) (*tmdb.Page, error) {
	values, err := params.Values()
	if err != nil {
		return nil, err
	}
	return u.api.Discover(ctx, params.Kind, values)
}

func (u *catalogUsecase) Search(ctx context.Context, kind, query string, page int) (*tmdb.Page, error) {
	return u.api.Search(ctx, kind, query, page)
}

func (u *catalogUsecase) Details(ctx context.Context, kind, id string) (*tmdb.TitleDetails, error) {
	return u.api.Details(ctx, kind, id)
}

func (u *catalogUsecase) Credits(ctx context.Context, kind, id string) (*tmdb.Credits, error) {
	return u.api.Credits(ctx, kind, id)
}

func (u *catalogUsecase) Reviews(ctx context.Context, kind, id string, page int) (*tmdb.ReviewPage, error) {
	return u.api.Reviews(ctx, kind, id, page)
}

func (u *catalogUsecase) Similar(ctx context.Context, kind, id string, page int) (*tmdb.Page, error) {
	return u.api.Similar(ctx, kind, id, page)
}

// Genres fetches the genre list for the kind, refreshing the on-disk cache
// on success and falling back to it when the API is unavailable.
func (u *catalogUsecase) Genres(ctx context.Context, kind string) ([]tmdb.Genre, error) {
	genres, err := u.api.Genres(ctx, kind)
	if err == nil {
		if saveErr := u.cache.Save(kind, genres); saveErr != nil {
			u.logger.Warn("could not cache genre list", "kind", kind, "err", saveErr)
		}
		return genres, nil
	}

	cached, cacheErr := u.cache.Load(kind)
	if cacheErr == nil && cached != nil {
		u.logger.Warn("serving genre list from cache", "kind", kind, "err", err)
		return cached, nil
	}
	return nil, err
}
