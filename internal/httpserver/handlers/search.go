package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/clippings/internal/browser"
	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/logger"
)

// Search runs the filtered, paginated list view on the server.
// Query params: search, category, from, to (YYYY-MM-DD), page.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		f, err := parseFilter(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		page, err := intParam(q, "page", 1)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		key := cacheKey(d, f, page)
		if d.QueryCache != nil {
			payload, found, err := d.QueryCache.GetCachedQuery(r.Context(), key)
			if err != nil {
				d.Logger.Warn("query cache lookup failed", logger.Error(err))
			}
			if found {
				w.Header().Set("X-Cache", "HIT")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(payload)
				return
			}
		}

		view, err := browser.Query(d.Store.All(), f, domain.PageSize, page)
		if errors.Is(err, browser.ErrPageOutOfRange) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("page %d is out of range", page))
			return
		}

		payload, err := json.Marshal(view)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to render results")
			return
		}
		if d.QueryCache != nil {
			if err := d.QueryCache.CacheQuery(r.Context(), key, payload, d.QueryCacheTTL); err != nil {
				d.Logger.Warn("query cache store failed", logger.Error(err))
			}
		}

		w.Header().Set("X-Cache", "MISS")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}
}

// Browse runs the year/month/category drill-down.
// Query params: year, month (0-11), category.
func Browse(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		all := d.Store.All()

		year, err := intParam(q, "year", 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if year != 0 && !slices.Contains(browser.YearsOf(all), year) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("no clippings in %d", year))
			return
		}
		month, err := intParam(q, "month", -1)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if month < -1 || month > 11 {
			writeError(w, http.StatusBadRequest, "month must be between 0 and 11")
			return
		}

		writeJSON(w, http.StatusOK, browser.BrowseQuery(all, year, month, q.Get("category")))
	}
}

func parseFilter(q url.Values) (browser.Filter, error) {
	f := browser.Filter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: q.Get("category"),
	}
	var err error
	if v := q.Get("from"); v != "" {
		if f.From, err = domain.ParseDate(v); err != nil {
			return f, fmt.Errorf("invalid from date %q", v)
		}
	}
	if v := q.Get("to"); v != "" {
		if f.To, err = domain.ParseDate(v); err != nil {
			return f, fmt.Errorf("invalid to date %q", v)
		}
	}
	return f, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

// cacheKey ties a cached page to the index version it was computed from.
func cacheKey(d deps.Deps, f browser.Filter, page int) string {
	return fmt.Sprintf("search:v%d:%s|%s|%s|%s|%d",
		d.Store.Index().Version(),
		strings.ToLower(f.Search), f.Category, f.From, f.To, page)
}
