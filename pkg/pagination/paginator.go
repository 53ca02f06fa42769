package pagination

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/mauricepattyn/craft-shopify/pkg/client"
	"github.com/mauricepattyn/craft-shopify/pkg/logging"
)

// Prometheus metrics for pagination.
var (
	adminPagesFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopify_admin_pages_fetched_total",
		Help: "Total collection pages fetched by endpoint",
	}, []string{"endpoint"})

	adminCollectionItems = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shopify_admin_collection_items",
		Help:    "Items returned per full collection fetch by endpoint",
		Buckets: []float64{10, 50, 250, 1000, 5000, 25000},
	}, []string{"endpoint"})
)

// MaxPageSize is the Admin API page size ceiling. The paginator forces it
// on every request regardless of any caller-supplied limit.
const MaxPageSize = 250

// Collection describes one paginated resource kind: where its collection
// lives, how to pull one page of records out of a decoded body, and how
// to extract the next-page cursor.
type Collection interface {
	// Path returns the collection endpoint path, e.g. "products.json".
	Path() string

	// Items extracts the page's records from a decoded response body.
	Items(body map[string]any) ([]map[string]any, error)

	// NextPage extracts the next-page cursor query from the response
	// headers. ok is false on the final page.
	NextPage(header http.Header) (query url.Values, ok bool)
}

// Paginator drives the request executor across a cursor-linked sequence
// of pages.
type Paginator struct {
	client *client.Client
	logger zerolog.Logger
}

// New creates a paginator on top of an Admin API client.
func New(c *client.Client) *Paginator {
	return &Paginator{
		client: c,
		logger: logging.New("pagination"),
	}
}

// FetchAll assembles the complete collection, concatenating pages in
// fetch order with server order preserved within each page. Items are
// never deduplicated; correct server cursoring implies none repeat.
func (p *Paginator) FetchAll(ctx context.Context, col Collection, params url.Values) ([]map[string]any, error) {
	start := time.Now()

	query := cloneValues(params)
	query.Set("limit", strconv.Itoa(MaxPageSize))

	var all []map[string]any
	pages := 0

	for {
		resp, err := p.client.Do(ctx, col.Path(), query)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d of %s: %w", pages+1, col.Path(), err)
		}

		items, err := col.Items(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decode page %d of %s: %w", pages+1, col.Path(), err)
		}
		all = append(all, items...)
		pages++
		adminPagesFetchedTotal.WithLabelValues(col.Path()).Inc()

		next, ok := col.NextPage(resp.Header)
		if !ok {
			break
		}

		// The cursor embeds the prior filters and replaces the query
		// wholesale; only the forced page size rides along.
		next.Set("limit", strconv.Itoa(MaxPageSize))
		query = next

		p.logger.Debug().
			Str("endpoint", col.Path()).
			Int("pages", pages).
			Int("items", len(all)).
			Msg("Following next-page cursor")
	}

	adminCollectionItems.WithLabelValues(col.Path()).Observe(float64(len(all)))
	p.logger.Info().
		Str("endpoint", col.Path()).
		Int("pages", pages).
		Int("items", len(all)).
		Dur("duration", time.Since(start)).
		Msg("Collection fetch complete")

	return all, nil
}

// RESTCollection is a Collection for standard Admin REST list endpoints:
// records live under a named body key and the next-page cursor arrives in
// the Link response header.
type RESTCollection struct {
	// Endpoint is the collection path, e.g. "products.json".
	Endpoint string

	// Key is the body key holding the records, e.g. "products".
	Key string
}

// Path implements Collection.
func (r RESTCollection) Path() string {
	return r.Endpoint
}

// Items implements Collection.
func (r RESTCollection) Items(body map[string]any) ([]map[string]any, error) {
	raw, ok := body[r.Key]
	if !ok {
		return nil, fmt.Errorf("response missing %q key", r.Key)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("response %q is not a list", r.Key)
	}

	items := make([]map[string]any, 0, len(list))
	for i, entry := range list {
		item, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d under %q is not an object", i, r.Key)
		}
		items = append(items, item)
	}
	return items, nil
}

// NextPage implements Collection.
func (r RESTCollection) NextPage(header http.Header) (url.Values, bool) {
	return NextPageQuery(header)
}

// NextPageQuery parses the Link header for a rel="next" URL and returns
// its query parameters as the next-page cursor.
func NextPageQuery(header http.Header) (url.Values, bool) {
	for _, link := range header.Values("Link") {
		for _, part := range strings.Split(link, ",") {
			segs := strings.Split(part, ";")
			if len(segs) < 2 {
				continue
			}

			isNext := false
			for _, attr := range segs[1:] {
				if strings.TrimSpace(attr) == `rel="next"` {
					isNext = true
					break
				}
			}
			if !isNext {
				continue
			}

			target := strings.Trim(strings.TrimSpace(segs[0]), "<>")
			u, err := url.Parse(target)
			if err != nil {
				continue
			}
			return u.Query(), true
		}
	}
	return nil, false
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for key, vals := range v {
		out[key] = append([]string(nil), vals...)
	}
	return out
}
