package gurufocus

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/hancao97/hanai-wealth/internal/utils"
	"github.com/hancao97/hanai-wealth/pkg/whttp"
)

const (
	DefaultEndpoint = "https://www.gurufocus.cn/_api/screener?locale=zh-hans"
	DefaultPerPage  = 3000

	requestTimeout = 30 * time.Second
)

// BaseParams is the fixed screener request body the vendor expects; field
// names and filter semantics belong to the vendor and are passed through
// verbatim. Page and per_page are added per request.
func BaseParams() map[string]interface{} {
	return map[string]interface{}{
		"exchanges": []string{"SZSE", "SHSE"},
		"fields": []string{
			"symbol",
			"company",
			"price",
			"p_change",
			"p_pct_change",
			"mktcap_norm_currency",
			"gf_valuation",
		},
		"filters": []map[string]interface{}{
			{"left": "use_in_region", "operator": "=", "right": false},
		},
		"guru_filters":            []interface{}{},
		"inst_holding_filters":    []interface{}{},
		"insider_filters":         []interface{}{},
		"insider_trading_filters": []interface{}{},
		"sorts":                   "mktcap_norm|DESC",
		"rank_by":                 "",
		"use_in_screener":         true,
	}
}

type Client struct {
	Endpoint string
	PerPage  int

	http *retryablehttp.Client
}

// NewClient builds a screener client. Retries are intentionally disabled:
// a failed page fails the whole crawl, there is no partial dataset.
func NewClient(endpoint string, perPage int) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.HTTPClient.Timeout = requestTimeout
	retryClient.Logger = log.New(io.Discard, "", 0)

	return &Client{
		Endpoint: endpoint,
		PerPage:  perPage,
		http:     retryClient,
	}
}

// FetchAll walks the screener pages from 1 upward, accumulating raw
// records until the server-reported total is reached. Pages are strictly
// sequential. The first transport error or non-2xx status aborts the
// whole fetch with no partial result.
func (c *Client) FetchAll() ([]gjson.Result, error) {
	var records []gjson.Result
	total := int64(-1)

	for page := 1; ; page++ {
		body := BaseParams()
		body["page"] = page
		body["per_page"] = c.PerPage

		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}

		res, err := whttp.SendHTTPRequest(&whttp.WHTTPReq{
			Method: "POST",
			URL:    c.Endpoint,
			Body:   payload,
		}, c.http)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		if res.StatusCode < 200 || res.StatusCode > 299 {
			return nil, fmt.Errorf("fetch page %d: unexpected status %d", page, res.StatusCode)
		}

		total = gjson.Get(res.BodyString, "total").Int()
		pageData := gjson.Get(res.BodyString, "data").Array()
		records = append(records, pageData...)

		utils.Log.Infof("Fetched count %d... %d left...", len(records), max64(total-int64(len(records)), 0))

		if int64(len(records)) >= total {
			break
		}
		if len(pageData) == 0 {
			// Server claims more records but returned an empty page;
			// bail out instead of looping forever.
			return nil, fmt.Errorf("fetch page %d: empty page with %d records still reported", page, total-int64(len(records)))
		}
	}

	return records, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
