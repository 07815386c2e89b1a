// Package pool loads question pools from a published spreadsheet.
//
// Each mode+level pair maps to one sheet exported as CSV. Vocabulary sheets
// carry {greek, english, category} rows, topic sheets {text, topic} rows and
// fact sheets {title, template} rows. Category filtering happens client-side
// after the fetch, so the same sheet serves every category of a level.
package pool

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/arkadios/glossabot/models"
)

// Provider is the narrow contract the game engine requires from the pool.
type Provider interface {
	Load(ctx context.Context, level, category string, mode models.Mode) (models.Pool, error)
}

// Client fetches pools from the spreadsheet CSV export.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a pool client for a spreadsheet base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Load fetches and parses the pool for one level(+category) and mode.
func (c *Client) Load(ctx context.Context, level, category string, mode models.Mode) (models.Pool, error) {
	rows, err := c.fetch(ctx, sheetName(mode, level))
	if err != nil {
		return models.Pool{}, err
	}

	switch mode {
	case models.ModeTopic:
		return parseTexts(rows), nil
	case models.ModeFacts:
		return parseTopics(rows), nil
	default:
		return parseWords(rows, category), nil
	}
}

func sheetName(mode models.Mode, level string) string {
	switch mode {
	case models.ModeTopic:
		return "texts_" + level
	case models.ModeFacts:
		return "topics_" + level
	default:
		return "words_" + level
	}
}

func (c *Client) fetch(ctx context.Context, sheet string) ([][]string, error) {
	reqURL := fmt.Sprintf("%s/gviz/tq?tqx=out:csv&sheet=%s", c.baseURL, url.QueryEscape(sheet))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build sheet request")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch sheet %s", sheet)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("sheet %s returned status %d", sheet, resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "parse sheet %s", sheet)
		}
		rows = append(rows, row)
	}

	// First row is the header.
	if len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

func parseWords(rows [][]string, category string) models.Pool {
	var pool models.Pool
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		entry := models.WordEntry{
			Greek:    strings.TrimSpace(row[0]),
			English:  strings.TrimSpace(row[1]),
			Category: strings.ToLower(strings.TrimSpace(row[2])),
		}
		if entry.Greek == "" || entry.English == "" {
			continue
		}
		if category != "" && entry.Category != category {
			continue
		}
		pool.Words = append(pool.Words, entry)
	}
	return pool
}

func parseTexts(rows [][]string) models.Pool {
	var pool models.Pool
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		entry := models.TextEntry{
			Text:  strings.TrimSpace(row[0]),
			Topic: strings.TrimSpace(row[1]),
		}
		if entry.Text == "" || entry.Topic == "" {
			continue
		}
		pool.Texts = append(pool.Texts, entry)
	}
	return pool
}

func parseTopics(rows [][]string) models.Pool {
	var pool models.Pool
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		entry := models.FactTopic{
			Title:    strings.TrimSpace(row[0]),
			Template: strings.TrimSpace(row[1]),
		}
		if entry.Title == "" || entry.Template == "" {
			continue
		}
		pool.Topics = append(pool.Topics, entry)
	}
	return pool
}
