package controllerImp

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/knowledge/repository"
)

// maxChunkRunes bounds one stored chunk; long documents are split on the
// first newline past the bound.
const maxChunkRunes = 1000

type KnowledgeCtrl struct {
	repo           repository.KnowledgeRepository
	allowedDomains []string
	httpc          *http.Client
}

func New(repo repository.KnowledgeRepository, allowedDomains []string) *KnowledgeCtrl {
	return &KnowledgeCtrl{
		repo:           repo,
		allowedDomains: allowedDomains,
		httpc:          &http.Client{Timeout: 20 * time.Second},
	}
}

type ingestTextReq struct {
	Source  string   `json:"source"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Lang    string   `json:"lang"`
	Tags    []string `json:"tags"`
}

type ingestURLReq struct {
	URL  string   `json:"url"`
	Lang string   `json:"lang"`
	Tags []string `json:"tags"`
}

func chunkText(text string, maxRunes int) []string {
	var parts []string
	var cur strings.Builder
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		parts = append(parts, s)
	}
	return parts
}

func (h *KnowledgeCtrl) ingest(source, title, content, lang string, tags []string) (int, error) {
	if lang == "" {
		lang = "vi"
	}
	if tags == nil {
		tags = []string{}
	}
	parts := chunkText(content, maxChunkRunes)
	rows := make([]entities.KnowledgeChunk, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, entities.KnowledgeChunk{
			Source:  source,
			Title:   title,
			Content: p,
			Lang:    lang,
			Tags:    tags,
		})
	}
	if err := h.repo.BulkInsert(rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (h *KnowledgeCtrl) IngestText(c echo.Context) error {
	var req ingestTextReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "title and content are required"))
	}
	if req.Source == "" {
		req.Source = "manual"
	}
	n, err := h.ingest(req.Source, req.Title, req.Content, req.Lang, req.Tags)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Knowledge ingested successfully",
		"chunks":  n,
	})
}

func (h *KnowledgeCtrl) domainAllowed(host string) bool {
	if len(h.allowedDomains) == 0 {
		return false
	}
	host = strings.ToLower(host)
	for _, d := range h.allowedDomains {
		d = strings.ToLower(d)
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// IngestURL fetches a page from an allow-listed domain, extracts its title
// and paragraph text and stores the chunks.
func (h *KnowledgeCtrl) IngestURL(c echo.Context) error {
	var req ingestURLReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "invalid url"))
	}
	if !h.domainAllowed(u.Hostname()) {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "domain not allowed"))
	}

	resp, err := h.httpc.Get(u.String())
	if err != nil {
		logrus.WithError(err).WithField("url", u.String()).Warn("knowledge fetch failed")
		return apperr.JSON(c, apperr.With(apperr.ErrUpstream, "could not fetch url"))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apperr.JSON(c, apperr.With(apperr.ErrUpstream, "could not fetch url"))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrUpstream, "could not parse page"))
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = u.Host
	}
	var sb strings.Builder
	doc.Find("article p, main p, p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			sb.WriteString(t)
			sb.WriteString("\n")
		}
	})
	if sb.Len() == 0 {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "page has no extractable text"))
	}

	n, err := h.ingest(u.String(), title, sb.String(), req.Lang, req.Tags)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Knowledge ingested successfully",
		"title":   title,
		"chunks":  n,
	})
}

func chunkPayload(k *entities.KnowledgeChunk) map[string]any {
	return map[string]any{
		"id":      k.ID,
		"source":  k.Source,
		"title":   k.Title,
		"content": k.Content,
		"lang":    k.Lang,
		"tags":    k.Tags,
	}
}

// Search returns matching chunks, or the most recent ones when no query is
// given.
func (h *KnowledgeCtrl) Search(c echo.Context) error {
	lang := c.QueryParam("lang")
	if lang == "" {
		lang = "vi"
	}
	query := strings.TrimSpace(c.QueryParam("search"))

	var (
		chunks []entities.KnowledgeChunk
		err    error
	)
	if query != "" {
		chunks, err = h.repo.Search(query, lang, 10)
	} else {
		chunks, err = h.repo.Recent(lang, 10)
	}
	if err != nil {
		return apperr.JSON(c, err)
	}
	out := make([]map[string]any, 0, len(chunks))
	for i := range chunks {
		out = append(out, chunkPayload(&chunks[i]))
	}
	return c.JSON(http.StatusOK, out)
}
