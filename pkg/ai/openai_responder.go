package ai

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"airrvie/entities"
)

type openAI struct {
	endpoint string
	key      string
	model    string
	fallback Responder
}

// NewOpenAI wraps an OpenAI-compatible chat endpoint. Any transport or
// decode failure falls back to the rule responder so the farmer always gets
// an answer.
func NewOpenAI(endpoint, key, model string) Responder {
	return &openAI{endpoint: endpoint, key: key, model: model, fallback: NewRules()}
}

func (c *openAI) Respond(message string, convContext entities.JSONMap, plot *PlotContext) (Reply, error) {
	type chatReq struct {
		Model       string              `json:"model"`
		Messages    []map[string]string `json:"messages"`
		Temperature float64             `json:"temperature"`
	}
	reqBody := chatReq{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "system", "content": "You are a Vietnamese rice-farming advisor for smallholders in the Mekong Delta. Answer in Vietnamese, concise and practical."},
			{"role": "user", "content": renderPrompt(message, convContext, plot)},
		},
		Temperature: 0.2,
	}

	b, _ := json.Marshal(reqBody)
	httpc := &http.Client{Timeout: 25 * time.Second}
	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return c.fallback.Respond(message, convContext, plot)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("assistant model unreachable, using rules")
		return c.fallback.Respond(message, convContext, plot)
	}
	defer resp.Body.Close()

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Choices) == 0 {
		logrus.WithField("status", resp.StatusCode).Warn("assistant model gave no answer, using rules")
		return c.fallback.Respond(message, convContext, plot)
	}
	return withPlot(Reply{
		Content:  out.Choices[0].Message.Content,
		Metadata: entities.JSONMap{"model": c.model},
	}, plot), nil
}

func renderPrompt(message string, convContext entities.JSONMap, plot *PlotContext) string {
	var sb strings.Builder
	if plot != nil {
		fmt.Fprintf(&sb, "Thửa ruộng: %s (giống %s, đất %s, nông trại %s)\n",
			plot.PlotName, plot.Variety, plot.SoilType, plot.FarmName)
	}
	if len(convContext) > 0 {
		if b, err := json.Marshal(convContext); err == nil {
			fmt.Fprintf(&sb, "Ngữ cảnh: %s\n", b)
		}
	}
	sb.WriteString(message)
	return sb.String()
}
