package enrichment

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// User-facing fallback strings. Handlers return these instead of
// surfacing raw API errors.
const (
	MsgMissingKey    = "請先配置 API Key。"
	MsgEmptyAnalysis = "無法生成分析，請稍後再試。"
	MsgAnalysisError = "獲取 AI 分析時出錯。"
	MsgSearchError   = "搜尋服務暫時無法使用，請稍後再試。"
)

const defaultLinkTitle = "相關連結"

// Link is one grounding source behind a search answer.
type Link struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SearchResult carries the generated answer plus the web sources the
// model grounded it on.
type SearchResult struct {
	Text  string `json:"text"`
	Links []Link `json:"links"`
}

// Client wraps the Gemini API for competition analysis and grounded
// search. A client with no API key is valid; every call then returns
// the fallback text.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return &Client{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Enabled reports whether a real API client is configured.
func (c *Client) Enabled() bool {
	return c.client != nil
}

// Analyze produces advisory prose for one competition. It never
// returns an error to the caller; failures degrade to fixed text.
func (c *Client) Analyze(ctx context.Context, name, description string) string {
	if c.client == nil {
		return MsgMissingKey
	}

	prompt := fmt.Sprintf(`身為一位資深的學生活動顧問，請針對以下競賽資訊提供簡短的「奪獎建議」與「參賽價值分析」：
競賽名稱：%s
競賽內容：%s

請用兩小段話總結，並使用 Markdown 格式呈現。`, name, description)

	response, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ThinkingConfig: &genai.ThinkingConfig{
				ThinkingBudget: genai.Ptr[int32](0),
			},
		},
	)
	if err != nil {
		return MsgAnalysisError
	}

	text := response.Text()
	if text == "" {
		return MsgEmptyAnalysis
	}
	return text
}

// Search runs a Google-Search-grounded generation for the user's query
// and extracts the grounding sources as links.
func (c *Client) Search(ctx context.Context, query string) (SearchResult, error) {
	if c.client == nil {
		return SearchResult{Text: MsgMissingKey, Links: []Link{}}, nil
	}

	prompt := fmt.Sprintf(`根據用戶的需求「%s」，搜尋並列出 3 個目前適合台灣大專生的相關競賽資訊。
請包含：競賽名稱、獎金、截止日期、官網連結。`, query)

	response, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
		},
	)
	if err != nil {
		return SearchResult{Text: MsgSearchError, Links: []Link{}}, fmt.Errorf("grounded search failed: %w", err)
	}

	return SearchResult{
		Text:  response.Text(),
		Links: extractLinks(response),
	}, nil
}

// extractLinks pulls the web grounding chunks out of a response,
// dropping entries without a URI and defaulting missing titles.
func extractLinks(response *genai.GenerateContentResponse) []Link {
	links := []Link{}
	if response == nil || len(response.Candidates) == 0 {
		return links
	}

	metadata := response.Candidates[0].GroundingMetadata
	if metadata == nil {
		return links
	}

	for _, chunk := range metadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = defaultLinkTitle
		}
		links = append(links, Link{Title: title, URI: chunk.Web.URI})
	}

	return links
}
