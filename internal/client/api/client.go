// Package api is the HTTP client the interactive journal shell talks
// through. Every request and response is echoed to the terminal so the
// shell doubles as an API debugging tool.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blunderlog/internal/client/display"
	"blunderlog/internal/core"
)

type Client struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
	Verbose    bool
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 120 * time.Second, // insight calls wait on the LLM
		},
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

func (c *Client) SetToken(token string) {
	c.AuthToken = token
}

func (c *Client) doRequest(method, path string, body interface{}, result interface{}) error {
	url := c.BaseURL + path

	var bodyReader io.Reader
	var bodyStr string
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
		bodyStr = string(jsonData)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	// Display request
	fmt.Printf("\n%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
	if bodyStr != "" && c.Verbose {
		var prettyBody interface{}
		json.Unmarshal([]byte(bodyStr), &prettyBody)
		prettyJSON, _ := json.MarshalIndent(prettyBody, "", "  ")
		fmt.Printf("%sRequest Body:%s\n%s\n", display.Cyan, display.Reset, string(prettyJSON))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		fmt.Printf("%s[ERROR] %s%s\n", display.Red, err.Error(), display.Reset)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// Display response status
	statusColor := display.Green
	if resp.StatusCode >= 400 {
		statusColor = display.Red
	}
	fmt.Printf("%s[%d %s]%s\n", statusColor, resp.StatusCode, http.StatusText(resp.StatusCode), display.Reset)

	if c.Verbose && len(respBody) > 0 {
		var prettyResp interface{}
		if err := json.Unmarshal(respBody, &prettyResp); err == nil {
			prettyJSON, _ := json.MarshalIndent(prettyResp, "", "  ")
			fmt.Printf("%sResponse Body:%s\n%s\n", display.Cyan, display.Reset, string(prettyJSON))
		} else {
			fmt.Printf("%sResponse:%s\n%s\n", display.Cyan, display.Reset, string(respBody))
		}
	}

	// Parse error response
	if resp.StatusCode >= 400 {
		var errResp core.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			if !c.Verbose {
				fmt.Printf("%sError: %s%s\n", display.Red, errResp.Error, display.Reset)
				if errResp.Code != "" {
					fmt.Printf("%sCode: %s%s\n", display.Red, errResp.Code, display.Reset)
				}
				if errResp.Details != "" {
					fmt.Printf("%sDetails: %s%s\n", display.Red, errResp.Details, display.Reset)
				}
			}
		} else if !c.Verbose {
			fmt.Printf("%s%s%s\n", display.Red, string(respBody), display.Reset)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			fmt.Printf("%sResponse parse error: %s%s\n", display.Red, err.Error(), display.Reset)
			fmt.Printf("%sRaw response: %s%s\n", display.Green, string(respBody), display.Reset)
			return err
		}
	}

	return nil
}

// HealthResponse mirrors the server health payload
type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage"`
}

// API Methods

func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	err := c.doRequest("GET", "/health", nil, &resp)
	return &resp, err
}

func (c *Client) Login(passphrase string) (*core.AuthResponse, error) {
	req := &core.LoginRequest{Passphrase: passphrase}
	var resp core.AuthResponse
	err := c.doRequest("POST", "/api/v1/auth/login", req, &resp)
	return &resp, err
}

func (c *Client) ImportGame(req *core.ImportGameRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games", req, &resp)
	return &resp, err
}

func (c *Client) ListGames(limit, offset int) (*core.GameListResponse, error) {
	var resp core.GameListResponse
	path := fmt.Sprintf("/api/v1/games?limit=%d&offset=%d", limit, offset)
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID, nil, &resp)
	return &resp, err
}

func (c *Client) UpdateGame(gameID string, req *core.UpdateGameRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("PATCH", "/api/v1/games/"+gameID, req, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest("DELETE", "/api/v1/games/"+gameID, nil, nil)
}

func (c *Client) GetPosition(gameID string, plyIndex int) (*core.PositionResponse, error) {
	var resp core.PositionResponse
	path := "/api/v1/games/" + gameID + "/positions/" + strconv.Itoa(plyIndex)
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) ResolveMoveNumber(gameID string, moveNumber int) (*core.ResolveResponse, error) {
	var resp core.ResolveResponse
	path := "/api/v1/games/" + gameID + "/move-number/" + strconv.Itoa(moveNumber)
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) CreateMistake(gameID string, req *core.CreateMistakeRequest) (*core.MistakeResponse, error) {
	var resp core.MistakeResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/mistakes", req, &resp)
	return &resp, err
}

func (c *Client) ListMistakes(gameID, tag string, limit int) (*core.MistakeListResponse, error) {
	q := url.Values{}
	if gameID != "" {
		q.Set("gameId", gameID)
	}
	if tag != "" {
		q.Set("tag", tag)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/mistakes"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp core.MistakeListResponse
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) GetMistake(mistakeID string) (*core.MistakeResponse, error) {
	var resp core.MistakeResponse
	err := c.doRequest("GET", "/api/v1/mistakes/"+mistakeID, nil, &resp)
	return &resp, err
}

func (c *Client) UpdateMistake(mistakeID string, req *core.UpdateMistakeRequest) (*core.MistakeResponse, error) {
	var resp core.MistakeResponse
	err := c.doRequest("PUT", "/api/v1/mistakes/"+mistakeID, req, &resp)
	return &resp, err
}

func (c *Client) DeleteMistake(mistakeID string) error {
	return c.doRequest("DELETE", "/api/v1/mistakes/"+mistakeID, nil, nil)
}

func (c *Client) ListTags() (*core.TagListResponse, error) {
	var resp core.TagListResponse
	err := c.doRequest("GET", "/api/v1/tags", nil, &resp)
	return &resp, err
}

func (c *Client) GenerateInsight(req *core.InsightRequest) (*core.InsightResponse, error) {
	var resp core.InsightResponse
	err := c.doRequest("POST", "/api/v1/insights", req, &resp)
	return &resp, err
}

// RawRequest performs a raw HTTP request for debugging purposes
func (c *Client) RawRequest(method, path string, body string) error {
	var bodyData interface{}
	if body != "" {
		if err := json.Unmarshal([]byte(body), &bodyData); err != nil {
			// Try as raw string
			bodyData = body
		}
	}

	return c.doRequest(method, path, bodyData, nil)
}
