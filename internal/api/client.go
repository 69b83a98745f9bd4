package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/sstent/atlog/internal/config"
)

// ErrUnauthorized is returned when the service rejects the Basic
// credential with HTTP 401. It is the only error class the client
// distinguishes; everything else is passed through.
var ErrUnauthorized = errors.New("invalid credentials")

// ErrStaleResponse is returned by ListActivities when a newer listing
// request was issued before this one completed. The caller must not
// render a stale result over a fresher one.
var ErrStaleResponse = errors.New("stale listing response")

// Client talks to the atividades service. Authenticated endpoints use
// HTTP Basic with the credentials set via SetCredentials; the
// registration and activity-type endpoints are anonymous.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	username string
	password string
	authed   bool

	listGen atomic.Uint64
}

// NewClient creates a client for the service at cfg.BaseURL.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		limiter:    rate.NewLimiter(rate.Every(cfg.RateLimit), 1),
		logger:     logger,
	}
}

// SetCredentials attaches a Basic credential to every subsequent
// authenticated call.
func (c *Client) SetCredentials(username, password string) {
	c.username = username
	c.password = password
	c.authed = true
}

// PhotoLink resolves a server-relative photo path against the service
// base address.
func (c *Client) PhotoLink(photoPath string) string {
	return c.baseURL + photoPath
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.authed {
		req.SetBasicAuth(c.username, c.password)
	}
	return req, nil
}

// Register creates a new user account. The server's verbatim message
// is returned for both success and failure responses.
func (c *Client) Register(ctx context.Context, name, password string) (string, error) {
	form := url.Values{}
	form.Set("nome", name)
	form.Set("senha", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/registrar_usuario",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("registration request failed: %w", err)
	}
	defer resp.Body.Close()

	var msg serverMessage
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return "", fmt.Errorf("failed to decode registration response: %w", err)
	}
	return msg.text(), nil
}

// ActivityTypes fetches the server-owned list of valid activity types.
// No caching: every consumer sees the current reference data.
func (c *Client) ActivityTypes(ctx context.Context) ([]ActivityType, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tipos_atividade", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("activity type request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("activity type request returned status %d", resp.StatusCode)
	}

	var types []ActivityType
	if err := json.NewDecoder(resp.Body).Decode(&types); err != nil {
		return nil, fmt.Errorf("failed to decode activity types: %w", err)
	}
	return types, nil
}

// ListActivities fetches the activity history narrowed by f. Empty
// filter fields are omitted from the query, so a zero Filter returns
// the full history. An HTTP 401 maps to ErrUnauthorized, which is how
// login probes the credential. A non-401 response with an empty or
// unparseable body counts as an empty history.
func (c *Client) ListActivities(ctx context.Context, f Filter) ([]Activity, error) {
	gen := c.listGen.Add(1)

	q := url.Values{}
	if f.StartDate != "" {
		q.Set("data_inicio", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("data_fim", f.EndDate)
	}
	if tipos := f.typesParam(); tipos != "" {
		q.Set("tipos", tipos)
	}

	path := "/atividades"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing response: %w", err)
	}

	activities := []Activity{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &activities); err != nil {
			c.logger.Warn("listing response is not a JSON array, treating as empty",
				"error", err)
			activities = []Activity{}
		}
	}

	if c.listGen.Load() != gen {
		return nil, ErrStaleResponse
	}
	return activities, nil
}

// SubmitActivity posts a new activity as a multipart form, attaching
// the photo file when sub.PhotoPath is set. The server's verbatim
// mensagem/detail is returned for both accepted and rejected
// submissions.
func (c *Client) SubmitActivity(ctx context.Context, sub Submission) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"localizacao":  string(sub.Country),
		"nome_local":   sub.PlaceName,
		"tipo_codigo":  strconv.Itoa(sub.TypeCode),
		"kilometragem": strconv.Itoa(sub.DistanceKm),
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if sub.PhotoPath != "" {
		file, err := os.Open(sub.PhotoPath)
		if err != nil {
			return "", fmt.Errorf("failed to open photo: %w", err)
		}
		defer file.Close()

		part, err := mw.CreateFormFile("foto", filepath.Base(sub.PhotoPath))
		if err != nil {
			return "", fmt.Errorf("failed to create photo part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return "", fmt.Errorf("failed to copy photo: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/registrar_atividade", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("submission request failed: %w", err)
	}
	defer resp.Body.Close()

	var msg serverMessage
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return "", fmt.Errorf("failed to decode submission response: %w", err)
	}
	return msg.text(), nil
}

// ExportCSV streams the CSV export into w without touching the bytes.
func (c *Client) ExportCSV(ctx context.Context, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/exportar_csv", nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return 0, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("export request returned status %d", resp.StatusCode)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to write export: %w", err)
	}
	return n, nil
}

// DownloadPhoto fetches a server-relative photo path into filename.
// Downloads are rate limited so photo batches stay polite.
func (c *Client) DownloadPhoto(ctx context.Context, photoPath, filename string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodGet, photoPath, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("photo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("photo request returned status %d", resp.StatusCode)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("failed to write photo %s: %w", filename, err)
	}
	return nil
}
