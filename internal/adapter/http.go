package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/utils"
	"github.com/MKhiriev/go-files-manager/models"
	"github.com/go-resty/resty/v2"
)

const tokenHeader = "X-Token"

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter normalises cfg.HTTPAddress into a base URL and builds
// a resty-backed [ServerAdapter] with the configured request timeout.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, email, password string) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Email: email, Password: password}).
		SetResult(&user).
		Post("/users")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) Connect(ctx context.Context, email, password string) (models.Token, error) {
	var token models.Token

	resp, err := h.client.R().
		SetContext(ctx).
		SetBasicAuth(email, password).
		SetResult(&token).
		Get("/connect")
	if err != nil {
		return models.Token{}, fmt.Errorf("connect request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	h.SetToken(token.Token)
	return token, nil
}

func (h *httpServerAdapter) Disconnect(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Get("/disconnect")
	if err != nil {
		return fmt.Errorf("disconnect request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := h.getJSON(ctx, "/users/me", nil, &user)
	return user, err
}

func (h *httpServerAdapter) CreateEntry(ctx context.Context, entry models.CreateEntryRequest) (models.FileEntry, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.FileEntry{}, err
	}

	var created models.FileEntry
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(entry).
		SetResult(&created).
		Post("/files")
	if err != nil {
		return models.FileEntry{}, fmt.Errorf("create entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FileEntry{}, err
	}

	return created, nil
}

func (h *httpServerAdapter) GetEntry(ctx context.Context, id string) (models.FileEntry, error) {
	var entry models.FileEntry
	err := h.getJSON(ctx, "/files/"+url.PathEscape(id), nil, &entry)
	return entry, err
}

func (h *httpServerAdapter) ListEntries(ctx context.Context, parentID models.ParentID, page int) ([]models.FileEntry, error) {
	query := map[string]string{"page": strconv.Itoa(page)}
	if !parentID.IsRoot() {
		query["parentId"] = parentID.String()
	}

	entries := []models.FileEntry{}
	err := h.getJSON(ctx, "/files", query, &entries)
	return entries, err
}

func (h *httpServerAdapter) SetPublic(ctx context.Context, id string, isPublic bool) (models.FileEntry, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.FileEntry{}, err
	}

	action := "unpublish"
	if isPublic {
		action = "publish"
	}

	var entry models.FileEntry
	resp, err := req.SetResult(&entry).Put("/files/" + url.PathEscape(id) + "/" + action)
	if err != nil {
		return models.FileEntry{}, fmt.Errorf("%s request: %w", action, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FileEntry{}, err
	}

	return entry, nil
}

// Download works without a session for public entries.
func (h *httpServerAdapter) Download(ctx context.Context, id string, size int) ([]byte, error) {
	req := h.client.R().SetContext(ctx).SetHeader("Accept", "*/*")
	if token := h.Token(); token != "" {
		req.SetHeader(tokenHeader, token)
	}
	if size != 0 {
		req.SetQueryParam("size", strconv.Itoa(size))
	}

	resp, err := req.Get("/files/" + url.PathEscape(id) + "/data")
	if err != nil {
		return nil, fmt.Errorf("download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func (h *httpServerAdapter) Status(ctx context.Context) (models.Status, error) {
	var status models.Status
	err := h.getPublicJSON(ctx, "/status", &status)
	return status, err
}

func (h *httpServerAdapter) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := h.getPublicJSON(ctx, "/stats", &stats)
	return stats, err
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().SetContext(ctx).SetHeader(tokenHeader, token), nil
}

func (h *httpServerAdapter) getJSON(ctx context.Context, path string, query map[string]string, result any) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetQueryParams(query).SetResult(result).Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) getPublicJSON(ctx context.Context, path string, result any) error {
	resp, err := h.client.R().SetContext(ctx).SetResult(result).Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return mapHTTPError(resp)
}
