// Package client is a Go client for the nutrition tracker API. It carries an
// explicit session (base URL + token store) instead of ambient global state,
// and re-implements the aggregation the web frontend computes locally:
// daily totals, the protein complementarity bonus and the history series.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
	"github.com/sim1zzo/vegan-nutrition-tracker/services"
)

// TokenStore abstracts where the bearer token lives, so a test can use the
// in-memory store and an app can persist it wherever it wants.
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemoryTokenStore keeps the token in memory only.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

func New(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

// Giornata is the wire shape of a daily log.
type Giornata struct {
	ID                uint                             `json:"id"`
	Data              string                           `json:"data"`
	Pasti             map[string][]models.VoceAlimento `json:"pasti"`
	Integratori       map[string][]models.Integratore  `json:"integratori"`
	TotaliGiornalieri models.Nutrienti                 `json:"totaliGiornalieri"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`

	User     *models.User      `json:"user"`
	Giornata *Giornata         `json:"giornata"`
	Giornate []Giornata        `json:"giornate"`
	Alimenti []models.Alimento `json:"alimenti"`
	Ricette  []models.Ricetta  `json:"ricette"`
	Count    int               `json:"count"`
}

func (c *Client) Registrati(ctx context.Context, input services.RegistrazioneInput) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/registrazione", input)
	if err != nil {
		return nil, err
	}
	c.tokens.SetToken(env.Token)
	return env.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	c.tokens.SetToken(env.Token)
	return env.User, nil
}

// Logout deletes the token client-side; there is nothing to revoke
// server-side.
func (c *Client) Logout() {
	c.tokens.Clear()
}

func (c *Client) Profilo(ctx context.Context) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/profilo", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// GetGiornata fetches (and lazily creates) the log for one calendar day.
func (c *Client) GetGiornata(ctx context.Context, data string) (*Giornata, error) {
	env, err := c.do(ctx, http.MethodGet, "/giornate?data="+url.QueryEscape(data), nil)
	if err != nil {
		return nil, err
	}
	if len(env.Giornate) == 0 {
		return nil, fmt.Errorf("nessuna giornata per %s", data)
	}
	return &env.Giornate[0], nil
}

// SalvaGiornata persists the full content of a log. The server recomputes
// the totals; the returned copy is authoritative.
func (c *Client) SalvaGiornata(ctx context.Context, g *Giornata) (*Giornata, error) {
	input := services.GiornataInput{
		Pasti:       map[string][]services.VoceInput{},
		Integratori: map[string][]services.IntegratoreInput{},
	}
	for pasto, voci := range g.Pasti {
		for _, v := range voci {
			input.Pasti[pasto] = append(input.Pasti[pasto], services.VoceInput{
				Nome:      v.Nome,
				Quantita:  v.Quantita,
				Nutrienti: v.Nutrienti,
			})
		}
	}
	for pasto, integratori := range g.Integratori {
		for _, i := range integratori {
			input.Integratori[pasto] = append(input.Integratori[pasto], services.IntegratoreInput{
				Nome:     i.Nome,
				Dosaggio: i.Dosaggio,
			})
		}
	}

	env, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/giornate/%d", g.ID), input)
	if err != nil {
		return nil, err
	}
	return env.Giornata, nil
}

func (c *Client) Alimenti(ctx context.Context, query url.Values) ([]models.Alimento, error) {
	path := "/alimenti"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return env.Alimenti, nil
}

func (c *Client) Ricette(ctx context.Context) ([]models.Ricetta, error) {
	env, err := c.do(ctx, http.MethodGet, "/ricette", nil)
	if err != nil {
		return nil, err
	}
	return env.Ricette, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("risposta non valida: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}
