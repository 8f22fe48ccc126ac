// Package aggregator pulls a starting-balance snapshot from a Plaid-style
// bank-aggregation API. It is an alternate provenance for the same
// BalanceSnapshot the spreadsheet ingest produces; the projection engine
// never sees the difference.
package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Config carries the aggregation credentials and the mapping from provider
// account IDs to the four tracked accounts. Populated from the environment.
type Config struct {
	BaseURL     string `envconfig:"BASE_URL" default:"https://sandbox.plaid.com"`
	ClientID    string `envconfig:"CLIENT_ID" required:"true"`
	Secret      string `envconfig:"SECRET" required:"true"`
	AccessToken string `envconfig:"ACCESS_TOKEN" required:"true"`

	CheckingAccountID string `envconfig:"CHECKING_ACCOUNT_ID"`
	CardAAccountID    string `envconfig:"CARD_A_ACCOUNT_ID"`
	CardBAccountID    string `envconfig:"CARD_B_ACCOUNT_ID"`
	CardCAccountID    string `envconfig:"CARD_C_ACCOUNT_ID"`
}

// ConfigFromEnv reads the CASHPLAN_PLAID_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("CASHPLAN_PLAID", &cfg); err != nil {
		return Config{}, fmt.Errorf("aggregator config: %w", err)
	}
	return cfg, nil
}

// Client talks to the aggregation API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a client with a 30 second request timeout.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type account struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Subtype   string `json:"subtype"`
	Balances  struct {
		Current   decimal.Decimal `json:"current"`
		Available decimal.Decimal `json:"available"`
	} `json:"balances"`
}

type balancesResponse struct {
	Accounts []account `json:"accounts"`
}

type liabilitiesResponse struct {
	Liabilities struct {
		Credit []struct {
			AccountID            string          `json:"account_id"`
			LastStatementBalance decimal.Decimal `json:"last_statement_balance"`
		} `json:"credit"`
	} `json:"liabilities"`
}

type transactionsResponse struct {
	Transactions []struct {
		AccountID string          `json:"account_id"`
		Amount    decimal.Decimal `json:"amount"`
		Pending   bool            `json:"pending"`
	} `json:"transactions"`
}

// FetchSnapshot pulls balances, statement balances and pending charges as of
// the given time. Liabilities and transactions are optional on the provider
// side; their absence degrades to zero statements and zero pending amounts.
func (c *Client) FetchSnapshot(ctx context.Context, asOf time.Time) (*domain.BalanceSnapshot, error) {
	var balances balancesResponse
	if err := c.post(ctx, "/accounts/balance/get", map[string]any{}, &balances); err != nil {
		return nil, fmt.Errorf("fetch balances: %w", err)
	}

	snap := domain.NewBalanceSnapshot()
	byID := make(map[string]domain.Card)
	for card, id := range map[domain.Card]string{
		domain.CardA: c.cfg.CardAAccountID,
		domain.CardB: c.cfg.CardBAccountID,
		domain.CardC: c.cfg.CardCAccountID,
	} {
		if id != "" {
			byID[id] = card
		}
	}

	for _, acct := range balances.Accounts {
		if card, ok := byID[acct.AccountID]; ok {
			snap.Balances[card] = acct.Balances.Current
			continue
		}
		if acct.AccountID == c.cfg.CheckingAccountID ||
			(c.cfg.CheckingAccountID == "" && acct.Subtype == "checking") {
			snap.Checking = acct.Balances.Current
		}
	}

	var liabilities liabilitiesResponse
	if err := c.post(ctx, "/liabilities/get", map[string]any{}, &liabilities); err == nil {
		for _, credit := range liabilities.Liabilities.Credit {
			if card, ok := byID[credit.AccountID]; ok {
				snap.Statements[card] = credit.LastStatementBalance
			}
		}
	}

	var transactions transactionsResponse
	window := map[string]any{
		"start_date": asOf.AddDate(0, 0, -30).Format("2006-01-02"),
		"end_date":   asOf.Format("2006-01-02"),
	}
	if err := c.post(ctx, "/transactions/get", window, &transactions); err == nil {
		for _, tx := range transactions.Transactions {
			if !tx.Pending {
				continue
			}
			if card, ok := byID[tx.AccountID]; ok {
				snap.Pending[card] = snap.Pending[card].Add(tx.Amount)
			}
		}
	}

	return snap, nil
}

func (c *Client) post(ctx context.Context, path string, body map[string]any, out any) error {
	payload := map[string]any{
		"client_id":    c.cfg.ClientID,
		"secret":       c.cfg.Secret,
		"access_token": c.cfg.AccessToken,
	}
	for k, v := range body {
		payload[k] = v
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
