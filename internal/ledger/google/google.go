package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"bahtbot/internal/core"
	"bahtbot/internal/ledger"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client is the Google Sheets ledger adapter. The sheet layout is fixed:
// columns A-F hold timestamp, type, item, amount, balance, category, and
// row 1 is a header that is never treated as data.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ledger.Store = (*Client)(nil)

// New creates a client for an already-initialized Sheets service.
func New(svc *gsheet.Service, spreadsheetID, sheetName string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

// NewFromEnv creates a Sheets ledger client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Optional: GOOGLE_SHEET_NAME (default
// "ExpenseTracker") and service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "ExpenseTracker"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return New(svc, spreadsheetID, sheetName), nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

func (c *Client) ReadAll(ctx context.Context) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, unavailable(fmt.Sprintf("read %s", rng), err)
	}
	var out []core.Transaction
	for i, row := range resp.Values {
		if i == 0 {
			// Header row.
			continue
		}
		out = append(out, parseRow(row))
	}
	return out, nil
}

func (c *Client) Append(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{{
		t.Timestamp.Format(core.TimestampLayout),
		string(t.Type),
		t.Item,
		t.Amount,
		t.Balance,
		t.CategoryOrDefault(),
	}}}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return unavailable(fmt.Sprintf("append to %s", c.sheetName), err)
	}

	slog.InfoContext(ctx, "Ledger row appended",
		"item", t.Item,
		"type", string(t.Type),
		"amount", t.Amount,
		"balance", t.Balance)
	return nil
}

// LastBalance reads the balance cell of the newest row, avoiding a full
// table scan: one read of column A for the row count, one single-cell read.
func (c *Client) LastBalance(ctx context.Context) (int64, error) {
	if c.svc == nil {
		return 0, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, unavailable(fmt.Sprintf("read %s", rng), err)
	}
	lastRow := len(resp.Values)
	if lastRow <= 1 {
		// Only the header (or nothing at all): the ledger is empty.
		return 0, nil
	}

	cell := fmt.Sprintf("%s!E%d", c.sheetName, lastRow)
	cellResp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, cell).Context(ctx).Do()
	if err != nil {
		return 0, unavailable(fmt.Sprintf("read %s", cell), err)
	}
	if len(cellResp.Values) == 0 || len(cellResp.Values[0]) == 0 {
		return 0, nil
	}
	balance, ok := parseInt(cellResp.Values[0][0])
	if !ok {
		// Non-numeric balance cell is legacy garbage; treat as zero like
		// an empty ledger rather than failing the transaction.
		return 0, nil
	}
	return balance, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w (%v)", op, ledger.ErrUnavailable, err)
}
