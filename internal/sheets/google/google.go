package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"moneybook/internal/log"
	"moneybook/internal/sheets"
)

const (
	DefaultSummarySheet      = "Summary"
	DefaultBreakdownSheet    = "Breakdown"
	DefaultTransactionsSheet = "Transactions"
)

type Client struct {
	svc               *gsheet.Service
	spreadsheetID     string
	summarySheet      string
	breakdownSheet    string
	transactionsSheet string
	logger            *log.Logger
}

var _ sheets.SnapshotWriter = (*Client)(nil)

// Credentials selects a service account key. JSON wins over File.
type Credentials struct {
	JSON string
	File string
}

type Option func(*Client)

// WithSheetNames overrides the tab names. Empty names keep the default.
func WithSheetNames(summary, breakdown, transactions string) Option {
	return func(c *Client) {
		if summary != "" {
			c.summarySheet = summary
		}
		if breakdown != "" {
			c.breakdownSheet = breakdown
		}
		if transactions != "" {
			c.transactionsSheet = transactions
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l.WithComponent(log.ComponentSheets) }
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, spreadsheetID string, creds Credentials, opts ...Option) (*Client, error) {
	credentialsJSON, err := creds.load()
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewWithService(svc, spreadsheetID, opts...)
}

// NewWithService wraps an already configured service.
func NewWithService(svc *gsheet.Service, spreadsheetID string, opts ...Option) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	c := &Client{
		svc:               svc,
		spreadsheetID:     spreadsheetID,
		summarySheet:      DefaultSummarySheet,
		breakdownSheet:    DefaultBreakdownSheet,
		transactionsSheet: DefaultTransactionsSheet,
		logger:            log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (cr Credentials) load() ([]byte, error) {
	switch {
	case strings.TrimSpace(cr.JSON) != "":
		return []byte(cr.JSON), nil
	case strings.TrimSpace(cr.File) != "":
		b, err := os.ReadFile(cr.File)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}
}

// WriteSnapshot clears the three export tabs and rewrites them in one batch.
func (c *Client) WriteSnapshot(ctx context.Context, snap sheets.Snapshot) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	ranges := []string{
		sheetRange(c.summarySheet),
		sheetRange(c.breakdownSheet),
		sheetRange(c.transactionsSheet),
	}
	if _, err := c.svc.Spreadsheets.Values.BatchClear(c.spreadsheetID,
		&gsheet.BatchClearValuesRequest{Ranges: ranges}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear export sheets: %w", err)
	}

	req := &gsheet.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data: []*gsheet.ValueRange{
			{Range: ranges[0], Values: snap.SummaryRows()},
			{Range: ranges[1], Values: snap.BreakdownRows()},
			{Range: ranges[2], Values: snap.TransactionRows()},
		},
	}
	resp, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write export sheets: %w", err)
	}

	c.logger.InfoContext(ctx, "Snapshot exported",
		log.FieldOperation, log.OpExport,
		log.FieldCount, len(snap.Transactions),
		"updated_cells", resp.TotalUpdatedCells)
	return nil
}

// sheetRange addresses a whole tab, quoting names with spaces.
func sheetRange(name string) string {
	if strings.ContainsAny(name, " '!") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}
