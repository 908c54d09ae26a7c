// Package googlesheets implements the SheetGateway on the Google Sheets API v4.
package googlesheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/sheet"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// readColumns bounds every table read
const readColumns = "A:Z"

type gateway struct {
	service *sheets.Service
}

// NewGateway creates a gateway from arbitrary client options
func NewGateway(ctx context.Context, opts ...option.ClientOption) (repository.SheetGateway, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &gateway{service: service}, nil
}

// NewServiceAccountGateway authenticates with a service account e-mail and PEM private key
func NewServiceAccountGateway(ctx context.Context, email, privateKey string) (repository.SheetGateway, error) {
	creds, err := serviceAccountJSON(email, privateKey)
	if err != nil {
		return nil, err
	}
	return NewGateway(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

func serviceAccountJSON(email, privateKey string) ([]byte, error) {
	if email == "" || privateKey == "" {
		return nil, apperror.New(apperror.ErrBackendNotConfigured, "Google service account credentials are missing")
	}
	creds, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": email,
		"private_key":  strings.ReplaceAll(privateKey, `\n`, "\n"),
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}
	return creds, nil
}

func (g *gateway) ReadTable(ctx context.Context, spreadsheetID, sheetName string) ([]repository.Row, error) {
	rangeRef := sheet.Range{Sheet: sheetName}.String() + "!" + readColumns

	resp, err := g.service.Spreadsheets.Values.Get(spreadsheetID, rangeRef).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyRead(sheetName, err)
	}

	return sheet.Records(resp.Values), nil
}

func (g *gateway) AppendRows(ctx context.Context, spreadsheetID, rangeRef string, rows [][]string) error {
	_, err := g.service.Spreadsheets.Values.Append(spreadsheetID, rangeRef, &sheets.ValueRange{
		Values: sheet.Strings(rows),
	}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to append rows", classifyWrite(err))
	}
	return nil
}

func (g *gateway) OverwriteRange(ctx context.Context, spreadsheetID, rangeRef string, rows [][]string) error {
	_, err := g.service.Spreadsheets.Values.Update(spreadsheetID, rangeRef, &sheets.ValueRange{
		Values: sheet.Strings(rows),
	}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return apperror.Wrap(apperror.ErrBackendWriteFailed, "failed to overwrite range", classifyWrite(err))
	}
	return nil
}

func isMissingSheet(apiErr *googleapi.Error) bool {
	if apiErr.Code == http.StatusNotFound {
		return true
	}
	return apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "Unable to parse range")
}

func classifyRead(sheetName string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && isMissingSheet(apiErr) {
		return apperror.Wrap(apperror.ErrSheetNotFound, fmt.Sprintf("sheet %q not found", sheetName), err)
	}
	return apperror.Wrap(apperror.ErrBackendUnavailable, "failed to read sheet", err)
}

func classifyWrite(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && isMissingSheet(apiErr) {
		return apperror.Wrap(apperror.ErrSheetNotFound, "target sheet not found", err)
	}
	return err
}
