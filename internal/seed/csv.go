package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iconnecthq/iconnect/internal/account"
	"github.com/iconnecthq/iconnect/internal/catalog"
	enc "github.com/iconnecthq/iconnect/internal/encoding"
)

// colIndex maps lowercased column names to their index in the row.
type colIndex map[string]int

// ParseUsers reads a user CSV. Required columns: name, email. Optional:
// role, credits, admin. The header may appear after preamble rows, as
// spreadsheet exports often prepend a title line.
func ParseUsers(r io.Reader) ([]account.Account, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	cols, headerIdx, err := findHeader(rows, "name", "email")
	if err != nil {
		return nil, err
	}

	var accounts []account.Account

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2

		email := cellValue(row, cols["email"])
		if email == "" {
			continue
		}

		name := cellValue(row, cols["name"])
		if name == "" {
			return nil, fmt.Errorf("row %d: missing name", rowNum)
		}

		acct := account.Account{
			Name:  name,
			Email: email,
			Role:  "User",
		}

		if role := cellValue(row, colOr(cols, "role")); role != "" {
			acct.Role = role
		}

		if s := cellValue(row, colOr(cols, "credits")); s != "" {
			credits, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid credits %q", rowNum, s)
			}
			acct.Credits = credits
		}

		if s := cellValue(row, colOr(cols, "admin")); s != "" {
			admin, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid admin flag %q", rowNum, s)
			}
			acct.Admin = admin
		}

		accounts = append(accounts, acct)
	}

	return accounts, nil
}

// ParseProviders reads a provider CSV. Required columns: name, email.
// Optional: phone, specialty.
func ParseProviders(r io.Reader) ([]catalog.Provider, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	cols, headerIdx, err := findHeader(rows, "name", "email")
	if err != nil {
		return nil, err
	}

	var providers []catalog.Provider

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2

		email := cellValue(row, cols["email"])
		if email == "" {
			continue
		}

		name := cellValue(row, cols["name"])
		if name == "" {
			return nil, fmt.Errorf("row %d: missing name", rowNum)
		}

		providers = append(providers, catalog.Provider{
			Name:      name,
			Email:     email,
			Phone:     cellValue(row, colOr(cols, "phone")),
			Specialty: cellValue(row, colOr(cols, "specialty")),
		})
	}

	return providers, nil
}

// readRows decodes the input to UTF-8 and reads every CSV row.
func readRows(r io.Reader) ([][]string, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// findHeader scans rows for the first one containing all required
// columns. Returns the column index map and the header row index.
func findHeader(rows [][]string, required ...string) (colIndex, int, error) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		if hasAll(cols, required) {
			return cols, rowIdx, nil
		}
	}

	return nil, 0, fmt.Errorf("no header row found: expected columns %s", strings.Join(required, ", "))
}

func hasAll(cols colIndex, required []string) bool {
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// colOr returns the index of an optional column, or -1 when absent.
func colOr(cols colIndex, name string) int {
	if idx, ok := cols[name]; ok {
		return idx
	}

	return -1
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
