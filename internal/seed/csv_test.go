package seed_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/iconnecthq/iconnect/internal/seed"
)

func TestParseUsers(t *testing.T) {
	csv := `name,email,role,credits,admin
John Doe,john.doe@example.com,Admin,10,true
Jane Smith,jane.smith@example.com,User,,
Peter Jones,peter.jones@example.com,,5,false
`

	users, err := seed.ParseUsers(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, "John Doe", users[0].Name)
	assert.Equal(t, "john.doe@example.com", users[0].Email)
	assert.Equal(t, "Admin", users[0].Role)
	assert.Equal(t, int64(10), users[0].Credits)
	assert.True(t, users[0].Admin)

	assert.Equal(t, "User", users[1].Role)
	assert.Equal(t, int64(0), users[1].Credits)
	assert.False(t, users[1].Admin)

	// Role defaults to User when the column is empty.
	assert.Equal(t, "User", users[2].Role)
	assert.Equal(t, int64(5), users[2].Credits)
}

func TestParseUsers_PreambleAndBlankRows(t *testing.T) {
	// Spreadsheet exports often carry a title line and trailing blanks.
	csv := `Exported users - 2026-08-01

name,email
John Doe,john.doe@example.com

`

	users, err := seed.ParseUsers(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "john.doe@example.com", users[0].Email)
}

func TestParseUsers_MissingHeader(t *testing.T) {
	_, err := seed.ParseUsers(strings.NewReader("foo,bar\n1,2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row found")
}

func TestParseUsers_InvalidCredits(t *testing.T) {
	csv := `name,email,credits
John Doe,john.doe@example.com,lots
`

	_, err := seed.ParseUsers(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credits")
}

func TestParseProviders(t *testing.T) {
	csv := `name,email,phone,specialty
Jane Smith,jane.smith@example.com,555-0101,Plumbing
Carlos Mendes,carlos.mendes@example.com,,Electrical
`

	providers, err := seed.ParseProviders(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, providers, 2)

	assert.Equal(t, "Jane Smith", providers[0].Name)
	assert.Equal(t, "555-0101", providers[0].Phone)
	assert.Equal(t, "Plumbing", providers[0].Specialty)

	assert.Empty(t, providers[1].Phone)
}

func TestParseProviders_Windows1252(t *testing.T) {
	// Exports from older machines arrive in Windows-1252.
	encoder := charmap.Windows1252.NewEncoder()
	raw, err := encoder.Bytes([]byte("name,email,specialty\nJoão Fernandes,joao@example.com,Canalização\n"))
	require.NoError(t, err)

	providers, err := seed.ParseProviders(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "João Fernandes", providers[0].Name)
	assert.Equal(t, "Canalização", providers[0].Specialty)
}
