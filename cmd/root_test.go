package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	// Passwords with spaces survive intact.
	line, err := readLine(strings.NewReader("correct horse battery\n"))
	require.NoError(t, err)
	assert.Equal(t, "correct horse battery", line)

	// CRLF line endings are trimmed.
	line, err = readLine(strings.NewReader("s3cret\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", line)

	// A final line without a newline still counts.
	line, err = readLine(strings.NewReader("s3cret"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", line)

	// Empty input is an error.
	_, err = readLine(strings.NewReader(""))
	assert.Error(t, err)
}
