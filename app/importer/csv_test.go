package importer

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader(t *testing.T) {
	t.Run("Valid CSV", func(t *testing.T) {
		reader, err := NewReader([]byte("title,branch\nSmart Bin,ICT"))

		require.NoError(t, err)
		assert.Equal(t, []string{"title", "branch"}, reader.Headers())
	})

	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		reader, err := NewReader([]byte("\xEF\xBB\xBFtitle,branch\nSmart Bin,ICT"))

		require.NoError(t, err)
		assert.Equal(t, "title", reader.Headers()[0])
	})

	t.Run("Header cells are trimmed", func(t *testing.T) {
		reader, err := NewReader([]byte("  Project Title  , Select Branch \nSmart Bin,ICT"))

		require.NoError(t, err)
		assert.Equal(t, []string{"Project Title", "Select Branch"}, reader.Headers())
	})

	t.Run("Empty file", func(t *testing.T) {
		_, err := NewReader([]byte(""))
		assert.ErrorIs(t, err, ErrEmptyFile)

		_, err = NewReader([]byte("   \n  \n"))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
}

func TestReaderRead(t *testing.T) {
	t.Run("Rows keyed by header", func(t *testing.T) {
		reader, err := NewReader([]byte("title,branch\nSmart Bin,ICT\nSolar Dryer,EC"))
		require.NoError(t, err)

		row, err := reader.Read()
		require.NoError(t, err)
		assert.Equal(t, "Smart Bin", row.Get("title"))
		assert.Equal(t, "ICT", row.Get("branch"))
		assert.Equal(t, 1, row.Position)

		row, err = reader.Read()
		require.NoError(t, err)
		assert.Equal(t, "Solar Dryer", row.Get("title"))
		assert.Equal(t, 2, row.Position)

		_, err = reader.Read()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("Blank rows are skipped and do not consume positions", func(t *testing.T) {
		csv := "title,branch\nSmart Bin,ICT\n,\n\nSolar Dryer,EC\n"
		reader, err := NewReader([]byte(csv))
		require.NoError(t, err)

		rows, err := reader.ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 1, rows[0].Position)
		assert.Equal(t, 2, rows[1].Position)
	})

	t.Run("Short rows are padded with empty cells", func(t *testing.T) {
		reader, err := NewReader([]byte("title,branch,mentorName\nSmart Bin,ICT"))
		require.NoError(t, err)

		row, err := reader.Read()
		require.NoError(t, err)
		assert.Equal(t, "", row.Get("mentorName"))
	})

	t.Run("Cell values are trimmed", func(t *testing.T) {
		reader, err := NewReader([]byte("title,branch\n  Smart Bin  , ICT "))
		require.NoError(t, err)

		row, err := reader.Read()
		require.NoError(t, err)
		assert.Equal(t, "Smart Bin", row.Get("title"))
		assert.Equal(t, "ICT", row.Get("branch"))
	})

	t.Run("Malformed quoting is a parse error", func(t *testing.T) {
		reader, err := NewReader([]byte("title,branch\n\"Smart Bin,ICT"))
		require.NoError(t, err)

		_, err = reader.Read()
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.True(t, IsInputError(err))
	})
}
