package fecparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name          string
		raw           []byte
		want          string
		lowConfidence bool
	}{
		{
			name: "plain utf-8",
			raw:  []byte("JournalCode\tEcritureLib\nVT\tVente générale\n"),
			want: EncodingUTF8,
		},
		{
			name: "utf-8 with BOM",
			raw:  append([]byte{0xEF, 0xBB, 0xBF}, []byte("JournalCode\n")...),
			want: EncodingUTF8Sig,
		},
		{
			name: "windows-1252 accented text",
			// "général" with é as 0xE9, invalid UTF-8
			raw:  []byte{'g', 0xE9, 'n', 0xE9, 'r', 'a', 'l'},
			want: EncodingWindows1252,
		},
		{
			name: "byte undefined in windows-1252 falls back to latin-1",
			raw:  []byte{'a', 0xE9, 0x81, 'b'},
			want:          EncodingLatin1,
			lowConfidence: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, low := DetectEncoding(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.lowConfidence, low)
		})
	}
}

func TestDecode(t *testing.T) {
	// Windows-1252 "Vente générale"
	raw := []byte{'V', 'e', 'n', 't', 'e', ' ', 'g', 0xE9, 'n', 0xE9, 'r', 'a', 'l', 'e'}
	content, encoding, low, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, EncodingWindows1252, encoding)
	assert.False(t, low)
	assert.Equal(t, "Vente générale", content)
}

func TestDecode_BOMStripped(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("JournalCode")...)
	content, encoding, _, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8Sig, encoding)
	assert.Equal(t, "JournalCode", content)
}
