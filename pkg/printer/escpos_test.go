package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_StartsWithInit(t *testing.T) {
	d := NewDocument(32)
	assert.Equal(t, []byte{ESC, '@'}, d.Bytes()[:2])
}

func TestDocument_KeyValueAlignment(t *testing.T) {
	d := NewDocument(32)
	d.KeyValue("Total", "45.48")

	out := d.Bytes()[2:] // skip init
	line := string(bytes.TrimSuffix(out, []byte{LF}))

	assert.Len(t, line, 32)
	assert.Equal(t, "Total", line[:5])
	assert.Equal(t, "45.48", line[len(line)-5:])
}

func TestDocument_KeyValueOverflowKeepsOneSpace(t *testing.T) {
	d := NewDocument(10)
	d.KeyValue("A very long key", "99.99")

	line := string(bytes.TrimSuffix(d.Bytes()[2:], []byte{LF}))
	assert.Equal(t, "A very long key 99.99", line)
}

func TestDocument_ItemLine(t *testing.T) {
	d := NewDocument(32)
	d.ItemLine(2, "Widget", "20.00")

	line := string(bytes.TrimSuffix(d.Bytes()[2:], []byte{LF}))
	assert.Len(t, line, 32)
	assert.Equal(t, "2x Widget", line[:9])
	assert.Equal(t, "20.00", line[len(line)-5:])
}

func TestDocument_Separator(t *testing.T) {
	d := NewDocument(16)
	d.Separator('-')

	line := string(bytes.TrimSuffix(d.Bytes()[2:], []byte{LF}))
	assert.Equal(t, "----------------", line)
}

func TestDocument_CutCommand(t *testing.T) {
	d := NewDocument(32)
	d.Cut()

	out := d.Bytes()
	assert.Equal(t, []byte{GS, 'V', 0x00}, out[len(out)-3:])
}

func TestDocument_ZeroWidthDefaults(t *testing.T) {
	d := NewDocument(0)
	d.Separator('=')

	line := string(bytes.TrimSuffix(d.Bytes()[2:], []byte{LF}))
	assert.Len(t, line, 32)
}

func TestDocument_Reset(t *testing.T) {
	d := NewDocument(32)
	d.Text("something")
	d.Reset()

	assert.Equal(t, []byte{ESC, '@'}, d.Bytes())
}
