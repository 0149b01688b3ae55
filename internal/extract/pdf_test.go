package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterLines(t *testing.T) {
	text := "招商银行信用卡对账单\n\n  03/10 03/12 沃尔玛超市 128.50 1234  \r\n交易日 记账日 交易摘要\n03/12 信用卡还款 -500.00 5678\n   \n"

	lines := FilterLines(text)

	assert.Equal(t, []string{
		"03/10 03/12 沃尔玛超市 128.50 1234",
		"03/12 信用卡还款 -500.00 5678",
	}, lines)
}

func TestFilterLines_Empty(t *testing.T) {
	assert.Empty(t, FilterLines(""))
	assert.Empty(t, FilterLines("header\nfooter"))
}

func TestPDFLines_MissingFile(t *testing.T) {
	_, err := PDF{}.Lines(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open PDF")
}

func TestPDFLines_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a pdf"), 0644))

	_, err := PDF{}.Lines(context.Background(), path)
	assert.Error(t, err)
}
