package translator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Translate(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash is not available")
	}
	dir := t.TempDir()
	location := filepath.Join(dir, "sum.fbp")
	require.NoError(t, os.WriteFile(location, []byte(`{"processes":{}}`), 0644))

	srv := New(WithCommand("cat"), WithTimeout(10*time.Second))
	output, err := srv.Translate(context.Background(), location)
	require.NoError(t, err)
	assert.Contains(t, string(output), `{"processes":{}}`)

	srv = New(WithCommand("false"))
	_, err = srv.Translate(context.Background(), location)
	assert.Error(t, err)
}

func TestService_TranslateScheme(t *testing.T) {
	_, err := New().Translate(context.Background(), "s3://bucket/sum.fbp")
	assert.Error(t, err)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'/tmp/a b'`, quote("/tmp/a b"))
	assert.Equal(t, `'it'\''s'`, quote("it's"))
}
