package cli

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyrionz/SafeArchive/pkg/cli/testdata"
	"github.com/xyrionz/SafeArchive/pkg/version"
)

func TestVersion(t *testing.T) {
	c := CommandContext{
		ClientFactory: &testdata.MockClientFactory{},
		StdOut:        os.Stdout,
		StdErr:        os.Stderr,
		StdIn:         strings.NewReader(""),
	}

	r, w, _ := os.Pipe()
	os.Stdout = w
	cmd := NewVersion(c)
	require.NoError(t, cmd.Execute())
	w.Close()
	out, _ := io.ReadAll(r)
	assert.Equal(t, "safearchive version "+version.Get()+"\n", string(out))
}
