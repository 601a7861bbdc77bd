package cli

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xyrionz/SafeArchive/pkg/cli/testdata"
)

func TestInfo(t *testing.T) {
	var _, w, _ = os.Pipe()
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		wantOut        string
		commandContext CommandContext
	}{
		{
			name: "info",
			commandContext: CommandContext{
				ClientFactory: &testdata.MockClientFactory{},
				StdOut:        w,
				StdErr:        w,
				StdIn:         strings.NewReader(""),
			},
			args:    []string{},
			wantErr: false,
			wantOut: "---\narchiveCount: 1\ndestination: /var/lib/safearchive\nencryption: true\nexpiry: Forever\nprotected: false\nprovider: none\ntotalSize: 2048\nversion: v0.0.0-dev\n\n",
		},
		{
			name: "info json",
			commandContext: CommandContext{
				ClientFactory: &testdata.MockClientFactory{},
				StdOut:        w,
				StdErr:        w,
				StdIn:         strings.NewReader(""),
			},
			args:    []string{"-o", "json"},
			wantErr: false,
			wantOut: `{
    "version": "v0.0.0-dev",
    "destination": "/var/lib/safearchive",
    "archiveCount": 1,
    "totalSize": 2048,
    "encryption": true,
    "provider": "none",
    "expiry": "Forever",
    "protected": false
}
` + "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, w, _ := os.Pipe()
			os.Stdout = w
			cmd := NewInfo(tt.commandContext)
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			if err != nil && !tt.wantErr {
				assert.Failf(t, "got err when err not expected", "got err: %s", err.Error())
			} else if err != nil && tt.wantErr {
				assert.Equal(t, tt.wantOut, err.Error())
			} else {
				w.Close()
				out, _ := io.ReadAll(r)
				assert.Equal(t, tt.wantOut, string(out))
			}
		})
	}
}
