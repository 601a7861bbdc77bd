package cli

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/cli/testdata"
)

func TestPrune(t *testing.T) {
	var _, w, _ = os.Pipe()
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		wantOut        string
		commandContext CommandContext
	}{
		{
			name: "prune with expired archives",
			commandContext: CommandContext{
				ClientFactory: &testdata.MockClientFactory{
					PruneList: []apiv1.Archive{
						{Name: "old", FileName: "old.zip"},
						{Name: "older", FileName: "older.zip.enc"},
					},
				},
				StdOut: w,
				StdErr: w,
				StdIn:  strings.NewReader(""),
			},
			args:    []string{},
			wantErr: false,
			wantOut: "old.zip\nolder.zip.enc\n",
		},
		{
			name: "prune quiet with nothing to do",
			commandContext: CommandContext{
				ClientFactory: &testdata.MockClientFactory{},
				StdOut:        w,
				StdErr:        w,
				StdIn:         strings.NewReader(""),
			},
			args:    []string{"-q"},
			wantErr: false,
			wantOut: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, w, _ := os.Pipe()
			os.Stdout = w
			cmd := NewPrune(tt.commandContext)
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
