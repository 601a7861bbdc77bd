package cli

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xyrionz/SafeArchive/pkg/cli/testdata"
)

func TestArchive(t *testing.T) {
	var _, w, _ = os.Pipe()
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		wantOut        string
		commandContext CommandContext
	}{
		{
			name: "archive",
			commandContext: CommandContext{
				ClientFactory: &testdata.MockClientFactory{},
				StdOut:        w,
				StdErr:        w,
				StdIn:         strings.NewReader(""),
			},
			args:    []string{},
			wantErr: false,
			wantOut: "NAME       FILE               SIZE      ENCRYPTED   CREATED       DIGEST\nvacation   vacation.zip.enc   2.0 KiB   *           2 hours ago   0123456789ab\n",
		},
		{
			name: "archive vacation",
			commandContext: CommandContext{
				ClientFactory: &testdata.MockClientFactory{},
				StdOut:        w,
				StdErr:        w,
				StdIn:         strings.NewReader(""),
			},
			args:    []string{"vacation"},
			wantErr: false,
			wantOut: "NAME       FILE               SIZE      ENCRYPTED   CREATED       DIGEST\nvacation   vacation.zip.enc   2.0 KiB   *           2 hours ago   0123456789ab\n",
		},
		{
			name: "archive filters by name",
			commandContext: CommandContext{
				ClientFactory: &testdata.MockClientFactory{},
				StdOut:        w,
				StdErr:        w,
				StdIn:         strings.NewReader(""),
			},
			args:    []string{"vacation", "other"},
			wantErr: false,
			wantOut: "NAME       FILE               SIZE      ENCRYPTED   CREATED       DIGEST\nvacation   vacation.zip.enc   2.0 KiB   *           2 hours ago   0123456789ab\n",
		},
		{
			name: "archive quiet",
			commandContext: CommandContext{
				ClientFactory: &testdata.MockClientFactory{},
				StdOut:        w,
				StdErr:        w,
				StdIn:         strings.NewReader(""),
			},
			args:    []string{"-q"},
			wantErr: false,
			wantOut: "vacation\n",
		},
		{
			name: "archive dne",
			commandContext: CommandContext{
				ClientFactory: &testdata.MockClientFactory{},
				StdOut:        w,
				StdErr:        w,
				StdIn:         strings.NewReader(""),
			},
			args:    []string{"dne"},
			wantErr: true,
			wantOut: "archive not found: dne",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, w, _ := os.Pipe()
			os.Stdout = w
			cmd := NewArchive(tt.commandContext)
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
