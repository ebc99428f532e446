package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Alia5/autoremap/internal/hidutil"
	"github.com/Alia5/autoremap/internal/keymap"
)

// Table prints the mapping table the daemon installs for a presence state.
type Table struct {
	Present bool `help:"Print the table used while the keyboard is connected"`
	Pretty  bool `help:"Indent the output"`

	Out io.Writer `kong:"-"`
}

// Run is called by Kong when the table command is executed.
func (t *Table) Run() error {
	out := t.Out
	if out == nil {
		out = os.Stdout
	}
	payload, err := hidutil.Encode(keymap.DefaultPolicy().Table(t.Present))
	if err != nil {
		return err
	}
	if t.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, payload, "", "  "); err != nil {
			return err
		}
		payload = buf.Bytes()
	}
	_, err = fmt.Fprintln(out, string(payload))
	return err
}
