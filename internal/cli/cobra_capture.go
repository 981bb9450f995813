package cli

import "bytes"

// captureCobraOutput runs a command through the Cobra tree and returns what
// it printed, so the output can be shown inside the TUI instead of being
// written over the alternate screen.
func captureCobraOutput(app *App, args []string) string {
	if len(args) == 0 {
		return ""
	}

	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteString("\n")
		}
		buf.WriteString(shellError(err))
	}
	return buf.String()
}
