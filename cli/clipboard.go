package cli

import "golang.design/x/clipboard"

var clipboardReady = false

// copyCrashStateToClipboard places a savestate blob on the system
// clipboard as raw bytes, for attaching to a bug report. clipboard.Init
// touches the platform clipboard backend and is safe to call more than
// once, so it's lazily retried rather than attempted once at startup:
// a crash handler running on a headless CI box shouldn't itself panic.
func copyCrashStateToClipboard(data []byte) error {
	if !clipboardReady {
		if err := clipboard.Init(); err != nil {
			return err
		}
		clipboardReady = true
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}
