//go:build windows

package process

import "os/exec"

// KillStrayRenderers force-kills every Excel process system-wide.
// Best-effort recovery for a response-less instance holding file locks;
// errors ignored because there may simply be nothing to kill.
func KillStrayRenderers() {
	_ = exec.Command("taskkill", "/F", "/IM", "excel.exe").Run()
}
