//go:build windows

package mute

// muteCommand sends the volume-mute media key. It toggles, so Mute and
// Unmute issue the same keystroke.
func muteCommand(bool) []string {
	return []string{"powershell", "-NoProfile", "-Command",
		"(New-Object -ComObject WScript.Shell).SendKeys([char]173)"}
}
