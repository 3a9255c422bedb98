package util

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserCommands 各平台依次尝试的打开方式
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 稳定
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		return [][]string{
			{"xdg-open", url},
			{"google-chrome", url},
			{"firefox", url},
			{"chromium-browser", url},
			{"sensible-browser", url},
		}
	}
}

// OpenBrowser 用系统默认方式打开看板地址
func OpenBrowser(url string) error {
	cmds := browserCommands(runtime.GOOS, url)
	return exec.Command(cmds[0][0], cmds[0][1:]...).Start()
}

// OpenBrowserWithFallback 默认方式失败时依次尝试备选浏览器
func OpenBrowserWithFallback(url string) error {
	var firstErr error
	for _, c := range browserCommands(runtime.GOOS, url) {
		err := exec.Command(c[0], c[1:]...).Start()
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return fmt.Errorf("open browser %s: %w", url, firstErr)
}
