package constants

import (
	"time"
)

// Application identity
const (
	// AppName - name shown in the dialog title and used for the log directory
	AppName = "AutoClick"

	// IconFile - icon looked up next to the working directory, then next to the executable
	IconFile = "kitty.ico"
)

// Sleep inhibition
const (
	// ReassertInterval - how often the stay-awake signal is refreshed (60 seconds)
	// The execution state is advisory and some systems let it decay.
	ReassertInterval = 60 * time.Second
)

// Startup dialog geometry
const (
	// DialogWidth - client area width of the startup dialog
	DialogWidth = 360

	// DialogHeight - client area height of the startup dialog
	DialogHeight = 150

	// DialogIconSize - the app icon is stretched to this square size in the dialog
	DialogIconSize = 48
)

// User-visible text. Not localized.
const (
	TrayTooltip = "防休眠程序运行中..."

	MenuExitLabel   = "退出"
	MenuExitTooltip = "退出防休眠程序"

	BalloonTitle   = "开始工作"
	BalloonMessage = "防休眠模式已开启, 电脑将不会自动息屏或休眠。"

	DialogTitle   = AppName
	DialogMessage = "防休眠程序已启动, 电脑将不会自动息屏或休眠。"
	DialogButton  = "确定"
)
