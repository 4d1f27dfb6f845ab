//go:build windows

package dialog

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// Not defined by lxn/win.
const (
	stmSetIcon = 0x0170
	iconSmall  = 0
	iconBig    = 1
)

const className = "AutoClickStartupDialog"

var (
	registerOnce sync.Once
	registerErr  error
	instance     win.HINSTANCE

	// open tracks live dialog windows so the window procedure can mark
	// them closed. Windows deliver messages on the creating thread.
	openMu sync.Mutex
	open   = map[win.HWND]bool{}
)

func register() error {
	registerOnce.Do(func() {
		instance = win.GetModuleHandle(nil)
		if instance == 0 {
			registerErr = fmt.Errorf("GetModuleHandle: %w", syscall.GetLastError())
			return
		}

		name, err := syscall.UTF16PtrFromString(className)
		if err != nil {
			registerErr = err
			return
		}
		appIcon := win.LoadIcon(0, win.MAKEINTRESOURCE(win.IDI_APPLICATION))

		wc := win.WNDCLASSEX{
			CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
			Style:         win.CS_HREDRAW | win.CS_VREDRAW,
			LpfnWndProc:   syscall.NewCallback(wndProc),
			HInstance:     instance,
			HIcon:         appIcon,
			HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_ARROW)),
			HbrBackground: win.HBRUSH(win.COLOR_BTNFACE + 1),
			LpszClassName: name,
			HIconSm:       appIcon,
		}
		if win.RegisterClassEx(&wc) == 0 {
			registerErr = fmt.Errorf("RegisterClassEx: %w", syscall.GetLastError())
		}
	})
	return registerErr
}

func wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case win.WM_COMMAND:
		if wParam&0xFFFF == win.IDOK {
			win.DestroyWindow(hwnd)
			return 0
		}
	case win.WM_CLOSE:
		win.DestroyWindow(hwnd)
		return 0
	case win.WM_DESTROY:
		openMu.Lock()
		if _, ok := open[hwnd]; ok {
			open[hwnd] = false
		}
		openMu.Unlock()
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func isOpen(hwnd win.HWND) bool {
	openMu.Lock()
	defer openMu.Unlock()
	return open[hwnd]
}

// createIcon builds a size×size HICON from m. owned is false when the
// shared system icon is returned instead.
func createIcon(m image.Image, size int) (hicon win.HICON, owned bool) {
	if m != nil {
		if h := iconFromImage(m, size); h != 0 {
			return h, true
		}
	}
	return win.LoadIcon(0, win.MAKEINTRESOURCE(win.IDI_APPLICATION)), false
}

func iconFromImage(m image.Image, size int) win.HICON {
	pixels := iconPixels(m, size)

	hdc := win.GetDC(0)
	if hdc == 0 {
		return 0
	}
	defer win.ReleaseDC(0, hdc)

	bi := win.BITMAPINFOHEADER{
		BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
		BiWidth:       int32(size),
		BiHeight:      -int32(size), // top-down
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: win.BI_RGB,
	}
	var bits unsafe.Pointer
	color := win.CreateDIBSection(hdc, &bi, win.DIB_RGB_COLORS, &bits, 0, 0)
	if color == 0 || bits == nil {
		return 0
	}
	defer win.DeleteObject(win.HGDIOBJ(color))
	copy(unsafe.Slice((*byte)(bits), len(pixels)), pixels)

	// All-zero AND mask; the alpha channel decides transparency.
	maskBits := make([]byte, (size+15)/16*2*size)
	mask := win.CreateBitmap(int32(size), int32(size), 1, 1, unsafe.Pointer(&maskBits[0]))
	if mask == 0 {
		return 0
	}
	defer win.DeleteObject(win.HGDIOBJ(mask))

	info := win.ICONINFO{
		FIcon:    1,
		HbmColor: color,
		HbmMask:  mask,
	}
	return win.CreateIconIndirect(&info)
}

func createChild(parent win.HWND, class, text string, style uint32, x, y, w, h int, id uintptr) (win.HWND, error) {
	classPtr, err := syscall.UTF16PtrFromString(class)
	if err != nil {
		return 0, err
	}
	textPtr, err := syscall.UTF16PtrFromString(text)
	if err != nil {
		return 0, err
	}

	hwnd := win.CreateWindowEx(
		0,
		classPtr,
		textPtr,
		win.WS_CHILD|win.WS_VISIBLE|style,
		int32(x), int32(y), int32(w), int32(h),
		parent,
		win.HMENU(id),
		instance,
		nil,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("create %s control: %w", class, syscall.GetLastError())
	}
	return hwnd, nil
}

// place resizes hwnd so its client area is width×height and centers it on
// the primary screen.
func place(hwnd win.HWND, width, height int) {
	var wr, cr win.RECT
	win.GetWindowRect(hwnd, &wr)
	win.GetClientRect(hwnd, &cr)

	w := int32(width) + (wr.Right - wr.Left) - (cr.Right - cr.Left)
	h := int32(height) + (wr.Bottom - wr.Top) - (cr.Bottom - cr.Top)
	x := (win.GetSystemMetrics(win.SM_CXSCREEN) - w) / 2
	y := (win.GetSystemMetrics(win.SM_CYSCREEN) - h) / 2
	win.MoveWindow(hwnd, x, y, w, h, false)
}

func show(opts Options) error {
	// The window and its message loop must stay on one OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := register(); err != nil {
		return err
	}

	hicon, owned := createIcon(opts.Icon, opts.IconSize)
	if owned {
		defer win.DestroyIcon(hicon)
	}

	classPtr, err := syscall.UTF16PtrFromString(className)
	if err != nil {
		return err
	}
	titlePtr, err := syscall.UTF16PtrFromString(opts.Title)
	if err != nil {
		return err
	}

	hwnd := win.CreateWindowEx(
		win.WS_EX_DLGMODALFRAME|win.WS_EX_TOPMOST|win.WS_EX_TOOLWINDOW|win.WS_EX_CONTROLPARENT,
		classPtr,
		titlePtr,
		win.WS_POPUP|win.WS_CAPTION|win.WS_SYSMENU,
		0, 0, int32(opts.Width), int32(opts.Height),
		0, 0,
		instance,
		nil,
	)
	if hwnd == 0 {
		return fmt.Errorf("create dialog window: %w", syscall.GetLastError())
	}

	openMu.Lock()
	open[hwnd] = true
	openMu.Unlock()
	defer func() {
		openMu.Lock()
		alive := open[hwnd]
		delete(open, hwnd)
		openMu.Unlock()
		if alive {
			win.DestroyWindow(hwnd)
		}
	}()

	place(hwnd, opts.Width, opts.Height)

	win.SendMessage(hwnd, win.WM_SETICON, iconBig, uintptr(hicon))
	win.SendMessage(hwnd, win.WM_SETICON, iconSmall, uintptr(hicon))
	font := uintptr(win.GetStockObject(win.DEFAULT_GUI_FONT))

	picture, err := createChild(hwnd, "STATIC", "", win.SS_ICON, 24, 40, opts.IconSize, opts.IconSize, 0)
	if err != nil {
		return err
	}
	win.SendMessage(picture, stmSetIcon, uintptr(hicon), 0)

	label, err := createChild(hwnd, "STATIC", opts.Message, 0, 90, 30, opts.Width-120, 70, 0)
	if err != nil {
		return err
	}
	win.SendMessage(label, win.WM_SETFONT, font, 1)

	button, err := createChild(hwnd, "BUTTON", opts.Button, win.BS_DEFPUSHBUTTON|win.WS_TABSTOP,
		opts.Width-100, opts.Height-50, 80, 30, win.IDOK)
	if err != nil {
		return err
	}
	win.SendMessage(button, win.WM_SETFONT, font, 1)

	win.ShowWindow(hwnd, win.SW_SHOW)
	win.UpdateWindow(hwnd)
	win.SetForegroundWindow(hwnd)
	win.SetFocus(button)

	var msg win.MSG
	for isOpen(hwnd) {
		switch win.GetMessage(&msg, 0, 0, 0) {
		case -1:
			return fmt.Errorf("GetMessage: %w", syscall.GetLastError())
		case 0:
			// WM_QUIT on this thread ends the dialog.
			return nil
		}

		// Enter and Tab handling for the default button.
		if win.IsDialogMessage(hwnd, &msg) {
			continue
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
	return nil
}
