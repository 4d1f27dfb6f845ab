//go:build !windows

package dialog

func show(Options) error {
	return ErrUnsupported
}
