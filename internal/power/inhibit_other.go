//go:build !windows

package power

type unsupportedInhibitor struct{}

func newInhibitor() Inhibitor {
	return unsupportedInhibitor{}
}

func (unsupportedInhibitor) Assert() error  { return ErrUnsupported }
func (unsupportedInhibitor) Release() error { return ErrUnsupported }
