//go:build !windows

package debug

// processRSS is not implemented outside Windows; heap stats still get logged.
func processRSS() (uint64, error) {
	return 0, nil
}
