package service

import (
	"fmt"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	if key := os.Getenv("UNIDOC_LICENSE_API_KEY"); key != "" {
		if err := SetupPDFLicense(key); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	os.Exit(m.Run())
}

// requirePDFLicense skips tests that write a document; unipdf rejects
// the write unless a license key was registered in TestMain.
func requirePDFLicense(t *testing.T) {
	t.Helper()
	if os.Getenv("UNIDOC_LICENSE_API_KEY") == "" {
		t.Skip("UNIDOC_LICENSE_API_KEY not set")
	}
}
