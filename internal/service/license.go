package service

import (
	"fmt"

	"github.com/unidoc/unipdf/v3/common/license"
)

// SetupPDFLicense registers the unidoc metered license key. unipdf will
// not write documents until a key is set, so this must run before the
// first report is composed.
func SetupPDFLicense(key string) error {
	if key == "" {
		return fmt.Errorf("unidoc license key is empty")
	}
	if err := license.SetMeteredKey(key); err != nil {
		return fmt.Errorf("failed to register unidoc license: %w", err)
	}
	return nil
}
