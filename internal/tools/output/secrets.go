package output

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MaskedValue replaces every masked password.
const MaskedValue = "******"

// DatabasePasswordPaths lists the password fields of a database appliance.
var DatabasePasswordPaths = []string{
	"Settings.DBConf.Common.UserPassword",
	"Remark.DBConf.Common.UserPassword",
}

// MaskDatabasePasswords sets every path of DatabasePasswordPaths to
// MaskedValue in the appliance document. A path is masked whenever its parent
// object exists, even if the password field itself is absent. Paths whose
// parent is missing or not an object are returned so the caller can log them.
func MaskDatabasePasswords(appliance []byte) ([]byte, []string) {
	out := appliance
	var skipped []string
	for _, path := range DatabasePasswordPaths {
		parent := path[:strings.LastIndex(path, ".")]
		if !gjson.GetBytes(out, parent).IsObject() {
			skipped = append(skipped, path)
			continue
		}
		masked, err := sjson.SetBytes(out, path, MaskedValue)
		if err != nil {
			skipped = append(skipped, path)
			continue
		}
		out = masked
	}
	return out, skipped
}
