package env

import (
	"os"

	"github.com/3-lines-studio/jamb/internal/core"
)

const DevVar = "JAMB_DEV"

func DetectMode() core.Mode {
	switch os.Getenv(DevVar) {
	case "1", "true":
		return core.ModeDev
	}
	return core.ModeProd
}
