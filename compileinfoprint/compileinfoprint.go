// compileinfoprint is imported by the rnacompete commands for the side effect
// of logging the command name and its compileinfo before anything else runs.
package compileinfoprint

import (
	"log"
	"os"
	"path/filepath"

	"github.com/carbocation/rnacompete/compileinfo"
)

func init() {
	log.Printf("%s %s\n", filepath.Base(os.Args[0]), compileinfo.Get())
}
