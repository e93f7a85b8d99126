package restyutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"sectorwatch/internal/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	report_dump_write = "dump.write"
)

// Output receives one formatted request/response exchange at a time.
type Output interface {
	Write(id string, contents string)
}

type FilesystemOutput struct {
	directory string
	tel       telemetry.API
}

// NewFilesystemOutput writes every exchange into its own file under dir,
// the directory is created if it does not exist.
func NewFilesystemOutput(dir string, tel telemetry.API) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{
		directory: dir,
		tel:       telemetry.NewScopedAPI("restyutil", tel),
	}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		o.tel.ReportWarning(report_dump_write, err, id)
	}
}

// DumpResponses writes every response received by client to output, files
// are named <n>.<label>.txt where n counts up from 1.
func DumpResponses(client *resty.Client, label string, output Output) {
	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&idcounter, 1)
		output.Write(fmt.Sprintf("%03d.%s.txt", id, label), formatHttpMessage(res))
		return nil
	})
}
