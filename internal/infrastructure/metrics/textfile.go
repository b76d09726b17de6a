package metrics

import (
	"bytes"

	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// WriteTextfile gathers the default registry and writes it in Prometheus
// text exposition format, suitable for the node-exporter textfile
// collector. A one-shot tool has no scrape endpoint to serve.
func WriteTextfile(fs interfaces.FileSystem, path string) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return errors.NewSystemError("cannot gather metrics", err)
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return errors.NewSystemError("cannot encode metrics", err)
		}
	}

	if err := fs.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.NewSystemError("cannot write metrics textfile", err)
	}

	return nil
}
