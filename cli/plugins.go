package cli

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/yandex/logcast/core/plugin"
)

// printPlugins writes registered plugin names by plugin type, in registration order.
func printPlugins(w io.Writer, r *plugin.Registry) error {
	listing := map[string][]string{}
	for _, t := range r.Types() {
		listing[t.String()] = r.Names(t)
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listing)
}
