package xmlmap

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Load reads an XML document from a local path or HTTP(S) URL and parses
// it into its nested-mapping form.
func Load(pathOrURL string, opts ...Option) (map[string]any, error) {
	data, err := fetch(pathOrURL)
	if err != nil {
		return nil, err
	}

	return Parse(bytes.NewReader(data), opts...)
}

func fetch(pathOrURL string) ([]byte, error) {
	if !strings.HasPrefix(pathOrURL, "http") {
		data, err := os.ReadFile(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("xmlmap: failed to read %s: %w", pathOrURL, err)
		}

		return data, nil
	}

	resp, err := http.Get(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("xmlmap: failed to fetch %s: %w", pathOrURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("xmlmap: failed to fetch %s: status %s", pathOrURL, resp.Status)
	}

	var b bytes.Buffer
	if _, err := b.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("xmlmap: failed to read %s: %w", pathOrURL, err)
	}

	return b.Bytes(), nil
}
