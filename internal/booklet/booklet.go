package booklet

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// margin keeps images clear of printer edges, in millimeters.
const margin = 15.0

// PDF lays each image of a bundle directory onto its own A4 portrait
// page, aspect-fit and centered, and returns the rendered document.
func PDF(dir, title string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".png") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}
	sortByIndex(names)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)

	pageW, pageH := pdf.GetPageSize()
	usableW := pageW - 2*margin
	usableH := pageH - 2*margin

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for _, name := range names {
		path := filepath.Join(dir, name)
		pdf.AddPage()

		info := pdf.RegisterImageOptions(path, opts)
		if pdf.Err() {
			return nil, fmt.Errorf("failed to place image %s: %v", name, pdf.Error())
		}

		w := usableW
		h := w * info.Height() / info.Width()
		if h > usableH {
			h = usableH
			w = h * info.Width() / info.Height()
		}
		x := (pageW - w) / 2
		y := (pageH - h) / 2
		pdf.ImageOptions(path, x, y, w, h, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// sortByIndex orders generated_image_<n>.png names numerically so page
// order follows generation order rather than lexical order.
func sortByIndex(names []string) {
	index := func(name string) int {
		var n int
		if _, err := fmt.Sscanf(name, "generated_image_%d.png", &n); err != nil {
			return 1 << 30
		}
		return n
	}
	sort.Slice(names, func(i, j int) bool {
		return index(names[i]) < index(names[j])
	})
}
