package resources

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/stonegate/common"
	xdraw "golang.org/x/image/draw"
)

// ScanImageDir lists the PNG and JPEG files of dir as image sources, sorted by file name.
//
// Parameters:
//   - dir: the directory to scan
//
// Returns:
//   - []common.ImageSource: the image files found
//   - error: an error if the directory cannot be read
func ScanImageDir(dir string) ([]common.ImageSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory %s: %w", dir, err)
	}
	var sources []common.ImageSource
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			sources = append(sources, common.ImageSource{
				Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
				Path: filepath.Join(dir, e.Name()),
			})
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}

// Resize scales src to a size x size image with Catmull-Rom filtering.
func Resize(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// decodedImage is one successfully decoded target image.
type decodedImage struct {
	name string
	img  *image.RGBA
}

// DecodeImages decodes and resizes sources in parallel on a worker pool.
// Images that fail to decode are logged and skipped; the result keeps the order of sources.
//
// Parameters:
//   - sources: the images to decode
//   - size: the edge length every image is resized to
//   - workers: the number of decode workers
//
// Returns:
//   - []string: the names of the decoded images
//   - []*image.RGBA: the decoded images
func DecodeImages(sources []common.ImageSource, size, workers int) ([]string, []*image.RGBA) {
	if len(sources) == 0 {
		return nil, nil
	}

	pool := worker.NewDynamicWorkerPool(workers, len(sources), 1*time.Second)
	defer pool.Stop()

	results := make([]*decodedImage, len(sources))
	var wg sync.WaitGroup
	for i := range sources {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				img, err := sources[idx].Decode()
				if err != nil {
					log.Printf("[Registry] skipping image %s: %v", sources[idx].Name, err)
					return nil, err
				}
				results[idx] = &decodedImage{name: sources[idx].Name, img: Resize(img, size)}
				return nil, nil
			},
		})
	}
	wg.Wait()

	var names []string
	var images []*image.RGBA
	for _, r := range results {
		if r != nil {
			names = append(names, r.name)
			images = append(images, r.img)
		}
	}
	return names, images
}
