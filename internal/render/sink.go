package render

import (
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/KaramelBytes/census-cli/internal/dataset"
	"github.com/KaramelBytes/census-cli/internal/utils"
)

// Sink stores rendered images and returns where each one went.
type Sink interface {
	Write(img *Image) (string, error)
}

// DirSink writes images as <Dir>/<name>.png.
type DirSink struct {
	Dir string
}

func (s DirSink) Write(img *Image) (string, error) {
	path := filepath.Join(s.Dir, utils.SafeFileName(img.Name)+".png")
	if err := utils.SafeWriteFile(path, img.PNG); err != nil {
		return "", err
	}
	return path, nil
}

// RenderAll renders every spec in order and hands each image to sink (which
// may be nil). Failed charts are logged and skipped; their errors are returned
// alongside the images that did render.
func RenderAll(r *Renderer, specs []Spec, t *dataset.Table, sink Sink, log *zap.Logger) ([]*Image, []error) {
	if log == nil {
		log = zap.NewNop()
	}
	var images []*Image
	var errs []error
	for _, spec := range specs {
		img, err := r.Render(spec, t)
		if err != nil {
			log.Warn("chart skipped", zap.String("chart", spec.Name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if sink != nil {
			path, err := sink.Write(img)
			if err != nil {
				log.Warn("chart not written", zap.String("chart", spec.Name), zap.Error(err))
				errs = append(errs, &RenderError{Chart: spec.Name, Err: err})
				continue
			}
			img.Path = path
			log.Debug("chart written", zap.String("chart", spec.Name), zap.String("path", path), zap.Int("bytes", len(img.PNG)))
		}
		images = append(images, img)
	}
	return images, errs
}

func sortedStrings(s []string) []string {
	sort.Strings(s)
	return s
}
