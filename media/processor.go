package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/camden-git/filmreel/utils"
)

const (
	FrameJpegQuality   = 85
	FrameFileExtension = ".jpg"
)

// Frame is the result of ingesting one uploaded photo.
type Frame struct {
	RelativePath string
	Width        int
	Height       int
	Metadata     *utils.Metadata
}

// Processor turns uploaded images into stored frames
type Processor struct {
	store Store
	opts  ImageProcessingOptions
}

func NewProcessor(store Store, opts ImageProcessingOptions) *Processor {
	if opts.Quality <= 0 {
		opts.Quality = FrameJpegQuality
	}
	return &Processor{store: store, opts: opts}
}

// ProcessFrame reads EXIF from the original bytes, downsizes the image to
// the configured width and saves it as a JPEG with a UUID filename.
func (p *Processor) ProcessFrame(data []byte) (*Frame, error) {
	meta, err := utils.GetImageMetadata(bytes.NewReader(data))
	if err != nil {
		log.Printf("processor: Warning - could not read metadata: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode uploaded frame: %w", err)
	}
	log.Printf("processor: Decoded uploaded frame (format: %s)", format)

	if p.opts.MaxWidth > 0 && img.Bounds().Dx() > p.opts.MaxWidth {
		img = imaging.Resize(img, p.opts.MaxWidth, 0, imaging.Lanczos)
	}

	reader, writer := io.Pipe()
	go func() {
		err := imaging.Encode(writer, img, imaging.JPEG, imaging.JPEGQuality(p.opts.Quality))
		if err != nil {
			log.Printf("processor: Failed to encode frame: %v", err)
			writer.CloseWithError(fmt.Errorf("frame encoding failed: %w", err))
			return
		}
		writer.Close()
	}()

	frameUUID, err := uuid.NewRandom()
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("failed to generate UUID for frame: %w", err)
	}

	savedRelPath, err := p.store.Save(AssetTypeFrame, frameUUID.String()+FrameFileExtension, reader)
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("failed to save frame via store: %w", err)
	}

	log.Printf("processor: Processed and saved frame to %s", savedRelPath)
	return &Frame{
		RelativePath: savedRelPath,
		Width:        img.Bounds().Dx(),
		Height:       img.Bounds().Dy(),
		Metadata:     meta,
	}, nil
}

// DeleteFrame removes a previously stored frame
func (p *Processor) DeleteFrame(relativePath string) error {
	return p.store.Delete(relativePath)
}
