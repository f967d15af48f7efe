// media/types.go
package media

type AssetType string

const (
	AssetTypeFrame      AssetType = "frame"
	AssetTypeBackground AssetType = "background"
)

// ImageProcessingOptions holds parameters for frame transformations
type ImageProcessingOptions struct {
	MaxWidth int // 0 keeps the original width
	Quality  int
}
