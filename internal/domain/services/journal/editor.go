package journal

import "context"

// PickedImage is the result of an image picker invocation.
type PickedImage struct {
	URI       string
	Cancelled bool
}

// ImagePicker lets the user choose a local image.
type ImagePicker interface {
	PickImage(ctx context.Context) (PickedImage, error)
}

// ImageSource reads the bytes behind a picked image uri.
type ImageSource interface {
	ReadImage(ctx context.Context, uri string) (data []byte, contentType string, err error)
}

// ImageReleaser is implemented by image sources that hold picked image bytes.
// The editor releases a uri once nothing refers to it anymore.
type ImageReleaser interface {
	ReleaseImage(uri string)
}

// PickerFunc adapts a function to ImagePicker.
type PickerFunc func(ctx context.Context) (PickedImage, error)

func (f PickerFunc) PickImage(ctx context.Context) (PickedImage, error) { return f(ctx) }
