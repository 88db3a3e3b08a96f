package tritone

const (
	defaultMaxWidth = 1200
	defaultTMid     = 1.0
)

// DownloadFilename is the file name offered for the rendered PNG.
const DownloadFilename = "brave-pink-hero-green-filter.png"

// DefaultPresetName names the built-in gradient.
const DefaultPresetName = "brave-pink-hero-green"

// BT.709 luma weights applied to raw channel values.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

var (
	// ResistanceBlue is the default shadow color, #0D1E91.
	ResistanceBlue = Color{R: 0x0D, G: 0x1E, B: 0x91}
	// BravePink is the default mid color, #E44C99.
	BravePink = Color{R: 0xE4, G: 0x4C, B: 0x99}
	// HeroGreen is the default highlight color, #01A923.
	HeroGreen = Color{R: 0x01, G: 0xA9, B: 0x23}
)
