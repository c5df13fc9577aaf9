// File: pkg/combine/defaults.go
package combine

// DefaultExclusions are always part of the rule set, whatever the user configures.
var DefaultExclusions = []string{
	"*LICENSE*",
	".gitignore",
	"node_modules/",
	".git/",
}

// UnsupportedExtensions lists extensions whose content is binary or useless to
// text consumers. Each one is compiled into the rule set as "*.<ext>".
var UnsupportedExtensions = []string{
	// Fonts
	"eot", "tiff", "tff", "woff", "woff2", "otf",
	// Images
	"jpg", "png", "gif", "jfif", "webp", "bmp", "ico", "svg",
	// Videos
	"mp4", "mov", "avi", "flv",
	// Audio
	"mp3", "wmv", "wav", "aac", "flac", "ogg", "wma", "zip",
	// Archives and executables
	"pyc", "pyd", "tar", "gz", "rar", "7z", "iso", "bin", "exe", "dll", "msi", "dmg", "pkg", "deb",
	"rpm", "apk", "jar", "war", "ear", "npz", "npy", "lib", "dat",
	// Misc
	"mo", "pdf",
	// Lock files are rarely human-readable
	"lock",
}

// Preamble lines written at the top of every aggregated output unless suppressed.
// The first line doubles as the marker the Guard uses to recognise its own output.
const (
	PreambleFirstLine  = "This is a .txt file representing an entire directory's contents."
	PreambleSecondLine = "Each file is separated by a line with its path."
)

// ReadChunkSize bounds how much of an existing output file is read to find its first line.
const ReadChunkSize = 8192
