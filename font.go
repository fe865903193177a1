package textavatar

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFontFamily is used when a drawable is built without UseFont.
const DefaultFontFamily = "sans-serif"

type faceKey struct {
	family string
	size   int
	bold   bool
}

type faceEntry struct {
	face font.Face
	// bold reports whether the face itself is a bold variant; when a
	// bold face was requested but none found, the renderer synthesizes
	// the weight instead.
	bold bool
}

// FontCache resolves font family names to system font files and caches
// the loaded faces per size and weight. The zero value is not usable;
// call NewFontCache.
type FontCache struct {
	mutex sync.RWMutex
	faces map[faceKey]faceEntry
	paths map[string]string

	// drawMutex serializes glyph drawing through cached faces:
	// truetype faces are not safe for concurrent use.
	drawMutex sync.Mutex
}

var defaultFontCache = NewFontCache()

func NewFontCache() *FontCache {
	return &FontCache{
		faces: make(map[faceKey]faceEntry),
		paths: make(map[string]string),
	}
}

// Face returns a face for the given family, pixel size and weight. It
// never returns nil: when no matching font file can be found or
// loaded, the fixed-size basicfont face is returned so rendering still
// proceeds. The second result reports whether the face satisfies a
// bold request on its own; when false, callers fake the weight.
func (fc *FontCache) Face(family string, size int, bold bool) (font.Face, bool) {
	if family == "" {
		family = DefaultFontFamily
	}
	key := faceKey{family: strings.ToLower(family), size: size, bold: bold}

	fc.mutex.RLock()
	if entry, exists := fc.faces[key]; exists {
		fc.mutex.RUnlock()
		return entry.face, entry.bold
	}
	fc.mutex.RUnlock()

	entry := fc.loadFace(key.family, size, bold)

	fc.mutex.Lock()
	fc.faces[key] = entry
	fc.mutex.Unlock()

	return entry.face, entry.bold
}

func (fc *FontCache) loadFace(family string, size int, bold bool) faceEntry {
	if bold {
		if path := fc.resolve(family+"/bold", boldCandidates(family)); path != "" {
			if face, err := gg.LoadFontFace(path, float64(size)); err == nil {
				return faceEntry{face: face, bold: true}
			}
		}
	}

	if path := fc.resolve(family, fontCandidates(family)); path != "" {
		if face, err := gg.LoadFontFace(path, float64(size)); err == nil {
			return faceEntry{face: face}
		}
	}
	return faceEntry{face: basicfont.Face7x13}
}

// resolve maps a cache key to a font file path, remembering misses so
// the directory walk happens once per family.
func (fc *FontCache) resolve(key string, candidates []string) string {
	fc.mutex.RLock()
	path, resolved := fc.paths[key]
	fc.mutex.RUnlock()

	if !resolved {
		path = findFontFile(candidates)
		fc.mutex.Lock()
		fc.paths[key] = path
		fc.mutex.Unlock()
	}
	return path
}

// fontCandidates maps a family name to font file name patterns, most
// specific first. The generic families expand to a list of fonts
// commonly present on Linux, macOS and Windows.
func fontCandidates(family string) []string {
	switch family {
	case "sans-serif", "sans":
		return []string{
			"DejaVuSans.ttf",
			"LiberationSans-Regular.ttf",
			"Roboto-Regular.ttf",
			"Ubuntu-Regular.ttf",
			"NotoSans-Regular.ttf",
			"FreeSans.ttf",
			"Arial.ttf",
			"arial.ttf",
			"Helvetica.ttf",
		}
	case "serif":
		return []string{
			"DejaVuSerif.ttf",
			"LiberationSerif-Regular.ttf",
			"NotoSerif-Regular.ttf",
			"FreeSerif.ttf",
			"times.ttf",
		}
	case "monospace", "mono":
		return []string{
			"DejaVuSansMono.ttf",
			"LiberationMono-Regular.ttf",
			"UbuntuMono-Regular.ttf",
			"Consolas.ttf",
			"cour.ttf",
		}
	}

	compact := strings.ReplaceAll(family, " ", "")
	return []string{
		family + ".ttf",
		compact + ".ttf",
		compact + "-Regular.ttf",
		family + ".otf",
		compact + ".otf",
		family + ".ttc",
	}
}

// boldCandidates mirrors fontCandidates for the bold variants.
func boldCandidates(family string) []string {
	switch family {
	case "sans-serif", "sans":
		return []string{
			"DejaVuSans-Bold.ttf",
			"LiberationSans-Bold.ttf",
			"Roboto-Bold.ttf",
			"Ubuntu-Bold.ttf",
			"NotoSans-Bold.ttf",
			"FreeSansBold.ttf",
			"Arial Bold.ttf",
			"arialbd.ttf",
		}
	case "serif":
		return []string{
			"DejaVuSerif-Bold.ttf",
			"LiberationSerif-Bold.ttf",
			"NotoSerif-Bold.ttf",
			"FreeSerifBold.ttf",
			"timesbd.ttf",
		}
	case "monospace", "mono":
		return []string{
			"DejaVuSansMono-Bold.ttf",
			"LiberationMono-Bold.ttf",
			"UbuntuMono-Bold.ttf",
			"consolab.ttf",
			"courbd.ttf",
		}
	}

	compact := strings.ReplaceAll(family, " ", "")
	return []string{
		family + "-Bold.ttf",
		compact + "-Bold.ttf",
		compact + "Bold.ttf",
		family + "-Bold.otf",
		compact + "-Bold.otf",
	}
}

var fontDirs = []string{
	"/usr/share/fonts",
	"/usr/local/share/fonts",
	"/System/Library/Fonts",
	"/Library/Fonts",
	"C:\\Windows\\Fonts",
}

func init() {
	if home, err := os.UserHomeDir(); err == nil {
		fontDirs = append(fontDirs,
			filepath.Join(home, ".fonts"),
			filepath.Join(home, ".local", "share", "fonts"))
	}
}

// findFontFile walks the system font directories for the first file
// whose name matches one of the candidates, case insensitive.
func findFontFile(candidates []string) string {
	lowered := make([]string, len(candidates))
	for i, c := range candidates {
		lowered[i] = strings.ToLower(c)
	}

	for _, dir := range fontDirs {
		var found string
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			name := strings.ToLower(d.Name())
			for _, want := range lowered {
				if name == want {
					found = path
					return fs.SkipAll
				}
			}
			return nil
		})
		if found != "" {
			return found
		}
	}
	return ""
}
